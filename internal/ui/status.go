package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"

	"github.com/manifoldco/promptui"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var (
	styleInfo    = promptui.Styler(promptui.FGFaint)
	styleSuccess = promptui.Styler(promptui.FGGreen)
	styleError   = promptui.Styler(promptui.FGRed, promptui.FGBold)
)

// Console is the terminal status indicator. While the trigger is disabled a
// spinner shows the current status message; the final message is printed
// once the trigger comes back.
type Console struct {
	out io.Writer

	mu       sync.Mutex
	p        *mpb.Progress
	bar      *mpb.Bar
	message  string
	level    pipeline.Level
	pending  bool
	label    string
	enabled  bool
	spinning bool
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		label:   pipeline.LabelLoad,
		enabled: true,
	}
}

// Trigger returns the current label and whether a run may be started.
func (c *Console) Trigger() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label, c.enabled
}

func (c *Console) SetTrigger(enabled bool, label string) {
	c.mu.Lock()
	c.label = label
	c.enabled = enabled
	c.mu.Unlock()

	if !enabled {
		c.startSpinner(label)
		return
	}

	c.stopSpinner()
	c.flush()
}

func (c *Console) SetStatus(level pipeline.Level, message string) {
	c.mu.Lock()
	c.message = message
	c.level = level
	c.pending = true
	spinning := c.spinning
	c.mu.Unlock()

	if !spinning {
		c.flush()
	}
}

func (c *Console) startSpinner(label string) {
	c.mu.Lock()
	if c.spinning {
		c.mu.Unlock()
		return
	}
	c.spinning = true
	c.pending = false
	c.mu.Unlock()

	p := mpb.New(
		mpb.WithOutput(c.out),
		mpb.WithWidth(1),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := p.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name(label+"  "),
		),
		mpb.AppendDecorators(
			decor.Any(func(_ decor.Statistics) string {
				c.mu.Lock()
				defer c.mu.Unlock()
				return " " + c.message
			}),
			decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 6}),
		),
	)

	c.mu.Lock()
	c.p, c.bar = p, bar
	c.mu.Unlock()
}

func (c *Console) stopSpinner() {
	c.mu.Lock()
	p, bar := c.p, c.bar
	c.p, c.bar = nil, nil
	c.spinning = false
	c.mu.Unlock()

	if bar == nil {
		return
	}

	bar.Abort(true)
	p.Wait()
}

func (c *Console) flush() {
	c.mu.Lock()
	if !c.pending {
		c.mu.Unlock()
		return
	}
	msg, level := c.message, c.level
	c.pending = false
	c.mu.Unlock()

	var styled string
	switch level {
	case pipeline.LevelSuccess:
		styled = styleSuccess(msg)
	case pipeline.LevelError:
		styled = styleError(msg)
	default:
		styled = styleInfo(msg)
	}

	_, _ = fmt.Fprintln(c.out, styled)
}
