package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/brogergvhs/biblioscrape/internal/render"
	"github.com/brogergvhs/biblioscrape/internal/ui"
	"github.com/brogergvhs/biblioscrape/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	itemFilter = "Filter authors"
	itemStats  = "Show letter stats"
	itemQuit   = "Quit"
)

func init() {
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactive session: load, reload and filter the author index",
		RunE:  runBrowse,
	}

	addFetchFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	a, err := setup(fetchOptions())
	if err != nil {
		return err
	}
	defer a.log.Sync()

	out := cmd.OutOrStdout()
	tbl := render.NewTableRenderer(out)
	console := ui.NewConsole(out)

	// The run renders into buf while the spinner owns the terminal.
	var buf bytes.Buffer
	p := a.pipeline(render.NewTableRenderer(&buf), console)
	stats := &ui.RunStats{}

	fmt.Fprintf(out, "Source: %s\n\n", a.cfg.TargetURL)

loop:
	for {
		label, _ := console.Trigger()
		items := []string{label}
		if a.session.Loaded() {
			items = append(items, itemFilter, itemStats)
		}
		items = append(items, itemQuit)

		sel := promptui.Select{
			Label:        "biblioscrape",
			Items:        items,
			HideSelected: true,
		}

		_, choice, err := sel.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}

		switch choice {
		case itemQuit:
			break loop

		case itemFilter:
			prompt := promptui.Prompt{Label: "Name contains"}
			term, err := prompt.Run()
			if err != nil {
				continue
			}
			if err := render.Filter(a.session, tbl, term); err != nil {
				a.log.Errorf("Render failed: %v", err)
			}

		case itemStats:
			if snap := a.session.Current(); snap != nil {
				if err := tbl.RenderStats(snap.Stats); err != nil {
					a.log.Errorf("Render failed: %v", err)
				}
			}

		default:
			snap, err := runOnce(cmd.Context(), p.Run)
			n := 0
			if snap != nil {
				n = len(snap.Authors)
			}
			stats.Record(n, err)
			_, _ = buf.WriteTo(out)
		}
	}

	fmt.Fprintln(out)
	stats.Print(out)
	return nil
}

// runOnce gives a single run its own interrupt handler so Ctrl-C aborts the
// fetch without ending the session.
func runOnce[T any](parent context.Context, run func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	stop := util.SetupInterruptHandler(cancel, "")
	defer stop()

	return run(ctx)
}
