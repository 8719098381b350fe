package server

import (
	"sync"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"
)

// StatusBoard is the pipeline display for the web page: it remembers the
// trigger and the last status message so every page load can show them.
type StatusBoard struct {
	mu             sync.Mutex
	triggerLabel   string
	triggerEnabled bool
	message        string
	level          pipeline.Level
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		triggerLabel:   pipeline.LabelLoad,
		triggerEnabled: true,
	}
}

func (b *StatusBoard) SetTrigger(enabled bool, label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.triggerEnabled = enabled
	b.triggerLabel = label
}

func (b *StatusBoard) SetStatus(level pipeline.Level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = level
	b.message = message
}

type statusView struct {
	TriggerLabel   string
	TriggerEnabled bool
	Message        string
	Level          pipeline.Level
}

func (b *StatusBoard) view() statusView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return statusView{
		TriggerLabel:   b.triggerLabel,
		TriggerEnabled: b.triggerEnabled,
		Message:        b.message,
		Level:          b.level,
	}
}
