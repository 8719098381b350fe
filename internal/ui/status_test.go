package ui

import (
	"bytes"
	"testing"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestConsole_IdleStatusPrintsImmediately(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	label, enabled := c.Trigger()
	assert.Equal(t, pipeline.LabelLoad, label)
	assert.True(t, enabled)

	c.SetStatus(pipeline.LevelInfo, "Nothing loaded yet")
	assert.Contains(t, buf.String(), "Nothing loaded yet")
}

func TestConsole_RunCycle(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.SetTrigger(false, pipeline.LabelLoading)
	_, enabled := c.Trigger()
	assert.False(t, enabled)

	c.SetStatus(pipeline.LevelInfo, pipeline.MsgConnecting)
	c.SetStatus(pipeline.LevelInfo, pipeline.MsgDownloading)
	c.SetStatus(pipeline.LevelError, "Error: proxy returned error: 503 Service Unavailable")
	c.SetTrigger(true, pipeline.LabelRetry)

	label, enabled := c.Trigger()
	assert.Equal(t, pipeline.LabelRetry, label)
	assert.True(t, enabled)
	assert.Contains(t, buf.String(), "503 Service Unavailable")
}

func TestRunStats(t *testing.T) {
	var s RunStats
	s.Record(12, nil)
	s.Record(0, assert.AnError)

	var buf bytes.Buffer
	s.Print(&buf)

	assert.Equal(t, int64(2), s.Runs.Load())
	assert.Equal(t, int64(1), s.Failures.Load())
	assert.Equal(t, int64(12), s.LastAuthors.Load())
	assert.Contains(t, buf.String(), "Runs:     2")
}
