package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorCommand(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, []string{fallbackEditor}, editorCommand())

	t.Setenv("EDITOR", "vim")
	assert.Equal(t, []string{"vim"}, editorCommand())

	t.Setenv("VISUAL", "  code --wait ")
	assert.Equal(t, []string{"code", "--wait"}, editorCommand())
}
