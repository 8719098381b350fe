package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/brogergvhs/biblioscrape/internal/config"

	"github.com/spf13/cobra"
)

const fallbackEditor = "nvim"

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open a profile in $VISUAL or $EDITOR and check it still loads",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := editTarget(args)
		if err != nil {
			return err
		}

		argv := append(editorCommand(), path)
		editor := exec.Command(argv[0], argv[1:]...)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr

		if err := editor.Run(); err != nil {
			return fmt.Errorf("failed to open editor %q: %w", argv[0], err)
		}

		if _, err := config.LoadFile(path); err != nil {
			return fmt.Errorf("%s no longer loads: %w", path, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Saved", path)
		return nil
	},
}

// editTarget resolves the profile to edit: the named one, else the active
// one, else whatever the user picks.
func editTarget(args []string) (string, error) {
	if len(args) == 1 {
		return config.ConfigPathByLabel(args[0])
	}

	path, err := config.ActiveConfigPath()
	if errors.Is(err, config.ErrNoConfig) {
		picked, err := pickProfile("Edit")
		if err != nil {
			return "", err
		}
		return picked.Path, nil
	}

	return path, err
}

// editorCommand splits $VISUAL or $EDITOR so values like "code --wait" work.
func editorCommand() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{fallbackEditor}
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
