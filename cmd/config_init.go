package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/biblioscrape/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if path, err := config.ConfigPathByLabel(config.DefaultLabel); err == nil {
			fmt.Fprintln(out, "Configuration already exists at:")
			fmt.Fprintln(out, "  ", path)
			fmt.Fprintln(out, "Use `biblioscrape config reset` to recreate it.")
			return nil
		}

		fmt.Fprintln(out, "Configuration directory:")
		fmt.Fprintln(out, "  ", config.ConfigsDir())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Default configuration:")
		config.DefaultConfig().Print(out)
		fmt.Fprintln(out)

		if !flagInitYes && !confirm("Create the Default config") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintln(out, "Configuration already exists at:", path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Fprintln(out, "Config created at:", path)
		fmt.Fprintf(out, "This config is now active (label: %s).\n", config.DefaultLabel)
		return nil
	},
}

// confirm asks a yes/no question; anything but an explicit yes is a no.
func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
