package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/biblioscrape/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config from defaults, or import one with --from",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Label for new config"}
			in, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("input cancelled")
			}
			label = strings.TrimSpace(in)
		}

		var (
			path string
			err  error
		)
		if flagAddFrom != "" {
			path, err = config.AddConfig(label, flagAddFrom)
		} else {
			path, err = config.CreateConfig(label)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "import an existing YAML file")
	configCmd.AddCommand(configAddCmd)
}
