package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/biblioscrape/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickProfile("Switch to")
			if err != nil {
				return err
			}
			label = picked.Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		return nil
	},
}

var profileTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}",
	Active:   `▸ {{ .Label | cyan }}{{ if .Active }} {{ "(active)" | faint }}{{ end }}`,
	Inactive: `  {{ .Label }}{{ if .Active }} {{ "(active)" | faint }}{{ end }}`,
	Selected: `{{ "Profile:" | faint }} {{ .Label }}`,
	Details:  `{{ "Path:" | faint }} {{ .Path }}`,
}

// pickProfile lets the user choose one of the stored profiles. The cursor
// starts on the active one and typing narrows the list by label.
func pickProfile(prompt string) (config.ConfigInfo, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return config.ConfigInfo{}, err
	}
	if len(list) == 0 {
		return config.ConfigInfo{}, errors.New("no configs available, run `biblioscrape config init`")
	}

	cursor := 0
	for i, c := range list {
		if c.Active {
			cursor = i
		}
	}

	sel := promptui.Select{
		Label:     prompt,
		Items:     list,
		Templates: profileTemplates,
		CursorPos: cursor,
		Size:      10,
		Searcher: func(input string, i int) bool {
			return strings.Contains(strings.ToLower(list[i].Label), strings.ToLower(strings.TrimSpace(input)))
		},
	}

	idx, _, err := sel.Run()
	if err != nil {
		return config.ConfigInfo{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return list[idx], nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
