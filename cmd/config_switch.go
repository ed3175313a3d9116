package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/brogergvhs/xkcdget/internal/config"

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
			picked, err := pickProfile()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		return describeProfile(cmd.OutOrStdout(), label)
	},
}

func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no configs available, run `xkcdget config init` first")
	}

	prompt := promptui.Select{
		Label: "Select config",
		Items: profileItems(list),
		Size:  min(len(list), 10),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return list[idx].Label, nil
}

func profileItems(list []config.ConfigInfo) []string {
	items := make([]string, len(list))
	for i, c := range list {
		items[i] = c.Label
		if c.Active {
			items[i] += "  (active)"
		}
	}
	return items
}

// describeProfile tells the user where the new profile downloads from and to.
func describeProfile(w io.Writer, label string) error {
	cfg, err := config.LoadProfile(label)
	if err != nil {
		return fmt.Errorf("switched to %s but cannot read it: %w", label, err)
	}

	fmt.Fprintln(w, "Switched to:", label)
	fmt.Fprintf(w, "  comics from %s (feed %s)\n", cfg.SiteURL, cfg.FeedURL)
	fmt.Fprintf(w, "  saved into  %s\n", cfg.Output)
	return nil
}
