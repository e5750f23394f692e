package main

import (
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "anonctl",
		Short:         "Operator tool for the anonymous chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg, err := LoadConfig()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	color.Enable = cfg.Colours

	rootCmd.AddCommand(
		newSessionsCmd(cfg),
		newTokenCmd(cfg),
		newStatsCmd(cfg),
	)
	return rootCmd
}
