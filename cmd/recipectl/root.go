package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var serverFlag string

	ctx := newCommandContext(&configFlag, &serverFlag)

	rootCmd := &cobra.Command{
		Use:           "recipectl",
		Short:         "Client for the recipe service API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Recipe service base URL (overrides config)")

	rootCmd.AddCommand(newWhoamiCommand(ctx))
	rootCmd.AddCommand(newRecipeCommand(ctx))
	rootCmd.AddCommand(newRevisionCommand(ctx))
	rootCmd.AddCommand(newApprovalCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx.configPath))

	return rootCmd
}
