package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipectl/internal/actions"
)

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				user, err := svc.GetCurrentUser(runCtx)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, user)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName(), user.Email)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a summary line")
	return cmd
}
