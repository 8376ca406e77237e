package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"recipectl/internal/actions"
	"recipectl/internal/api"
	"recipectl/internal/dispatch"
)

func newRecipeCommand(ctx *commandContext) *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:   "recipe",
		Short: "Inspect and manage recipes",
	}

	recipeCmd.AddCommand(newRecipeListCommand(ctx))
	recipeCmd.AddCommand(newRecipeSignedCommand(ctx))
	recipeCmd.AddCommand(newRecipeShowCommand(ctx))
	recipeCmd.AddCommand(newRecipeHistoryCommand(ctx))
	recipeCmd.AddCommand(newRecipeAddCommand(ctx))
	recipeCmd.AddCommand(newRecipeUpdateCommand(ctx))
	recipeCmd.AddCommand(newRecipeDeleteCommand(ctx))
	recipeCmd.AddCommand(newRecipeEnableCommand(ctx))
	recipeCmd.AddCommand(newRecipeDisableCommand(ctx))

	return recipeCmd
}

func newRecipeListCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut   bool
		enabled   bool
		disabled  bool
		action    string
		channels  string
		locales   string
		countries string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			if enabled && disabled {
				return fmt.Errorf("--enabled and --disabled are mutually exclusive")
			}
			filters := dispatch.RecipeFilters{
				Action:    action,
				Channels:  splitCommaList(channels),
				Locales:   splitCommaList(locales),
				Countries: splitCommaList(countries),
			}
			if enabled || disabled {
				value := enabled
				filters.Enabled = &value
			}

			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				recipes, err := svc.FetchAllRecipes(runCtx, filters)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, recipes)
				}
				printRecipeTable(cmd.OutOrStdout(), recipes)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&enabled, "enabled", false, "Only enabled recipes")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Only disabled recipes")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action name")
	cmd.Flags().StringVar(&channels, "channels", "", "Comma-separated release channels")
	cmd.Flags().StringVar(&locales, "locales", "", "Comma-separated locales")
	cmd.Flags().StringVar(&countries, "countries", "", "Comma-separated countries")
	return cmd
}

func newRecipeSignedCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "signed",
		Short: "List recipes with signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				recipes, err := svc.FetchSignedRecipes(runCtx)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, recipes)
				}
				printRecipeTable(cmd.OutOrStdout(), recipes)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRecipeShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a single recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				recipe, err := svc.FetchSingleRecipe(runCtx, id)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, recipe)
				}
				printRecipeDetail(cmd.OutOrStdout(), recipe)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of detail lines")
	return cmd
}

func newRecipeHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "List a recipe's revisions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				revisions, err := svc.FetchRecipeHistory(runCtx, id)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, revisions)
				}
				printRevisionTable(cmd.OutOrStdout(), revisions)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRecipeAddCommand(ctx *commandContext) *cobra.Command {
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recipe from a JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadPayload(payloadPath, func() ([]byte, error) {
				return io.ReadAll(cmd.InOrStdin())
			})
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				recipe, err := svc.AddRecipe(runCtx, payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d (%s)\n", recipe.ID, recipe.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&payloadPath, "file", "f", "-", "Recipe JSON file (default stdin)")
	return cmd
}

func newRecipeUpdateCommand(ctx *commandContext) *cobra.Command {
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recipe from a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			payload, err := loadPayload(payloadPath, func() ([]byte, error) {
				return io.ReadAll(cmd.InOrStdin())
			})
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				recipe, err := svc.UpdateRecipe(runCtx, id, payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d (%s)\n", recipe.ID, recipe.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&payloadPath, "file", "f", "-", "Recipe JSON file (default stdin)")
	return cmd
}

func newRecipeDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				if err := svc.DeleteRecipe(runCtx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
				return nil
			})
		},
	}
}

func newRecipeEnableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable a recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecipeToggle(ctx, true),
	}
}

func newRecipeDisableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable a recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecipeToggle(ctx, false),
	}
}

func runRecipeToggle(ctx *commandContext, enable bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseRecipeID(args[0])
		if err != nil {
			return err
		}
		return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
			var (
				recipe api.Recipe
				err    error
			)
			if enable {
				recipe, err = svc.EnableRecipe(runCtx, id)
			} else {
				recipe, err = svc.DisableRecipe(runCtx, id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d (%s) is now %s\n",
				recipe.ID, recipe.Name, enabledLabel(recipe.Enabled))
			return nil
		})
	}
}

func printRecipeTable(writer io.Writer, recipes []api.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(writer, "No recipes found")
		return
	}
	rows := make([][]string, 0, len(recipes))
	for _, recipe := range recipes {
		rows = append(rows, []string{
			strconv.FormatInt(recipe.ID, 10),
			recipe.Name,
			displayAction(recipe.Action),
			enabledLabel(recipe.Enabled),
			yesNo(recipe.IsApproved),
			formatTime(recipe.LastUpdated),
		})
	}
	fmt.Fprintln(writer, renderTable(
		[]string{"ID", "Name", "Action", "State", "Approved", "Updated"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
}

func printRecipeDetail(writer io.Writer, recipe api.Recipe) {
	pairs := [][2]string{
		{"ID", strconv.FormatInt(recipe.ID, 10)},
		{"Name", recipe.Name},
		{"Action", displayAction(recipe.Action)},
		{"State", enabledLabel(recipe.Enabled)},
		{"Approved", yesNo(recipe.IsApproved)},
		{"Revision", orDash(recipe.RevisionID)},
		{"Filter", orDash(recipe.FilterExpression)},
		{"Channels", joinOrDash(recipe.Channels)},
		{"Countries", joinOrDash(recipe.Countries)},
		{"Locales", joinOrDash(recipe.Locales)},
		{"Updated", formatTime(recipe.LastUpdated)},
	}
	if recipe.ApprovalRequest != nil {
		pairs = append(pairs, [2]string{"Approval", describeApproval(*recipe.ApprovalRequest)})
	}
	fmt.Fprint(writer, renderKeyValues(pairs))
}

func printRevisionTable(writer io.Writer, revisions []api.RecipeRevision) {
	if len(revisions) == 0 {
		fmt.Fprintln(writer, "No revisions found")
		return
	}
	rows := make([][]string, 0, len(revisions))
	for _, revision := range revisions {
		approval := "-"
		if revision.ApprovalRequest != nil {
			approval = describeApproval(*revision.ApprovalRequest)
		}
		rows = append(rows, []string{
			revision.ID,
			formatTime(revision.DateCreated),
			orDash(revision.Comment),
			approval,
		})
	}
	fmt.Fprintln(writer, renderTable(
		[]string{"Revision", "Created", "Comment", "Approval"},
		rows,
		nil,
	))
}
