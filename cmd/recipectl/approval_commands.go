package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"recipectl/internal/actions"
	"recipectl/internal/api"
)

func newRevisionCommand(ctx *commandContext) *cobra.Command {
	revisionCmd := &cobra.Command{
		Use:   "revision",
		Short: "Inspect recipe revisions",
	}

	revisionCmd.AddCommand(newRevisionShowCommand(ctx))
	return revisionCmd
}

func newRevisionShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <revision-id>",
		Short: "Display a single revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revisionID := strings.TrimSpace(args[0])
			if revisionID == "" {
				return fmt.Errorf("revision id must not be empty")
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				revision, err := svc.FetchSingleRevision(runCtx, revisionID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, revision)
				}
				printRevisionDetail(cmd, revision)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of detail lines")
	return cmd
}

func newApprovalCommand(ctx *commandContext) *cobra.Command {
	approvalCmd := &cobra.Command{
		Use:   "approval",
		Short: "Drive the revision approval workflow",
	}

	approvalCmd.AddCommand(newApprovalOpenCommand(ctx))
	approvalCmd.AddCommand(newApprovalAcceptCommand(ctx))
	approvalCmd.AddCommand(newApprovalRejectCommand(ctx))
	approvalCmd.AddCommand(newApprovalCloseCommand(ctx))

	return approvalCmd
}

func newApprovalOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <revision-id>",
		Short: "Request approval for a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revisionID := strings.TrimSpace(args[0])
			if revisionID == "" {
				return fmt.Errorf("revision id must not be empty")
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				request, err := svc.OpenApprovalRequest(runCtx, revisionID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened approval request %d for revision %s\n",
					request.ID, revisionID)
				return nil
			})
		},
	}
}

func newApprovalAcceptCommand(ctx *commandContext) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "accept <request-id>",
		Short: "Approve a pending request",
		Args:  cobra.ExactArgs(1),
		RunE:  runApprovalDecision(ctx, &comment, true),
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Review comment")
	return cmd
}

func newApprovalRejectCommand(ctx *commandContext) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a pending request",
		Args:  cobra.ExactArgs(1),
		RunE:  runApprovalDecision(ctx, &comment, false),
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Review comment")
	return cmd
}

func runApprovalDecision(ctx *commandContext, comment *string, accept bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		requestID, err := parseRequestID(args[0])
		if err != nil {
			return err
		}
		return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
			var request api.ApprovalRequest
			if accept {
				request, err = svc.AcceptApprovalRequest(runCtx, requestID, *comment)
			} else {
				request, err = svc.RejectApprovalRequest(runCtx, requestID, *comment)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approval request %d: %s\n",
				request.ID, describeApproval(request))
			return nil
		})
	}
}

func newApprovalCloseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "close <request-id>",
		Short: "Close a request without a decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *actions.Service) error {
				if err := svc.CloseApprovalRequest(runCtx, requestID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Closed approval request %d\n", requestID)
				return nil
			})
		},
	}
}

func printRevisionDetail(cmd *cobra.Command, revision api.RecipeRevision) {
	pairs := [][2]string{
		{"Revision", revision.ID},
		{"Created", formatTime(revision.DateCreated)},
		{"Comment", orDash(revision.Comment)},
		{"Recipe", fmt.Sprintf("%s (%s)", revision.Recipe.Name, strconv.FormatInt(revision.Recipe.ID, 10))},
	}
	if revision.ApprovalRequest != nil {
		pairs = append(pairs, [2]string{"Approval", describeApproval(*revision.ApprovalRequest)})
	}
	fmt.Fprint(cmd.OutOrStdout(), renderKeyValues(pairs))
}

func describeApproval(request api.ApprovalRequest) string {
	switch {
	case request.Open():
		return fmt.Sprintf("open (by %s)", request.Creator.DisplayName())
	case request.Approved != nil && *request.Approved:
		if request.Approver != nil {
			return fmt.Sprintf("approved by %s", request.Approver.DisplayName())
		}
		return "approved"
	default:
		if request.Approver != nil {
			return fmt.Sprintf("rejected by %s", request.Approver.DisplayName())
		}
		return "rejected"
	}
}
