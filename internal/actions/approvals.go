package actions

import (
	"context"
	"strings"

	"recipectl/internal/api"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
)

type approvalComment struct {
	Comment string `json:"comment"`
}

func commentPayload(comment string) any {
	if strings.TrimSpace(comment) == "" {
		return nil
	}
	return approvalComment{Comment: comment}
}

// FetchSingleRevision fetches one recipe revision.
func (s *Service) FetchSingleRevision(ctx context.Context, revisionID string) (api.RecipeRevision, error) {
	var revision api.RecipeRevision
	body, err := s.dispatcher.Execute(ctx, dispatch.OpFetchSingleRevision, dispatch.Params{RevisionID: revisionID})
	if err != nil {
		return revision, err
	}
	if err := dispatch.DecodeJSON(body, &revision); err != nil {
		return revision, err
	}
	s.bus.Publish(events.RevisionReceived{Revision: revision})
	return revision, nil
}

// OpenApprovalRequest opens review for a revision.
func (s *Service) OpenApprovalRequest(ctx context.Context, revisionID string) (api.ApprovalRequest, error) {
	var request api.ApprovalRequest
	body, err := s.dispatcher.Execute(ctx, dispatch.OpOpenApprovalRequest, dispatch.Params{RevisionID: revisionID})
	if err != nil {
		return request, err
	}
	if err := dispatch.DecodeJSON(body, &request); err != nil {
		return request, err
	}
	s.bus.Publish(events.ApprovalOpened{RevisionID: revisionID, Request: request})
	return request, nil
}

// AcceptApprovalRequest approves an open request, with an optional comment.
func (s *Service) AcceptApprovalRequest(ctx context.Context, requestID int64, comment string) (api.ApprovalRequest, error) {
	var request api.ApprovalRequest
	body, err := s.dispatcher.Execute(ctx, dispatch.OpAcceptApprovalRequest, dispatch.Params{
		RequestID: requestID,
		Payload:   commentPayload(comment),
	})
	if err != nil {
		return request, err
	}
	if err := dispatch.DecodeJSON(body, &request); err != nil {
		return request, err
	}
	s.bus.Publish(events.ApprovalAccepted{Request: request})
	return request, nil
}

// RejectApprovalRequest rejects an open request, with an optional comment.
func (s *Service) RejectApprovalRequest(ctx context.Context, requestID int64, comment string) (api.ApprovalRequest, error) {
	var request api.ApprovalRequest
	body, err := s.dispatcher.Execute(ctx, dispatch.OpRejectApprovalRequest, dispatch.Params{
		RequestID: requestID,
		Payload:   commentPayload(comment),
	})
	if err != nil {
		return request, err
	}
	if err := dispatch.DecodeJSON(body, &request); err != nil {
		return request, err
	}
	s.bus.Publish(events.ApprovalRejected{Request: request})
	return request, nil
}

// CloseApprovalRequest withdraws an open request. The server answers with no
// content.
func (s *Service) CloseApprovalRequest(ctx context.Context, requestID int64) error {
	if _, err := s.dispatcher.Execute(ctx, dispatch.OpCloseApprovalRequest, dispatch.Params{RequestID: requestID}); err != nil {
		return err
	}
	s.bus.Publish(events.ApprovalClosed{RequestID: requestID})
	return nil
}
