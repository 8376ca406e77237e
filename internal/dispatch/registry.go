package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Descriptor is the fully-formed description of one REST call, built
// per-invocation from the registry's static templates plus call parameters.
type Descriptor struct {
	Method              string
	Path                string
	Body                []byte
	SuccessNotification string
	ErrorNotification   string
}

// Resolve builds the descriptor for op from p. Required identifiers are
// validated up front so a malformed call fails before any request is issued
// or lifecycle event published.
func Resolve(op Operation, p Params) (Descriptor, error) {
	switch op {
	case OpGetCurrentUser:
		return Descriptor{
			Method:            http.MethodGet,
			Path:              "/api/v1/user/me/",
			ErrorNotification: "Error fetching current user.",
		}, nil

	case OpFetchAllRecipes:
		path := "/api/v1/recipe/"
		if !p.Filters.empty() {
			path += "?" + p.Filters.Values().Encode()
		}
		return Descriptor{
			Method:            http.MethodGet,
			Path:              path,
			ErrorNotification: "Error fetching recipes.",
		}, nil

	case OpFetchSignedRecipes:
		return Descriptor{
			Method:            http.MethodGet,
			Path:              "/api/v1/recipe/signed/",
			ErrorNotification: "Error fetching signed recipes.",
		}, nil

	case OpFetchSingleRecipe:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		return Descriptor{
			Method:            http.MethodGet,
			Path:              fmt.Sprintf("/api/v1/recipe/%d/", p.RecipeID),
			ErrorNotification: "Error fetching recipe.",
		}, nil

	case OpFetchSingleRevision:
		revisionID := strings.TrimSpace(p.RevisionID)
		if revisionID == "" {
			return Descriptor{}, missingParam(op, "revisionId")
		}
		return Descriptor{
			Method:            http.MethodGet,
			Path:              fmt.Sprintf("/api/v1/recipe_revision/%s/", revisionID),
			ErrorNotification: "Error fetching revision.",
		}, nil

	case OpOpenApprovalRequest:
		revisionID := strings.TrimSpace(p.RevisionID)
		if revisionID == "" {
			return Descriptor{}, missingParam(op, "revisionId")
		}
		body, err := marshalPayload(op, p.Payload)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/recipe_revision/%s/request_approval/", revisionID),
			Body:                body,
			SuccessNotification: "Approval requested.",
			ErrorNotification:   "Error requesting approval.",
		}, nil

	case OpAcceptApprovalRequest:
		if p.RequestID <= 0 {
			return Descriptor{}, missingParam(op, "requestId")
		}
		body, err := marshalPayload(op, p.Payload)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/approval_request/%d/approve/", p.RequestID),
			Body:                body,
			SuccessNotification: "Approval request approved.",
			ErrorNotification:   "Error approving request.",
		}, nil

	case OpRejectApprovalRequest:
		if p.RequestID <= 0 {
			return Descriptor{}, missingParam(op, "requestId")
		}
		body, err := marshalPayload(op, p.Payload)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/approval_request/%d/reject/", p.RequestID),
			Body:                body,
			SuccessNotification: "Approval request rejected.",
			ErrorNotification:   "Error rejecting request.",
		}, nil

	case OpCloseApprovalRequest:
		if p.RequestID <= 0 {
			return Descriptor{}, missingParam(op, "requestId")
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/approval_request/%d/close/", p.RequestID),
			SuccessNotification: "Approval request closed.",
			ErrorNotification:   "Error closing request.",
		}, nil

	case OpFetchRecipeHistory:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		return Descriptor{
			Method:            http.MethodGet,
			Path:              fmt.Sprintf("/api/v1/recipe/%d/history/", p.RecipeID),
			ErrorNotification: "Error fetching recipe history.",
		}, nil

	case OpAddRecipe:
		if p.Payload == nil {
			return Descriptor{}, missingParam(op, "recipe")
		}
		body, err := marshalPayload(op, p.Payload)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                "/api/v1/recipe/",
			Body:                body,
			SuccessNotification: "Recipe added.",
			ErrorNotification:   "Error adding recipe.",
		}, nil

	case OpUpdateRecipe:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		if p.Payload == nil {
			return Descriptor{}, missingParam(op, "recipe")
		}
		body, err := marshalPayload(op, p.Payload)
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{
			Method:              http.MethodPatch,
			Path:                fmt.Sprintf("/api/v1/recipe/%d/", p.RecipeID),
			Body:                body,
			SuccessNotification: "Recipe updated.",
			ErrorNotification:   "Error updating recipe.",
		}, nil

	case OpDeleteRecipe:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		return Descriptor{
			Method:              http.MethodDelete,
			Path:                fmt.Sprintf("/api/v1/recipe/%d/", p.RecipeID),
			SuccessNotification: "Recipe deleted.",
			ErrorNotification:   "Error deleting recipe.",
		}, nil

	case OpEnableRecipe:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/recipe/%d/enable/", p.RecipeID),
			SuccessNotification: "Recipe enabled.",
			ErrorNotification:   "Error enabling recipe.",
		}, nil

	case OpDisableRecipe:
		if p.RecipeID <= 0 {
			return Descriptor{}, missingParam(op, "recipeId")
		}
		return Descriptor{
			Method:              http.MethodPost,
			Path:                fmt.Sprintf("/api/v1/recipe/%d/disable/", p.RecipeID),
			SuccessNotification: "Recipe disabled.",
			ErrorNotification:   "Error disabling recipe.",
		}, nil

	default:
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownOperation, op)
	}
}

func marshalPayload(op Operation, payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s body: %w", op, err)
	}
	return data, nil
}
