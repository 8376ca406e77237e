package events

import "recipectl/internal/api"

// Event is the marker interface satisfied by every event type in this
// package. The unexported method keeps the set closed: outside packages can
// consume events but cannot invent new ones.
type Event interface {
	isEvent()
}

type base struct{}

func (base) isEvent() {}

// RequestStatus classifies how a dispatched request completed.
type RequestStatus string

const (
	RequestSucceeded RequestStatus = "success"
	RequestFailed    RequestStatus = "error"
)

// RequestStarted is published exactly once per dispatched operation, before
// the HTTP exchange begins.
type RequestStarted struct {
	base
	Operation     string
	CorrelationID string
}

// RequestFinished is published exactly once per dispatched operation, after
// the exchange completes and after any notification for the call was shown.
type RequestFinished struct {
	base
	Operation     string
	CorrelationID string
	Status        RequestStatus
	HTTPStatus    int
}

// UserReceived carries the authenticated user returned by the user endpoint.
type UserReceived struct {
	base
	User api.User
}

// RecipesReceived carries the full recipe listing.
type RecipesReceived struct {
	base
	Recipes []api.Recipe
}

// SignedRecipesReceived carries the signed recipe listing.
type SignedRecipesReceived struct {
	base
	Recipes []api.Recipe
}

// RecipeReceived carries a single fetched recipe.
type RecipeReceived struct {
	base
	Recipe api.Recipe
}

// RevisionReceived carries a single fetched revision.
type RevisionReceived struct {
	base
	Revision api.RecipeRevision
}

// RecipeHistoryReceived carries the revision history for one recipe.
type RecipeHistoryReceived struct {
	base
	RecipeID  int64
	Revisions []api.RecipeRevision
}

// RecipeAdded is published after a recipe is created.
type RecipeAdded struct {
	base
	Recipe api.Recipe
}

// RecipeUpdated is published after a recipe is patched.
type RecipeUpdated struct {
	base
	Recipe api.Recipe
}

// RecipeDeleted is published after a recipe is removed.
type RecipeDeleted struct {
	base
	RecipeID int64
}

// RecipeEnabled is published after a recipe is switched on.
type RecipeEnabled struct {
	base
	Recipe api.Recipe
}

// RecipeDisabled is published after a recipe is switched off.
type RecipeDisabled struct {
	base
	Recipe api.Recipe
}

// ApprovalOpened is published after an approval request is created for a
// revision.
type ApprovalOpened struct {
	base
	RevisionID string
	Request    api.ApprovalRequest
}

// ApprovalAccepted is published after an approval request is approved.
type ApprovalAccepted struct {
	base
	Request api.ApprovalRequest
}

// ApprovalRejected is published after an approval request is rejected.
type ApprovalRejected struct {
	base
	Request api.ApprovalRequest
}

// ApprovalClosed is published after an approval request is closed without a
// decision.
type ApprovalClosed struct {
	base
	RequestID int64
}

// NotificationShown is published when a notification becomes visible.
type NotificationShown struct {
	base
	Notification api.Notification
}

// NotificationDismissed is published when a notification is dismissed,
// whether explicitly or by the auto-dismiss timer.
type NotificationDismissed struct {
	base
	ID string
}
