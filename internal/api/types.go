package api

import (
	"encoding/json"
	"strings"
	"time"
)

// User identifies an authenticated console user.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// DisplayName returns a human-facing name, falling back to the email address
// when the profile has no name set.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	return u.Email
}

// Recipe is the primary resource managed through the console.
type Recipe struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Enabled          bool             `json:"enabled"`
	IsApproved       bool             `json:"is_approved"`
	RevisionID       string           `json:"revision_id"`
	Action           string           `json:"action"`
	Arguments        json.RawMessage  `json:"arguments,omitempty"`
	FilterExpression string           `json:"filter_expression,omitempty"`
	Channels         []string         `json:"channels,omitempty"`
	Countries        []string         `json:"countries,omitempty"`
	Locales          []string         `json:"locales,omitempty"`
	LastUpdated      time.Time        `json:"last_updated"`
	ApprovalRequest  *ApprovalRequest `json:"approval_request,omitempty"`
}

// RecipeRevision is an immutable snapshot of a recipe. The history endpoint
// returns revisions newest first.
type RecipeRevision struct {
	ID              string           `json:"id"`
	DateCreated     time.Time        `json:"date_created"`
	Comment         string           `json:"comment,omitempty"`
	Recipe          Recipe           `json:"recipe"`
	ApprovalRequest *ApprovalRequest `json:"approval_request,omitempty"`
}

// ApprovalRequest tracks the review of a single revision. Approved is nil
// while the request is still open.
type ApprovalRequest struct {
	ID       int64     `json:"id"`
	Created  time.Time `json:"created"`
	Creator  User      `json:"creator"`
	Approved *bool     `json:"approved,omitempty"`
	Approver *User     `json:"approver,omitempty"`
	Comment  string    `json:"comment,omitempty"`
}

// Open reports whether the approval request is still awaiting a decision.
func (a ApprovalRequest) Open() bool {
	return a.Approved == nil
}

// NotificationKind distinguishes success from error notifications.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient user-facing message. ID is assigned by the
// notification manager when the message is shown.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
