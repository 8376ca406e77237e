// Package api defines wire-format types for the recipe service REST API.
// It mirrors the JSON payloads served under /api/v1/ so the dispatch and
// actions layers can decode responses without coupling to transport code.
//
// # Key Types
//
// Recipe: a recipe with its enabled state, action name, and arguments.
//
// RecipeRevision: a point-in-time snapshot of a recipe, as returned by the
// revision and history endpoints.
//
// ApprovalRequest: the review state attached to a revision.
//
// Notification: a transient user-facing message managed by the notifications
// package.
//
// # Design Notes
//
// JSON tags use snake_case to match the server's serializers. Arguments and
// filter expressions are passed through as json.RawMessage to avoid
// double-encoding payloads the client never interprets.
package api
