package dispatch

import (
	"net/url"
	"strings"
)

// Operation enumerates every call the client can issue. The set is closed;
// resolving an out-of-range value fails with ErrUnknownOperation.
type Operation int

const (
	OpGetCurrentUser Operation = iota
	OpFetchAllRecipes
	OpFetchSignedRecipes
	OpFetchSingleRecipe
	OpFetchSingleRevision
	OpOpenApprovalRequest
	OpAcceptApprovalRequest
	OpRejectApprovalRequest
	OpCloseApprovalRequest
	OpFetchRecipeHistory
	OpAddRecipe
	OpUpdateRecipe
	OpDeleteRecipe
	OpEnableRecipe
	OpDisableRecipe
)

var operationNames = map[Operation]string{
	OpGetCurrentUser:        "getCurrentUser",
	OpFetchAllRecipes:       "fetchAllRecipes",
	OpFetchSignedRecipes:    "fetchSignedRecipes",
	OpFetchSingleRecipe:     "fetchSingleRecipe",
	OpFetchSingleRevision:   "fetchSingleRevision",
	OpOpenApprovalRequest:   "openApprovalRequest",
	OpAcceptApprovalRequest: "acceptApprovalRequest",
	OpRejectApprovalRequest: "rejectApprovalRequest",
	OpCloseApprovalRequest:  "closeApprovalRequest",
	OpFetchRecipeHistory:    "fetchRecipeHistory",
	OpAddRecipe:             "addRecipe",
	OpUpdateRecipe:          "updateRecipe",
	OpDeleteRecipe:          "deleteRecipe",
	OpEnableRecipe:          "enableRecipe",
	OpDisableRecipe:         "disableRecipe",
}

// String returns the operation's wire name as used in logs and events.
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

// Params carries the call-time inputs a descriptor builder may need. Each
// operation reads only the fields it requires and validates their presence.
type Params struct {
	RecipeID   int64
	RevisionID string
	RequestID  int64
	// Payload is marshalled as the JSON request body for operations that
	// accept one (addRecipe, updateRecipe, approval comments).
	Payload any
	// Filters narrows fetchAllRecipes; ignored by every other operation.
	Filters RecipeFilters
}

// RecipeFilters mirrors the listing endpoint's query parameters. Zero values
// are omitted from the query string.
type RecipeFilters struct {
	Enabled   *bool
	Action    string
	Channels  []string
	Locales   []string
	Countries []string
}

// Values renders the filters as URL query values. Multi-valued filters are
// comma-joined, matching the server's split-on-comma parsing.
func (f RecipeFilters) Values() url.Values {
	values := url.Values{}
	if f.Enabled != nil {
		if *f.Enabled {
			values.Set("enabled", "true")
		} else {
			values.Set("enabled", "false")
		}
	}
	if action := strings.TrimSpace(f.Action); action != "" {
		values.Set("action", action)
	}
	if len(f.Channels) > 0 {
		values.Set("channels", strings.Join(f.Channels, ","))
	}
	if len(f.Locales) > 0 {
		values.Set("locales", strings.Join(f.Locales, ","))
	}
	if len(f.Countries) > 0 {
		values.Set("countries", strings.Join(f.Countries, ","))
	}
	return values
}

func (f RecipeFilters) empty() bool {
	return f.Enabled == nil && strings.TrimSpace(f.Action) == "" &&
		len(f.Channels) == 0 && len(f.Locales) == 0 && len(f.Countries) == 0
}
