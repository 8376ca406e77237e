// Package actions exposes one typed method per registry operation.
//
// Each method routes through the dispatcher (which owns lifecycle events and
// notifications), decodes the response into api types, publishes the
// matching domain event, and keeps the session's selected-recipe pointer
// current. Errors from the dispatcher pass through untouched so callers can
// inspect the taxonomy in the dispatch package.
package actions
