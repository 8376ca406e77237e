// Package dispatch executes recipe service operations end-to-end.
//
// The registry maps each Operation to a request descriptor (method, path,
// body, notification text) built as a pure function of call parameters.
// Dispatcher issues the HTTP exchange with the fixed defaults every call
// shares (JSON content negotiation, CSRF header) and
// brackets it with lifecycle events: exactly one RequestStarted, then
// exactly one RequestFinished, with the call's notification shown in
// between when the descriptor carries one.
//
// # Error Taxonomy
//
// ErrMissingParam: a required identifier was absent; no request is issued
// and no lifecycle event is published.
//
// ErrNetwork: the exchange failed below HTTP (dial, TLS, body read).
//
// ErrHTTP: the server answered with status >= 400; the returned *HTTPError
// carries the status and parsed JSON error body.
//
// ErrParse: a response body was not valid JSON where JSON was expected.
//
// The dispatcher never retries. Callers own any further handling.
package dispatch
