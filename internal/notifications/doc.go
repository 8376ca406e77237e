// Package notifications tracks the transient messages shown to the user
// while operations run.
//
// Manager assigns identifiers, publishes shown/dismissed events on the
// application bus, and auto-dismisses each notification after a fixed delay
// unless it is dismissed earlier. Dismissing an unknown identifier is a
// no-op. State lives only in memory for the lifetime of the session.
package notifications
