// Package events carries the typed application events published while
// operations run: request lifecycle signals, domain results, and
// notification visibility changes.
//
// Event is a closed marker interface; only types embedding the unexported
// base can satisfy it, so the full event set is known at compile time.
// The Bus fans events out to subscribers over buffered channels and never
// blocks a publisher on a slow consumer.
package events
