// Package session holds the in-memory state shared across a console
// session, currently the pointer to the selected recipe.
package session
