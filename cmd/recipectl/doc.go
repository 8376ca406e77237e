// Package main hosts the recipectl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into recipe
// service API calls: listing and inspecting recipes, mutating them, walking
// revision history, and driving the approval workflow. It centralizes
// configuration resolution, client wiring, and structured logging setup so
// subcommands can focus on user experience instead of plumbing.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
