// Package library plans and resolves a project's libraries. BuildPlan decides
// per library whether it is copied, linked to a shared checkout, left as is
// or rejected (safe mode never replaces an existing directory with a link).
// Run executes a plan concurrently through a Resolver and returns one
// settled Outcome per library in plan order; individual failures are
// reported in the outcomes, never as an aggregate error. Register and
// Unregister manage the shared links directory that links point into.
package library
