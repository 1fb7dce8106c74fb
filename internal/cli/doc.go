// Package cli defines the Cobra command tree for the enyo CLI. Each file
// in this package registers one top-level command (init, link, config, etc.)
// with the root command. Command implementations delegate to internal packages
// and only handle flag parsing and output formatting.
package cli
