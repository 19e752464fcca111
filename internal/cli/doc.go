// Package cli defines the Cobra command tree for the reffix CLI. The root
// command runs the reference fixer; the remaining files each register one
// subcommand. Commands only handle flags and output formatting and delegate
// the work to the fixer, mapping and config packages.
package cli
