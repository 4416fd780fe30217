// Package workflows implements the operations behind Matai's CLI commands,
// decoupled from flag parsing and terminal output.
//
// Each workflow takes a context and an Options struct and returns a Result
// struct, so commands stay thin and integration tests can drive operations
// directly. Workflows fail fast: every input is validated up front and all
// validation failures are aggregated into a single error before any
// cryptographic work begins. Nothing is emitted on failure: an artifact
// either comes back complete or not at all.
package workflows
