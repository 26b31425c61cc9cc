// Package app wires application dependencies for the CLI.
//
// It loads Config from TRIAD_* environment variables, builds the logger and
// the account store backend (file, memory or postgres) and exposes them,
// together with the session factories, via the Wire struct for commands to
// use.
package app
