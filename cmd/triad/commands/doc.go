// Package commands defines the triad CLI and wires dependencies for subcommands.
//
// Commands
//
//   - credentials set   Store login credentials for the account
//   - credentials show  Print the stored login (password masked)
//   - start             Restore the mobile, web and client sessions
//   - env               Print the persisted environment of each session
//   - props             List or set mirrored web properties
//
// # Implementation
//
// The root command loads configuration from TRIAD_* variables, applies flag
// overrides and builds an app.Wire (logger, store backend rooted at the
// account, session factories) before any subcommand runs.
package commands
