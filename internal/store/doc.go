// Package store provides the hierarchical key/value persistence behind an
// account: credentials, per-session restore state and web properties.
//
// Every backend implements domain.Store. Values are JSON documents addressed
// by (namespace path, key); Col nests namespaces to any depth. Three backends
// are available:
//   - Memory: process-local, used by tests and ephemeral runs
//   - File: one JSON document per namespace directory under a home dir,
//     written atomically and optionally sealed with a passphrase
//   - Postgres: a single kv table keyed by (namespace, key)
//
// All backends serialise conflicting writes internally, so handles for
// different namespaces may be used concurrently.
package store
