// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (credentials, environment records, request and
// property events) and contracts (store, sessions, authenticator) only.
package domain
