// Package remote provides the JSON-over-HTTP client for the remote service's
// auth endpoints, plus an in-memory development server implementing them.
//
// HTTP API
//
//	POST /auth/login   { login, password, two_factor_code?, device_id?, platform? }
//	    Issue tokens for valid credentials.
//
//	POST /auth/refresh { refresh_token }
//	    Issue a new access token for a refresh token.
//
//	GET /ping
//	    Echo 200 when the bearer access token is valid.
//
// Non-2xx statuses are returned as *StatusError with the HTTP method, full
// URL and status text to aid diagnostics.
package remote
