// Package main runs the in-memory auth API used by triad during development
// and tests.
//
// HTTP API
//
//	POST /auth/login    {login, password, two_factor_code?} -> Tokens
//	POST /auth/refresh  {refresh_token}                  -> Tokens
//	GET  /ping          Authorization: Bearer <access>   -> 200
//
// Behaviour
//
//   - Accounts come from -accounts (or DEVAUTH_ACCOUNTS) as login:password pairs.
//   - All state is held in memory and lost on process exit.
//   - The default listen address is :8081.
package main
