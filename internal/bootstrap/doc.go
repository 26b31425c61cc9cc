// Package bootstrap restores an account's three sessions from storage and
// keeps them wired to it.
//
// Start resolves credentials, then restores the mobile, web and client
// sessions strictly in that order (web and client borrow the mobile
// session's refresher), hydrates the web session's properties from storage
// and mirrors later property changes back. Errors from any step are returned
// unmodified and no partial result is produced.
//
// The returned Helpers expose UseRequestLoggers, which fans a single logger
// out over the request streams of all three sessions.
package bootstrap
