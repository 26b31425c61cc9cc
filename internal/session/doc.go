// Package session implements the three session kinds an account keeps open
// against the remote service: mobile, web and desktop client.
//
// All three follow one restore-or-create routine (Restore): load the
// persisted environment record from the session's namespace, pass it through
// the kind's resolver, persist the result when it changed, then build the
// session around it. The mobile session additionally restores its tokens and
// falls back to a full login; it owns the refresh capability the other two
// borrow.
//
// Every session routes its HTTP traffic through a hooking transport that
// publishes each outgoing request on the session's own Requests stream.
package session
