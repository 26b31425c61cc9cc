package types

import (
	"net/http"
	"net/url"
)

// RequestOpts is the subset of an outgoing request's options reported to
// request observers.
type RequestOpts struct {
	Method string
	Header http.Header
}

// RequestArgs describes one outgoing request made by a session.
//
// Jar is the session's carry jar; its concrete type belongs to the session
// implementation and observers must treat it as opaque.
type RequestArgs struct {
	URL  *url.URL
	Opts RequestOpts
	Jar  any
}

// PropChange is a single property update on a web session.
type PropChange struct {
	Name  string
	Value any
}
