// Package events provides per-object publish/subscribe streams.
//
// Each session owns its own streams (requests, property updates) rather than
// sharing a global bus. Handlers run synchronously on the publishing goroutine
// and may be invoked concurrently when several goroutines publish at once.
package events
