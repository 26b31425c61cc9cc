package types

// SessionKind names one of the three parallel sessions kept for an account.
type SessionKind string

const (
	// KindMobile is the mobile-app session; it owns the refresh capability.
	KindMobile SessionKind = "mobile"
	// KindWeb is the web-browser session.
	KindWeb SessionKind = "web"
	// KindClient is the desktop-client session.
	KindClient SessionKind = "client"
)

// String returns the string form of the session kind.
func (k SessionKind) String() string { return string(k) }

// Kinds lists every session kind in construction order.
func Kinds() []SessionKind { return []SessionKind{KindMobile, KindWeb, KindClient} }
