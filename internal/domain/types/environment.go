package types

// Viewport is the reported screen size of a synthetic browser.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EnvMeta carries the bookkeeping fields of an environment record.
type EnvMeta struct {
	// Updated is the unix-millisecond time the record was last (re)generated.
	// Zero means the record is stale.
	Updated  int64     `json:"updated,omitempty"`
	DeviceID string    `json:"deviceid,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Environment is the synthetic client identity a session presents to the
// remote service.
type Environment struct {
	Kind      SessionKind       `json:"kind,omitempty"`
	Platform  string            `json:"platform,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	Language  string            `json:"language,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	Meta      EnvMeta           `json:"meta"`
}

// Clone returns a deep copy of e.
func (e Environment) Clone() Environment {
	out := e
	if e.Headers != nil {
		out.Headers = make(map[string]string, len(e.Headers))
		for k, v := range e.Headers {
			out.Headers[k] = v
		}
	}
	if e.Meta.Viewport != nil {
		vp := *e.Meta.Viewport
		out.Meta.Viewport = &vp
	}
	return out
}

// EnvResolver maps a persisted environment record (zero value when absent)
// to the record a session should use.
type EnvResolver func(old Environment) Environment
