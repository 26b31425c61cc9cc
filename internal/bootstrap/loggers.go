package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"triad/internal/domain"
	"triad/internal/events"
)

// RequestLogger observes one outgoing request of one session.
type RequestLogger func(login string, kind domain.SessionKind, args domain.RequestArgs)

// DefaultRequestLogger writes "> login kind url" lines to stdout.
var DefaultRequestLogger = LineLogger(os.Stdout)

// LineLogger returns a RequestLogger writing "> login kind url" lines to w.
// It holds no state beyond w; each line is a single Write.
func LineLogger(w io.Writer) RequestLogger {
	return func(login string, kind domain.SessionKind, args domain.RequestArgs) {
		u := ""
		if args.URL != nil {
			u = args.URL.String()
		}
		_, _ = fmt.Fprintf(w, "> %s %s %s\n", login, kind, u)
	}
}

// SlogLogger returns a RequestLogger emitting debug records on log.
func SlogLogger(log *slog.Logger) RequestLogger {
	return func(login string, kind domain.SessionKind, args domain.RequestArgs) {
		u := ""
		if args.URL != nil {
			u = args.URL.String()
		}
		log.Debug("session.request", "login", login, "session", string(kind), "method", args.Opts.Method, "url", u)
	}
}

// Helpers are the extras returned with a bootstrapped account.
type Helpers struct {
	login string
	res   *Result
}

// UseRequestLoggers subscribes logger (DefaultRequestLogger when nil) to the
// request streams of the web, mobile and client sessions. Each call adds an
// independent set of subscriptions.
func (h Helpers) UseRequestLoggers(logger RequestLogger) []*events.Subscription {
	if logger == nil {
		logger = DefaultRequestLogger
	}
	login := h.login

	sources := []struct {
		kind domain.SessionKind
		src  domain.RequestSource
	}{
		{domain.KindWeb, h.res.Web},
		{domain.KindMobile, h.res.Mobile},
		{domain.KindClient, h.res.Client},
	}

	subs := make([]*events.Subscription, 0, len(sources))
	for _, s := range sources {
		kind := s.kind
		subs = append(subs, s.src.Requests().Subscribe(func(args domain.RequestArgs) {
			logger(login, kind, args)
		}))
	}
	return subs
}
