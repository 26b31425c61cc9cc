package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"triad/internal/app"
	"triad/internal/remote"
)

func main() {
	addr := flag.String("addr", app.EnvString("DEVAUTH_ADDR", ":8081"), "listen address")
	accounts := flag.String("accounts", app.EnvString("DEVAUTH_ACCOUNTS", "alice:secret"), "comma separated login:password pairs")
	flag.Parse()

	log := app.NewLogger(app.EnvString("TRIAD_LOG_LEVEL", "info"), app.EnvString("TRIAD_LOG_FORMAT", "pretty"))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           remote.NewDevServer(log, parseAccounts(*accounts)).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("devauth listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("devauth stopped", "err", err)
		os.Exit(1)
	}
}

func parseAccounts(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		login, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || login == "" {
			continue
		}
		out[login] = pass
	}
	return out
}
