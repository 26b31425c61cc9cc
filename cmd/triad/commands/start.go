package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"triad/internal/bootstrap"
	"triad/internal/domain"
	"triad/internal/events"
	"triad/internal/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func startCmd() *cobra.Command {
	var (
		logRequests bool
		ping        bool
		once        bool
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Restore the account's sessions and keep them alive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log := wire.Log

			res, err := bootstrap.Start(ctx, bootstrap.Options{
				Store:     wire.Account,
				Proxy:     cfg.Proxy,
				Factories: wire.Factories,
				Env:       wire.Env,
				Log:       log,
			})
			if err != nil {
				return err
			}
			defer res.Props.Cancel()

			var subs []*events.Subscription
			defer func() {
				for _, s := range subs {
					s.Cancel()
				}
			}()
			if logRequests {
				subs = append(subs, res.Helpers.UseRequestLoggers(nil)...)
			}

			if cfg.MetricsAddr != "" {
				reg := prometheus.NewRegistry()
				counter, err := metrics.NewRequestCounter(reg)
				if err != nil {
					return err
				}
				subs = append(subs, res.Helpers.UseRequestLoggers(counter.Observe)...)

				srv := &http.Server{
					Addr:              cfg.MetricsAddr,
					Handler:           metrics.Handler(reg),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics.listen", "addr", cfg.MetricsAddr, "err", err)
					}
				}()
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(sctx)
				}()
				log.Info("metrics.listening", "addr", cfg.MetricsAddr)
			}

			if ping {
				sessions := []struct {
					kind domain.SessionKind
					s    any
				}{
					{domain.KindMobile, res.Mobile},
					{domain.KindWeb, res.Web},
					{domain.KindClient, res.Client},
				}
				for _, s := range sessions {
					p, ok := s.s.(pinger)
					if !ok {
						continue
					}
					if err := p.Ping(ctx); err != nil {
						return fmt.Errorf("ping %s: %w", s.kind, err)
					}
				}
			}

			fmt.Println("Sessions ready for account", cfg.Account)
			if once {
				return nil
			}
			<-ctx.Done()
			log.Info("shutting down")
			return nil
		},
	}
	cmd.Flags().BoolVar(&logRequests, "log-requests", false, "print every outgoing session request")
	cmd.Flags().BoolVar(&ping, "ping", false, "ping the API once with each session after restore")
	cmd.Flags().BoolVar(&once, "once", false, "exit after restoring instead of waiting for a signal")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	return cmd
}
