package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"triad/internal/app"
)

var (
	cfg  app.Config
	wire *app.Wire
)

func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

// execute runs the CLI with args. The wire is closed on every path,
// including commands that fail, which cobra's post-run hooks do not cover.
func execute(ctx context.Context, args []string) error {
	cfg = app.LoadConfig()
	wire = nil
	defer func() {
		if wire != nil {
			wire.Close()
		}
	}()

	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "triad",
		Short:        "Restore and keep alive mobile, web and client sessions for an account",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
			w, err := app.NewWire(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Home, "home", cfg.Home, "config dir (default ~/.triad)")
	pf.StringVarP(&cfg.Account, "account", "a", cfg.Account, "account namespace")
	pf.StringVar(&cfg.Store, "store", cfg.Store, "store backend: file | memory | postgres")
	pf.StringVarP(&cfg.Passphrase, "passphrase", "p", cfg.Passphrase, "passphrase sealing the file store")
	pf.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string")
	pf.StringVar(&cfg.APIURL, "api", cfg.APIURL, "auth API base URL")
	pf.StringVar(&cfg.Proxy, "proxy", cfg.Proxy, "proxy URL for mobile and web sessions")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug | info | warn | error")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "pretty | json")

	root.AddCommand(credentialsCmd(), startCmd(), envCmd(), propsCmd())
	return root
}
