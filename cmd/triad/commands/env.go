package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"triad/internal/bootstrap"
	"triad/internal/domain"
)

func envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env [kind]",
		Short: "Print the persisted environment of each session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := domain.Kinds()
			if len(args) == 1 {
				kinds = []domain.SessionKind{domain.SessionKind(args[0])}
			}
			sessions := wire.Account.Col(bootstrap.SessionsCol)

			out := make(map[domain.SessionKind]*domain.Environment, len(kinds))
			for _, k := range kinds {
				var e domain.Environment
				ok, err := sessions.Col(string(k)).Get(cmd.Context(), "env", &e)
				if err != nil {
					return err
				}
				out[k] = nil
				if ok {
					out[k] = &e
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
}
