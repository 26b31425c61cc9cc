package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"triad/internal/bootstrap"
)

func propsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props",
		Short: "List mirrored web properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := wire.Account.Col(bootstrap.PropsCol).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s=%s\n", k, all[k])
			}
			return nil
		},
	}
	cmd.AddCommand(propsSetCmd())
	return cmd
}

func propsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [name] [json-value]",
		Short: "Set a property; it is hydrated into the web session on next start",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if err := json.Unmarshal([]byte(args[1]), &v); err != nil {
				// Treat non-JSON input as a plain string.
				v = args[1]
			}
			return wire.Account.Col(bootstrap.PropsCol).Set(cmd.Context(), args[0], v)
		},
	}
}
