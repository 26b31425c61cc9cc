package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"triad/internal/credentials"
	"triad/internal/domain"
)

func credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored login credentials",
	}
	cmd.AddCommand(credentialsSetCmd(), credentialsShowCmd())
	return cmd
}

func credentialsSetCmd() *cobra.Command {
	var shared, identity string
	cmd := &cobra.Command{
		Use:   "set [login] [password]",
		Short: "Save credentials for the account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := domain.Credentials{
				Login:          args[0],
				Password:       args[1],
				SharedSecret:   shared,
				IdentitySecret: identity,
			}
			if err := credentials.Save(cmd.Context(), wire.Account, c); err != nil {
				return err
			}
			fmt.Println("Saved credentials for", c.Login)
			return nil
		},
	}
	cmd.Flags().StringVar(&shared, "shared-secret", "", "secret used to derive guard codes")
	cmd.Flags().StringVar(&identity, "identity-secret", "", "secret used for confirmation keys")
	return cmd
}

func credentialsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := credentials.Resolve(cmd.Context(), wire.Account, nil)
			if err != nil {
				return err
			}
			fmt.Printf("login=%s password=*** shared=%t identity=%t\n",
				c.Login, c.SharedSecret != "", c.IdentitySecret != "")
			return nil
		},
	}
}
