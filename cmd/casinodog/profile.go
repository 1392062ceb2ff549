package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/mrfortune94/casinodog/prefs"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the player profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prefs.LoadProfile(a.store)
			if err != nil {
				return err
			}
			played, err := a.history.Count(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Username:\t%s\n", p.Username)
			fmt.Fprintf(w, "Balance:\t%s %s\n", p.Balance, p.Currency)
			fmt.Fprintf(w, "Games played:\t%d\n", played)
			return w.Flush()
		},
	}

	var username, balance, currency string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if balance != "" {
				if _, err := strconv.ParseFloat(balance, 64); err != nil {
					return fmt.Errorf("invalid balance %q", balance)
				}
			}
			return prefs.SaveProfile(a.store, prefs.Profile{
				Username: username,
				Balance:  balance,
				Currency: currency,
			})
		},
	}
	set.Flags().StringVar(&username, "username", "", "Display name")
	set.Flags().StringVar(&balance, "balance", "", "Balance sent with new sessions")
	set.Flags().StringVar(&currency, "currency", "", "Currency code sent with new sessions")
	cmd.AddCommand(set)
	return cmd
}
