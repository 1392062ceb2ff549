package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/mrfortune94/casinodog"
	"github.com/mrfortune94/casinodog/catalog"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadGames fetches and normalizes the catalog. A body that is not a list
// is shown as an empty catalog.
func (a *app) loadGames(ctx context.Context, layout casinodog.Layout) ([]catalog.Game, error) {
	raw, err := a.client.GetGamesList(ctx, layout)
	if err != nil {
		return nil, err
	}
	games, err := catalog.Decode(raw)
	if errors.Is(err, catalog.ErrNotArray) {
		log.WithField("layout", layout).Warn("games list is not an array; showing no games")
		return nil, nil
	}
	return games, err
}

func newGamesCmd(a *app) *cobra.Command {
	var (
		layout   string
		provider string
		search   string
		featured int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games, optionally filtered by provider or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && provider == "" && search == "" && featured == 0 {
				raw, err := a.client.GetGamesList(cmd.Context(), casinodog.Layout(layout))
				if err != nil {
					return fmt.Errorf("could not load games: %w", err)
				}
				printJSON(cmd.OutOrStdout(), raw)
				return nil
			}
			games, err := a.loadGames(cmd.Context(), casinodog.Layout(layout))
			if err != nil {
				return fmt.Errorf("could not load games: %w", err)
			}
			if provider != "" && len(games) > 0 && !slices.Contains(catalog.Providers(games), provider) {
				return fmt.Errorf("unknown provider %q, available: %s", provider, strings.Join(catalog.Providers(games), ", "))
			}
			games = catalog.Filter(games, provider, search)
			if featured > 0 {
				games = catalog.Featured(games, featured)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROVIDER\tCATEGORY")
			for _, g := range games {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, g.Name, g.Provider, g.Category)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(games) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No games found")
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&layout, "layout", string(casinodog.LayoutFull), "Games list layout: full or compact")
	flags.StringVar(&provider, "provider", "", "Only games from this provider")
	flags.StringVar(&search, "search", "", "Only games whose name contains this text")
	flags.IntVar(&featured, "featured", 0, "Show only the first N games")
	flags.BoolVar(&asJSON, "json", false, "Print the raw games list")
	return cmd
}

func newProvidersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List game providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.loadGames(cmd.Context(), casinodog.LayoutFull)
			if err != nil {
				return fmt.Errorf("could not load games: %w", err)
			}
			idx := catalog.NewIndex(games)
			for _, p := range idx.ListProviders() {
				ids, _ := idx.ListGames(p)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d games)\n", p, len(ids))
			}
			return nil
		},
	}
}

func newGameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show details of one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.loadGames(cmd.Context(), casinodog.LayoutFull)
			if err != nil {
				return fmt.Errorf("could not load games: %w", err)
			}
			g, ok := catalog.Find(games, args[0])
			if !ok {
				return fmt.Errorf("game %q not found", args[0])
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, row := range [][2]string{
				{"Name", g.Name},
				{"ID", g.ID},
				{"Provider", g.Provider},
				{"Category", g.Category},
				{"Volatility", g.Volatility},
				{"RTP", g.RTP},
				{"Thumbnail", g.Thumbnail},
			} {
				if row[1] != "" {
					fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
				}
			}
			if g.HasFreeSpins {
				fmt.Fprintln(w, "Features:\tfree spins")
			}
			return w.Flush()
		},
	}
}
