package main

import (
	"encoding/json"
	"fmt"

	"github.com/mrfortune94/casinodog"
	"github.com/mrfortune94/casinodog/catalog"
	"github.com/mrfortune94/casinodog/launcher"
	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.client.PingAccess(cmd.Context()); err != nil {
				return fmt.Errorf("could not connect to the API, check your settings and try again: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Connection to CasinoDog API successful!")
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.client.GetVersion(cmd.Context())
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), body)
			return nil
		},
	}
}

func newLaunchCmd(a *app) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "launch <game-id>",
		Short: "Create a session for a game and print its playable URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.loadGames(cmd.Context(), casinodog.LayoutFull)
			if err != nil {
				return fmt.Errorf("could not launch game, check your connection and try again: %w", err)
			}
			game, ok := catalog.Find(games, args[0])
			if !ok {
				return fmt.Errorf("game %q not found", args[0])
			}
			mode := casinodog.ModeReal
			if demo {
				mode = casinodog.ModeDemo
			}
			l := launcher.New(a.client, a.store, a.history)
			launch, err := l.Launch(cmd.Context(), game, mode)
			if err != nil {
				return fmt.Errorf("failed to launch game: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", launch.GameName, mode, launch.URL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Play for fun instead of real money")
	return cmd
}

func newSessionCmd(a *app) *cobra.Command {
	var iframed bool
	cmd := &cobra.Command{
		Use:   "session key=value...",
		Short: "Create a session with raw parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			var sess *casinodog.SessionResponse
			if iframed {
				sess, err = a.client.CreateSessionIframed(cmd.Context(), params)
			} else {
				sess, err = a.client.CreateSession(cmd.Context(), params)
			}
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), sess.Raw)
			return nil
		},
	}
	cmd.Flags().BoolVar(&iframed, "iframed", false, "Request an embeddable session URL")
	return cmd
}

func newControlCmd(use, short string, call func(*cobra.Command, casinodog.Params) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " key=value...",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			body, err := call(cmd, params)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), body)
			return nil
		},
	}
}

func newFreeSpinsCmd(a *app) *cobra.Command {
	return newControlCmd("freespins", "Add free spins to a session", func(cmd *cobra.Command, p casinodog.Params) (json.RawMessage, error) {
		return a.client.AddFreeSpins(cmd.Context(), p)
	})
}

func newRespinCmd(a *app) *cobra.Command {
	return newControlCmd("respin", "Toggle the respin feature of a session", func(cmd *cobra.Command, p casinodog.Params) (json.RawMessage, error) {
		return a.client.ToggleRespin(cmd.Context(), p)
	})
}
