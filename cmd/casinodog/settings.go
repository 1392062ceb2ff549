package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/mrfortune94/casinodog/prefs"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change API and app settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := prefs.LoadSettings(a.store)
			if err != nil {
				return err
			}
			cfg := a.client.Config()
			key := "(not set)"
			if cfg.AccessKey != "" {
				key = "********"
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "API base URL:\t%s\n", cfg.BaseURL)
			fmt.Fprintf(w, "Access key:\t%s\n", key)
			fmt.Fprintf(w, "Username:\t%s\n", orDefault(st.Username, prefs.DefaultUsername))
			fmt.Fprintf(w, "Notifications:\t%t\n", st.Notifications)
			fmt.Fprintf(w, "Sound:\t%t\n", st.SoundEnabled)
			return w.Flush()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-url <url>",
			Short: "Set the API base URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.client.SetBaseURL(args[0])
			},
		},
		&cobra.Command{
			Use:   "set-key <key>",
			Short: "Set the API access key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.client.SetAccessKey(args[0])
			},
		},
		&cobra.Command{
			Use:   "set-username <name>",
			Short: "Set the display name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.updateSettings(func(st *prefs.Settings) error {
					st.Username = args[0]
					return nil
				})
			},
		},
		newToggleCmd(a, "set-notifications", "Enable or disable notifications", func(st *prefs.Settings, v bool) {
			st.Notifications = v
		}),
		newToggleCmd(a, "set-sound", "Enable or disable sound", func(st *prefs.Settings, v bool) {
			st.SoundEnabled = v
		}),
		newSettingsTestCmd(a),
		&cobra.Command{
			Use:   "clear",
			Short: "Erase all stored settings and profile data",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All stored data cleared")
				return nil
			},
		},
	)
	return cmd
}

func (a *app) updateSettings(edit func(*prefs.Settings) error) error {
	st, err := prefs.LoadSettings(a.store)
	if err != nil {
		return err
	}
	if err := edit(&st); err != nil {
		return err
	}
	return prefs.SaveSettings(a.store, st)
}

func newToggleCmd(a *app, use, short string, set func(*prefs.Settings, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <true|false>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", args[0])
			}
			return a.updateSettings(func(st *prefs.Settings) error {
				set(st, v)
				return nil
			})
		},
	}
}

// newSettingsTestCmd saves the given connection settings and then pings.
func newSettingsTestCmd(a *app) *cobra.Command {
	var baseURL, key string
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Save connection settings and test them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL != "" {
				if err := a.client.SetBaseURL(baseURL); err != nil {
					return err
				}
			}
			if key != "" {
				if err := a.client.SetAccessKey(key); err != nil {
					return err
				}
			}
			if _, err := a.client.PingAccess(cmd.Context()); err != nil {
				return fmt.Errorf("connection failed, check your API URL and access key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Connection successful!")
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "API base URL to save before testing")
	cmd.Flags().StringVar(&key, "key", "", "Access key to save before testing")
	return cmd
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
