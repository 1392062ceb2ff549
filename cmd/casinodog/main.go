// Command casinodog is a terminal front-end for a CasinoDog aggregation
// server: browse games, launch sessions and manage local settings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mrfortune94/casinodog"
	"github.com/mrfortune94/casinodog/config"
	"github.com/mrfortune94/casinodog/history"
	"github.com/mrfortune94/casinodog/logging"
	"github.com/mrfortune94/casinodog/prefs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	debug      bool

	cfg     *config.Config
	store   prefs.Store
	client  *casinodog.Client
	history history.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "casinodog",
		Short:         "Browse and launch games from a CasinoDog server",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newPingCmd(a),
		newVersionCmd(a),
		newGamesCmd(a),
		newProvidersCmd(a),
		newGameCmd(a),
		newLaunchCmd(a),
		newSessionCmd(a),
		newFreeSpinsCmd(a),
		newRespinCmd(a),
		newSettingsCmd(a),
		newProfileCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_ = godotenv.Load(".env")
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Debug = true
	}
	if err := logging.ConfigureLogOutput(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	store, err := prefs.NewFS(filepath.Join(cfg.DataDir, "prefs"))
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	a.store = store

	a.client = casinodog.NewClient(store,
		casinodog.ClientConfig{BaseURL: cfg.DefaultBaseURL},
		casinodog.WithPingTimeout(cfg.PingTimeout),
		casinodog.WithRequestTimeout(cfg.RequestTimeout),
	)
	if err := a.client.Restore(); err != nil {
		log.Warnf("using default API settings: %v", err)
	}

	// A database outage degrades history to the local file only.
	hist, err := history.Open(ctx, cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		log.Warnf("history database unavailable, using local file: %v", err)
		hist = history.NewFileStore(cfg.DataDir)
	}
	a.history = hist
	return nil
}
