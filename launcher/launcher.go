// Package launcher turns a catalog game into a playable session URL.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrfortune94/casinodog"
	"github.com/mrfortune94/casinodog/catalog"
	"github.com/mrfortune94/casinodog/history"
	"github.com/mrfortune94/casinodog/prefs"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidMode is returned for a mode other than real or demo.
var ErrInvalidMode = errors.New("launcher: mode must be real or demo")

// defaultBalance is used when the stored profile balance is not a number.
const defaultBalance = 1000

// SessionCreator is the part of the API client the launcher needs.
type SessionCreator interface {
	CreateSessionIframed(ctx context.Context, params casinodog.Params) (*casinodog.SessionResponse, error)
}

// Launch is a ready-to-embed game session.
type Launch struct {
	URL      string
	GameName string
	Request  casinodog.SessionRequest
	Session  *casinodog.SessionResponse
}

type Launcher struct {
	api     SessionCreator
	prefs   prefs.Store
	history history.Store
	now     func() time.Time
}

// New returns a launcher. hist may be nil to skip recording launches.
func New(api SessionCreator, store prefs.Store, hist history.Store) *Launcher {
	if store == nil {
		store = &prefs.Memory{}
	}
	return &Launcher{api: api, prefs: store, history: hist, now: time.Now}
}

// Request builds the session request for game. The wallet comes from the
// stored profile; the player ID is unique per launch attempt.
func (l *Launcher) Request(game catalog.Game, mode casinodog.Mode) (casinodog.SessionRequest, error) {
	if mode == "" {
		mode = casinodog.ModeReal
	}
	if mode != casinodog.ModeReal && mode != casinodog.ModeDemo {
		return casinodog.SessionRequest{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	profile, err := prefs.LoadProfile(l.prefs)
	if err != nil {
		log.Warnf("launcher: using default profile: %v", err)
	}
	return casinodog.SessionRequest{
		GameID:   game.ID,
		GameName: game.Name,
		Provider: game.Provider,
		Mode:     mode,
		PlayerID: fmt.Sprintf("demo_player_%d", l.now().UnixMilli()),
		Currency: profile.Currency,
		Balance:  profile.BalanceAmount(defaultBalance),
	}, nil
}

// Launch creates an iframed session for game. A response without a
// playable URL is a failure just like a transport error.
func (l *Launcher) Launch(ctx context.Context, game catalog.Game, mode casinodog.Mode) (*Launch, error) {
	req, err := l.Request(game, mode)
	if err != nil {
		return nil, err
	}
	entry := log.WithFields(log.Fields{"game": game.ID, "provider": game.Provider, "mode": req.Mode})

	sess, err := l.api.CreateSessionIframed(ctx, req.Params())
	if err != nil {
		entry.Errorf("error launching game: %v", err)
		return nil, fmt.Errorf("launcher: %w", err)
	}
	url, err := sess.LaunchURL()
	if err != nil {
		entry.Errorf("error launching game: %v", err)
		return nil, fmt.Errorf("launcher: %w", err)
	}

	if l.history != nil {
		rec := history.Entry{
			GameID:   req.GameID,
			GameName: req.GameName,
			Provider: req.Provider,
			Mode:     string(req.Mode),
			PlayerID: req.PlayerID,
			URL:      url,
		}
		if err := l.history.Record(ctx, rec); err != nil {
			entry.Warnf("failed to record launch: %v", err)
		}
	}
	entry.Infof("launched %s", game.Name)
	return &Launch{URL: url, GameName: game.Name, Request: req, Session: sess}, nil
}
