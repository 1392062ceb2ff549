package fakeserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrfortune94/casinodog"
	"github.com/mrfortune94/casinodog/catalog"
	"github.com/tidwall/gjson"
)

func newClient(t *testing.T, cfg Config) (*Server, *casinodog.Client, *httptest.Server) {
	t.Helper()
	srv, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	c := casinodog.NewClient(nil, casinodog.ClientConfig{BaseURL: ts.URL, AccessKey: cfg.AccessKey})
	return srv, c, ts
}

func TestServer_PingVersion(t *testing.T) {
	_, c, _ := newClient(t, Config{})
	ctx := context.Background()
	body, err := c.PingAccess(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(body, "status").String() != "ok" {
		t.Errorf("ping body %s", body)
	}
	body, err = c.GetVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(body, "version").String() != Version {
		t.Errorf("version body %s", body)
	}
}

func TestServer_GamesLists(t *testing.T) {
	_, c, _ := newClient(t, Config{})
	ctx := context.Background()

	full, err := c.GetGamesList(ctx, casinodog.LayoutFull)
	if err != nil {
		t.Fatal(err)
	}
	games, err := catalog.Decode(full)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 5 || games[2].ID != "bookofdead" || games[2].Name != "Book of Dead" {
		t.Fatalf("full games %+v", games)
	}

	compact, err := c.GetGamesList(ctx, casinodog.LayoutCompact)
	if err != nil {
		t.Fatal(err)
	}
	cgames, err := catalog.Decode(compact)
	if err != nil {
		t.Fatal(err)
	}
	if len(cgames) != 5 || cgames[4].Name != "Lightning Roulette" || cgames[4].Category != "" {
		t.Fatalf("compact games %+v", cgames)
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv, c, ts := newClient(t, Config{})
	ctx := context.Background()
	params := casinodog.SessionRequest{
		GameID:   "starburst",
		GameName: "Starburst",
		Provider: "netent",
		Mode:     casinodog.ModeDemo,
		PlayerID: "demo_player_1",
		Currency: "EUR",
		Balance:  50,
	}.Params()

	plain, err := c.CreateSession(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(plain.Raw, "url").Exists() {
		t.Error("createSession should answer with game_url")
	}
	if _, err := plain.LaunchURL(); err != nil {
		t.Fatal(err)
	}

	framed, err := c.CreateSessionIframed(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	url, err := framed.LaunchURL()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, ts.URL+"/play/") {
		t.Fatalf("launch url %q", url)
	}
	id := gjson.GetBytes(framed.Raw, "session_id").String()
	sess, ok := srv.Session(id)
	if !ok || sess.Mode != "demo" || sess.Currency != "EUR" || sess.Balance != 50 {
		t.Fatalf("session %+v", sess)
	}

	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(page), "Starburst") {
		t.Errorf("play page %s", page)
	}

	body, err := c.AddFreeSpins(ctx, casinodog.Params{"session_id": id, "amount": "5"})
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(body, "freespins").Int() != 5 {
		t.Errorf("freespins body %s", body)
	}
	body, err = c.ToggleRespin(ctx, casinodog.Params{"session_id": id})
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.GetBytes(body, "respin").Bool() {
		t.Errorf("respin body %s", body)
	}
}

func TestServer_Errors(t *testing.T) {
	_, c, _ := newClient(t, Config{})
	ctx := context.Background()
	cases := []struct {
		name   string
		call   func() error
		status int
	}{
		{"unknown game", func() error {
			_, err := c.CreateSessionIframed(ctx, casinodog.Params{"game_id": "nope"})
			return err
		}, http.StatusNotFound},
		{"wrong provider", func() error {
			_, err := c.CreateSession(ctx, casinodog.Params{"game_id": "starburst", "provider": "pragmatic"})
			return err
		}, http.StatusNotFound},
		{"missing game", func() error {
			_, err := c.CreateSession(ctx, nil)
			return err
		}, http.StatusBadRequest},
		{"bad mode", func() error {
			_, err := c.CreateSession(ctx, casinodog.Params{"game_id": "starburst", "mode": "fun"})
			return err
		}, http.StatusBadRequest},
		{"unknown session", func() error {
			_, err := c.ToggleRespin(ctx, casinodog.Params{"session_id": "missing"})
			return err
		}, http.StatusNotFound},
		{"bad amount", func() error {
			_, err := c.AddFreeSpins(ctx, casinodog.Params{"session_id": "x", "amount": "-1"})
			return err
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var se *casinodog.StatusError
			if err := tc.call(); !errors.As(err, &se) || se.StatusCode != tc.status {
				t.Fatalf("expected HTTP %d, got %v", tc.status, err)
			}
		})
	}
}

func TestServer_AccessKey(t *testing.T) {
	_, c, ts := newClient(t, Config{AccessKey: "s3cret"})
	ctx := context.Background()
	if _, err := c.PingAccess(ctx); err != nil {
		t.Fatal(err)
	}

	anon := casinodog.NewClient(nil, casinodog.ClientConfig{BaseURL: ts.URL})
	_, err := anon.PingAccess(ctx)
	var se *casinodog.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestNew_BadGames(t *testing.T) {
	if _, err := New(Config{Games: `{"not":"an array"}`}); !errors.Is(err, catalog.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestServer_ErrorBody(t *testing.T) {
	_, c, _ := newClient(t, Config{})
	_, err := c.ToggleRespin(context.Background(), casinodog.Params{"session_id": "gone"})
	var se *casinodog.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	body := gjson.ParseBytes(se.Body)
	if body.Get("status").String() != "error" || body.Get("error").String() != "unknown_session" {
		t.Errorf("error body %s", se.Body)
	}
	if !strings.Contains(body.Get("message").String(), "gone") {
		t.Errorf("message %q should name the session", body.Get("message").String())
	}
}
