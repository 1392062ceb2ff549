package casinodog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStatusError_TruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes and straddles the cut.
	body := strings.Repeat("a", maxErrorBody-1) + strings.Repeat("é", 10)
	msg := (&StatusError{StatusCode: 502, Body: []byte(body)}).Error()
	if !utf8.ValidString(msg) {
		t.Fatalf("invalid UTF-8 in %q", msg)
	}
	want := "HTTP 502: " + strings.Repeat("a", maxErrorBody-1) + "..."
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}
}

func TestStatusError_ShortAndEmptyBodies(t *testing.T) {
	for _, tc := range []struct {
		body string
		want string
	}{
		{"", "HTTP 404"},
		{"  \n", "HTTP 404"},
		{`{"error":"nope"}`, `HTTP 404: {"error":"nope"}`},
	} {
		if got := (&StatusError{StatusCode: 404, Body: []byte(tc.body)}).Error(); got != tc.want {
			t.Errorf("body %q: got %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestClient_BodySizeLimit(t *testing.T) {
	srv := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/version":
			w.Write([]byte(`"` + strings.Repeat("x", 14) + `"`)) // exactly 16 bytes
		default:
			w.Write([]byte(`"` + strings.Repeat("x", 64) + `"`))
		}
	}))
	c := NewClient(nil, ClientConfig{BaseURL: srv.URL})
	c.maxBody = 16

	if _, err := c.GetVersion(context.Background()); err != nil {
		t.Fatalf("body at the limit: %v", err)
	}
	if _, err := c.PingAccess(context.Background()); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestNewClient_DefaultBodyLimit(t *testing.T) {
	if c := NewClient(nil, ClientConfig{}); c.maxBody != DefaultMaxBodySize {
		t.Fatalf("maxBody = %d", c.maxBody)
	}
}
