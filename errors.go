package casinodog

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoLaunchURL means a session response carried neither "url" nor
	// "game_url". Callers treat it like any other launch failure.
	ErrNoLaunchURL = errors.New("casinodog: session response has no playable url")

	// ErrInvalidLayout is returned for a games list layout other than full or compact.
	ErrInvalidLayout = errors.New("casinodog: invalid games list layout")

	// ErrMalformedBody wraps JSON decoding failures of a response body.
	ErrMalformedBody = errors.New("casinodog: malformed response body")

	// ErrBodyTooLarge is returned when a response body exceeds the client's limit.
	ErrBodyTooLarge = errors.New("casinodog: response body too large")
)

// maxErrorBody is how much of a failed response body Error shows.
const maxErrorBody = 200

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if len(msg) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}
