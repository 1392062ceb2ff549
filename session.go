package casinodog

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// launchURLKeys lists the accepted names of the playable URL, in order of preference.
var launchURLKeys = []string{"url", "game_url"}

// SessionResponse is the opaque body returned by the session endpoints.
type SessionResponse struct {
	Raw json.RawMessage
}

// LaunchURL returns the playable URL from the response, accepting either
// "url" or "game_url". A body with neither yields ErrNoLaunchURL.
func (r *SessionResponse) LaunchURL() (string, error) {
	if r == nil || len(r.Raw) == 0 {
		return "", ErrNoLaunchURL
	}
	for _, key := range launchURLKeys {
		v := gjson.GetBytes(r.Raw, key)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}
	return "", ErrNoLaunchURL
}
