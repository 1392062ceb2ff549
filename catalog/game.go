// Package catalog turns the loosely shaped games list returned by the API
// into canonical Game records and offers the lobby views built on them.
package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotArray is returned by Decode when the body is not a JSON array.
var ErrNotArray = errors.New("catalog: games list is not an array")

// Accepted source keys per field, in order of preference.
var (
	idKeys        = []string{"game_id", "id"}
	nameKeys      = []string{"name", "game_name"}
	thumbnailKeys = []string{"thumbnail", "image"}
)

// Game is the canonical form of one games list record.
type Game struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	Category     string          `json:"category,omitempty"`
	Volatility   string          `json:"volatility,omitempty"`
	RTP          string          `json:"rtp,omitempty"`
	HasFreeSpins bool            `json:"has_freespins,omitempty"`
	Raw          json.RawMessage `json:"-"`
}

// Decode normalizes a games list body. Elements that are not objects are
// skipped.
func Decode(raw []byte) ([]Game, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrNotArray
	}
	list := gjson.ParseBytes(raw)
	if !list.IsArray() {
		return nil, ErrNotArray
	}
	games := make([]Game, 0, len(list.Array()))
	list.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			games = append(games, Normalize(item))
		}
		return true
	})
	return games, nil
}

// Normalize maps one record onto Game, accepting the alternate key names
// game_id/id, name/game_name and thumbnail/image.
func Normalize(item gjson.Result) Game {
	return Game{
		ID:           first(item, idKeys),
		Name:         first(item, nameKeys),
		Thumbnail:    first(item, thumbnailKeys),
		Provider:     item.Get("provider").String(),
		Category:     item.Get("category").String(),
		Volatility:   item.Get("volatility").String(),
		RTP:          item.Get("rtp").String(),
		HasFreeSpins: item.Get("has_freespins").Bool(),
		Raw:          json.RawMessage(item.Raw),
	}
}

func first(item gjson.Result, keys []string) string {
	for _, k := range keys {
		v := item.Get(k)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

// Featured returns the first n games.
func Featured(games []Game, n int) []Game {
	if n < 0 {
		n = 0
	}
	if len(games) < n {
		n = len(games)
	}
	return games[:n]
}

// Providers lists distinct providers in first-seen order.
func Providers(games []Game) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range games {
		if g.Provider == "" || seen[g.Provider] {
			continue
		}
		seen[g.Provider] = true
		out = append(out, g.Provider)
	}
	return out
}

// Filter keeps games from provider (when non-empty) whose name contains
// query, case-insensitively (when non-empty).
func Filter(games []Game, provider, query string) []Game {
	query = strings.ToLower(query)
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if provider != "" && g.Provider != provider {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Find returns the game with the given ID.
func Find(games []Game, id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
