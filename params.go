package casinodog

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is a flat set of query parameters. Nested values are not supported.
type Params map[string]string

// Encode renders p as a query string with keys sorted and spaces written
// as %20.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	// url.Values writes a literal '+' as %2B, so every remaining '+' is a space.
	return strings.ReplaceAll(v.Encode(), "+", "%20")
}

// ParseParams is the inverse of Encode. For repeated keys the first value wins.
func ParseParams(query string) (Params, error) {
	v, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	out := make(Params, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out, nil
}

// Mode selects real-money or demo play.
type Mode string

const (
	ModeReal Mode = "real"
	ModeDemo Mode = "demo"
)

// SessionRequest describes one launch attempt. It is built fresh per launch
// and never persisted.
type SessionRequest struct {
	GameID   string
	GameName string
	Provider string
	Mode     Mode
	PlayerID string
	Currency string
	Balance  float64
}

// Params flattens the request into the createSession query parameters.
func (r SessionRequest) Params() Params {
	return Params{
		"game_id":   r.GameID,
		"game_name": r.GameName,
		"provider":  r.Provider,
		"mode":      string(r.Mode),
		"player_id": r.PlayerID,
		"currency":  r.Currency,
		"balance":   formatAmount(r.Balance),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
