package casinodog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParams_Encode(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want string
	}{
		{"space as %20", Params{"game_id": "a b", "mode": "real"}, "game_id=a%20b&mode=real"},
		{"literal plus", Params{"q": "1+1"}, "q=1%2B1"},
		{"reserved chars", Params{"name": "Dog & Co/?"}, "name=Dog%20%26%20Co%2F%3F"},
		{"empty value kept", Params{"bonus": ""}, "bonus="},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Encode(); got != tc.want {
				t.Errorf("Encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParams_RoundTrip(t *testing.T) {
	in := Params{
		"game_id":   "a b",
		"game_name": "Wolf Gold + Friends",
		"mode":      "real",
		"currency":  "€",
		"note":      "50%",
	}
	out, err := ParseParams(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatal(diff)
	}
}

func TestSessionRequest_Params(t *testing.T) {
	got := SessionRequest{
		GameID:   "g1",
		GameName: "Gates",
		Provider: "pp",
		Mode:     ModeReal,
		PlayerID: "p1",
		Currency: "EUR",
		Balance:  12.5,
	}.Params()
	want := Params{
		"game_id":   "g1",
		"game_name": "Gates",
		"provider":  "pp",
		"mode":      "real",
		"player_id": "p1",
		"currency":  "EUR",
		"balance":   "12.5",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}
