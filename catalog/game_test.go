package catalog

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleList = `[
  {"game_id":"g1","name":"Gates of Olympus","thumbnail":"https://img/g1.png","provider":"pragmatic","category":"slots","volatility":"high","rtp":96.5,"has_freespins":true},
  {"id":"g2","game_name":"Book of Dead","image":"https://img/g2.png","provider":"playngo"},
  {"id":17,"name":"Sweet Bonanza","provider":"pragmatic","rtp":"96.48"},
  "garbage",
  {"game_id":null,"id":"g4","name":"","game_name":"Wolf Gold"}
]`

func TestDecode_NormalizesAlternateKeys(t *testing.T) {
	games, err := Decode([]byte(sampleList))
	if err != nil {
		t.Fatal(err)
	}
	want := []Game{
		{ID: "g1", Name: "Gates of Olympus", Thumbnail: "https://img/g1.png", Provider: "pragmatic", Category: "slots", Volatility: "high", RTP: "96.5", HasFreeSpins: true},
		{ID: "g2", Name: "Book of Dead", Thumbnail: "https://img/g2.png", Provider: "playngo"},
		{ID: "17", Name: "Sweet Bonanza", Provider: "pragmatic", RTP: "96.48"},
		{ID: "g4", Name: "Wolf Gold"},
	}
	if diff := cmp.Diff(want, games, cmpopts.IgnoreFields(Game{}, "Raw")); diff != "" {
		t.Fatal(diff)
	}
	if string(games[1].Raw) == "" {
		t.Error("Raw should keep the source record")
	}
}

func TestDecode_NotArray(t *testing.T) {
	for _, body := range []string{`{"games":[]}`, `"x"`, `not json`, ``} {
		if _, err := Decode([]byte(body)); !errors.Is(err, ErrNotArray) {
			t.Errorf("Decode(%q) err = %v", body, err)
		}
	}
	games, err := Decode([]byte(`[]`))
	if err != nil || len(games) != 0 {
		t.Errorf("empty list: %v, %v", games, err)
	}
}

func TestViews(t *testing.T) {
	games, err := Decode([]byte(sampleList))
	if err != nil {
		t.Fatal(err)
	}

	if got := Featured(games, 2); len(got) != 2 || got[0].ID != "g1" {
		t.Errorf("Featured(2) = %+v", got)
	}
	if got := Featured(games, 10); len(got) != len(games) {
		t.Errorf("Featured(10) len %d", len(got))
	}

	if diff := cmp.Diff([]string{"pragmatic", "playngo"}, Providers(games)); diff != "" {
		t.Error(diff)
	}

	ids := func(gs []Game) []string {
		var out []string
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}
	if diff := cmp.Diff([]string{"g1", "17"}, ids(Filter(games, "pragmatic", ""))); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"17"}, ids(Filter(games, "pragmatic", "SWEET"))); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"g2"}, ids(Filter(games, "", "of d"))); diff != "" {
		t.Error(diff)
	}

	if g, ok := Find(games, "g2"); !ok || g.Name != "Book of Dead" {
		t.Errorf("Find(g2) = %+v, %v", g, ok)
	}
	if _, ok := Find(games, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
}

func TestIndex(t *testing.T) {
	games, _ := Decode([]byte(sampleList))
	idx := NewIndex(games)

	if diff := cmp.Diff([]string{"playngo", "pragmatic"}, idx.ListProviders()); diff != "" {
		t.Fatal(diff)
	}
	// Both views leave out games without a provider.
	want := append([]string(nil), Providers(games)...)
	sort.Strings(want)
	if diff := cmp.Diff(want, idx.ListProviders()); diff != "" {
		t.Errorf("Providers and Index disagree: %s", diff)
	}
	if !idx.HasGame("pragmatic", "17") {
		t.Error("pragmatic/17 should exist")
	}
	if idx.HasGame("playngo", "g1") {
		t.Error("playngo/g1 should not exist")
	}
	if _, ok := idx.ListGames(""); ok {
		t.Error("games without a provider should not be indexed")
	}
	if _, ok := idx.ListGames("unknown"); ok {
		t.Error("unknown provider should not be listed")
	}
}
