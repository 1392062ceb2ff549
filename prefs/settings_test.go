package prefs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSettings_Defaults(t *testing.T) {
	got, err := LoadSettings(&Memory{})
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{Notifications: true, SoundEnabled: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestSaveLoadSettings(t *testing.T) {
	s := &Memory{}
	s.Set(KeyAPIBaseURL, "https://casino.test")
	s.Set(KeyAccessKey, "k1")
	err := SaveSettings(s, Settings{Username: "carol", Notifications: false, SoundEnabled: true})
	if err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(s)
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{
		APIBaseURL:    "https://casino.test",
		AccessKey:     "k1",
		Username:      "carol",
		Notifications: false,
		SoundEnabled:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
	if v, _ := s.Get(KeyNotifications); v != "false" {
		t.Errorf("notifications stored as %q", v)
	}
}

func TestSaveSettings_SkipsEmptyUsername(t *testing.T) {
	s := &Memory{}
	s.Set(KeyUsername, "dave")
	if err := SaveSettings(s, Settings{}); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(KeyUsername); v != "dave" {
		t.Errorf("username overwritten: %q", v)
	}
}

func TestLoadProfile(t *testing.T) {
	s := &Memory{}
	p, err := LoadProfile(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Profile{Username: "Demo Player", Balance: "1000.00", Currency: "USD"}, p); diff != "" {
		t.Fatal(diff)
	}
	if err := SaveProfile(s, Profile{Balance: "250.5", Currency: "EUR"}); err != nil {
		t.Fatal(err)
	}
	p, _ = LoadProfile(s)
	if p.Username != DefaultUsername || p.Currency != "EUR" {
		t.Errorf("got %+v", p)
	}
	if got := p.BalanceAmount(1000); got != 250.5 {
		t.Errorf("BalanceAmount = %v", got)
	}
	if got := (Profile{Balance: "lots"}).BalanceAmount(1000); got != 1000 {
		t.Errorf("BalanceAmount fallback = %v", got)
	}
}
