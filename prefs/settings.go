package prefs

import "strconv"

// Profile defaults shown before the user has stored anything.
const (
	DefaultUsername = "Demo Player"
	DefaultBalance  = "1000.00"
	DefaultCurrency = "USD"
)

// Settings is the editable settings page: API connection plus preferences.
type Settings struct {
	APIBaseURL    string
	AccessKey     string
	Username      string
	Notifications bool
	SoundEnabled  bool
}

// LoadSettings reads settings; absent booleans default to true.
func LoadSettings(s Store) (Settings, error) {
	out := Settings{Notifications: true, SoundEnabled: true}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyAPIBaseURL, &out.APIBaseURL},
		{KeyAccessKey, &out.AccessKey},
		{KeyUsername, &out.Username},
	} {
		v, ok, err := Lookup(s, f.key)
		if err != nil {
			return out, err
		}
		if ok {
			*f.dst = v
		}
	}
	for _, f := range []struct {
		key string
		dst *bool
	}{
		{KeyNotifications, &out.Notifications},
		{KeySoundEnabled, &out.SoundEnabled},
	} {
		v, ok, err := Lookup(s, f.key)
		if err != nil {
			return out, err
		}
		if ok {
			*f.dst = v == "true"
		}
	}
	return out, nil
}

// SaveSettings persists the preference part of st: a non-empty username and
// both toggles. API base URL and access key are written by the API client
// setters, which own those keys.
func SaveSettings(s Store, st Settings) error {
	if st.Username != "" {
		if err := s.Set(KeyUsername, st.Username); err != nil {
			return err
		}
	}
	if err := s.Set(KeyNotifications, strconv.FormatBool(st.Notifications)); err != nil {
		return err
	}
	return s.Set(KeySoundEnabled, strconv.FormatBool(st.SoundEnabled))
}

// Profile is the player card: name and the wallet used for launches.
type Profile struct {
	Username string
	Balance  string
	Currency string
}

// LoadProfile reads the profile, falling back to the demo defaults for
// anything missing or empty.
func LoadProfile(s Store) (Profile, error) {
	out := Profile{Username: DefaultUsername, Balance: DefaultBalance, Currency: DefaultCurrency}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyUsername, &out.Username},
		{KeyBalance, &out.Balance},
		{KeyCurrency, &out.Currency},
	} {
		v, ok, err := Lookup(s, f.key)
		if err != nil {
			return out, err
		}
		if ok && v != "" {
			*f.dst = v
		}
	}
	return out, nil
}

// BalanceAmount parses Balance, returning def when it is not a number.
func (p Profile) BalanceAmount(def float64) float64 {
	v, err := strconv.ParseFloat(p.Balance, 64)
	if err != nil {
		return def
	}
	return v
}

// SaveProfile writes the non-empty fields of p.
func SaveProfile(s Store, p Profile) error {
	for _, f := range []struct{ key, val string }{
		{KeyUsername, p.Username},
		{KeyBalance, p.Balance},
		{KeyCurrency, p.Currency},
	} {
		if f.val == "" {
			continue
		}
		if err := s.Set(f.key, f.val); err != nil {
			return err
		}
	}
	return nil
}
