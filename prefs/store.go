// Package prefs persists lightweight device-local preferences as string
// key/value pairs that survive restarts.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Keys stored on device. The API client owns KeyAPIBaseURL and KeyAccessKey;
// the remaining keys belong to settings and profile.
const (
	KeyAPIBaseURL    = "apiBaseURL"
	KeyAccessKey     = "accessKey"
	KeyUsername      = "username"
	KeyBalance       = "balance"
	KeyCurrency      = "currency"
	KeyNotifications = "notifications"
	KeySoundEnabled  = "soundEnabled"
)

// ErrNoSuchKey indicates that there's no value for the given key.
var ErrNoSuchKey = errors.New("prefs: no such key")

// Store is a string-valued key/value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear() error
}

// FS stores one file per key inside basedir. Reads and writes take a file
// lock so that two processes sharing the directory never see torn values.
type FS struct {
	basedir string
}

var _ Store = &FS{}

// NewFS creates basedir if needed and returns a store rooted there.
func NewFS(basedir string) (*FS, error) {
	return newFS(basedir, os.MkdirAll)
}

type osMkdirAll func(path string, perm fs.FileMode) error

func newFS(basedir string, mkdir osMkdirAll) (*FS, error) {
	if basedir == "" {
		basedir = "data"
	}
	if err := mkdir(basedir, 0700); err != nil {
		return nil, err
	}
	return &FS{basedir: basedir}, nil
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("prefs: invalid key %q", key)
	}
	return nil
}

func (s *FS) filename(key string) string {
	return filepath.Join(s.basedir, key)
}

// Get returns the value stored for key. A missing key yields an error
// such that errors.Is(err, ErrNoSuchKey).
func (s *FS) Get(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	data, err := lockedfile.Read(s.filename(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoSuchKey, key)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Set writes value for key, replacing any previous value.
func (s *FS) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	return lockedfile.Write(s.filename(key), bytes.NewReader([]byte(value)), 0600)
}

// Clear removes every stored key.
func (s *FS) Clear() error {
	entries, err := os.ReadDir(s.basedir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(s.basedir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Memory is an in-memory Store, handy for tests and ephemeral runs.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

var _ Store = &Memory{}

// Get returns the value stored for key.
func (s *Memory) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoSuchKey, key)
	}
	return v, nil
}

// Set stores value for key.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key] = value
	return nil
}

// Clear drops all keys.
func (s *Memory) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = nil
	return nil
}

// Lookup returns the stored value and whether it was present. Errors other
// than a missing key are returned.
func Lookup(s Store, key string) (string, bool, error) {
	v, err := s.Get(key)
	if errors.Is(err, ErrNoSuchKey) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
