// Package history records game launches so the profile can show recent
// games and a games-played count.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Entry is one successful launch.
type Entry struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	GameName  string    `json:"gameName"`
	Provider  string    `json:"provider"`
	Mode      string    `json:"mode"`
	PlayerID  string    `json:"playerId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps launch history.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

// prepare fills in ID and CreatedAt when missing.
func prepare(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return e
}

// FileStore persists history to history.json in a data directory.
type FileStore struct {
	mu      sync.Mutex
	entries []Entry
	dataDir string
	// loadErr is set when an unreadable history file could not be moved
	// aside. Saves are refused so the file is never overwritten.
	loadErr error
}

var _ Store = &FileStore{}

func NewFileStore(dataDir string) *FileStore {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &FileStore{dataDir: dataDir}
	s.load()
	return s
}

func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, "history.json")
}

// load reads history.json. A file that cannot be read or parsed is renamed
// to history.json.corrupt and the store starts empty.
func (s *FileStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err == nil {
		var list []Entry
		if err = json.Unmarshal(data, &list); err == nil {
			for _, e := range list {
				if e.ID != "" {
					s.entries = append(s.entries, e)
				}
			}
			return
		}
	}
	bad := s.path() + ".corrupt"
	if rerr := os.Rename(s.path(), bad); rerr != nil {
		log.Errorf("history: cannot load %s: %v; moving it aside failed: %v", s.path(), err, rerr)
		s.loadErr = fmt.Errorf("history: %s is unreadable: %w", s.path(), err)
		return
	}
	log.Warnf("history: cannot load %s: %v; moved to %s", s.path(), err, bad)
}

// saveLocked writes the store to disk. Caller must hold s.mu.
func (s *FileStore) saveLocked() error {
	if s.loadErr != nil {
		return s.loadErr
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0644)
}

func (s *FileStore) Record(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, prepare(e))
	if err := s.saveLocked(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return err
	}
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *FileStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	out := append([]Entry(nil), s.entries...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}
