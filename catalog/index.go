package catalog

import (
	"sort"
	"sync"
)

// Index groups game IDs by provider.
type Index struct {
	mu        sync.RWMutex
	providers map[string][]string
}

// NewIndex builds an index over games. Games without a provider are left
// out, as in Providers.
func NewIndex(games []Game) *Index {
	idx := &Index{providers: make(map[string][]string)}
	for _, g := range games {
		if g.Provider == "" {
			continue
		}
		idx.providers[g.Provider] = append(idx.providers[g.Provider], g.ID)
	}
	return idx
}

func (idx *Index) HasGame(providerID, gameID string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, g := range idx.providers[providerID] {
		if g == gameID {
			return true
		}
	}
	return false
}

// ListProviders returns provider IDs sorted by name.
func (idx *Index) ListProviders() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]string, 0, len(idx.providers))
	for id := range idx.providers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (idx *Index) ListGames(providerID string) ([]string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	games, ok := idx.providers[providerID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), games...), true
}
