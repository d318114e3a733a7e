package session

import (
	"encoding/json"
	"fmt"
)

// KeyRecentSearches stores the bounded recent-search list, independent of
// the session triplet; logout does not clear it.
const KeyRecentSearches = "recent_spotify_results"

// MaxRecentSearches bounds the persisted recent-search list.
const MaxRecentSearches = 10

// RecentSearch is one remembered search result.
type RecentSearch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"type"`
	ImageURL string `json:"image_url,omitempty"`
	SubText  string `json:"sub_text,omitempty"`
}

// Recents manages the persisted recent-search list.
type Recents struct {
	store Store
}

// NewRecents creates a recent-search list over the given store.
func NewRecents(store Store) *Recents {
	return &Recents{store: store}
}

// List returns remembered searches, newest first.
func (r *Recents) List() ([]RecentSearch, error) {
	raw, ok, err := r.store.Get(KeyRecentSearches)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var items []RecentSearch
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("malformed recent searches: %w", err)
	}
	return items, nil
}

// Save prepends the item, dropping any older duplicate and truncating to
// MaxRecentSearches.
func (r *Recents) Save(item RecentSearch) error {
	existing, err := r.List()
	if err != nil {
		return err
	}

	updated := []RecentSearch{item}
	for _, prev := range existing {
		if prev.ID == item.ID {
			continue
		}
		updated = append(updated, prev)
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to marshal recent searches: %w", err)
	}
	return r.store.Set(KeyRecentSearches, string(data))
}

// Clear removes the list entirely.
func (r *Recents) Clear() error {
	return r.store.Delete(KeyRecentSearches)
}
