package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/ownership"
)

// MemoryStore keeps themes in process memory. It backs anonymous, local
// editing sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]ThemeData
	now    func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		themes: make(map[string]ThemeData),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save stores a copy of theme. Themes without an id get a new one.
func (s *MemoryStore) Save(ctx context.Context, theme models.Theme, overrides []models.OverrideLayer, isPublic bool) (SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := models.ValidateTheme(theme); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	saved := theme.Clone()
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	saved.IsPublic = isPublic

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	data := ThemeData{
		Theme:     saved,
		Overrides: models.CloneLayers(overrides),
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, ok := s.themes[saved.ID]; ok {
		data.CreatedAt = existing.CreatedAt
	}
	s.themes[saved.ID] = data

	out := saved.Clone()
	return SaveResult{Success: true, Saved: &out}, nil
}

// LoadUserThemes returns copies of the themes owned by identity. An empty
// identity loads the local editor's themes.
func (s *MemoryStore) LoadUserThemes(ctx context.Context, identity string) ([]ThemeData, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	owner := ownership.Identity{ID: identity}.OwnerID()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ThemeData
	for _, data := range s.themes {
		if data.Theme.OwnerID != owner {
			continue
		}
		copied := data
		copied.Theme = data.Theme.Clone()
		copied.Overrides = models.CloneLayers(data.Overrides)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Theme.ID < out[j].Theme.ID
	})
	return out, nil
}

// Delete removes themeID.
func (s *MemoryStore) Delete(ctx context.Context, themeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[themeID]; !ok {
		return false, nil
	}
	delete(s.themes, themeID)
	return true, nil
}

// Len returns the number of stored themes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.themes)
}
