// Package persistence defines the storage contract the editing core calls
// after resolving edits, plus an in-memory implementation.
package persistence

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/Railly/tinte-sub002/internal/models"
)

// ErrPersistence wraps every failure reported by a Store.
var ErrPersistence = errors.New("persistence failure")

// SaveResult is the outcome of a Save call.
type SaveResult struct {
	Success bool          `json:"success"`
	Saved   *models.Theme `json:"saved,omitempty"`
}

// ThemeData is a stored theme together with its override layers.
type ThemeData struct {
	Theme     models.Theme           `json:"theme"`
	Overrides []models.OverrideLayer `json:"overrides,omitempty"`
	IsPublic  bool                   `json:"is_public"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Store persists user themes.
type Store interface {
	// Save creates or replaces theme and its override layers.
	Save(ctx context.Context, theme models.Theme, overrides []models.OverrideLayer, isPublic bool) (SaveResult, error)

	// LoadUserThemes returns the themes owned by identity, newest first.
	LoadUserThemes(ctx context.Context, identity string) ([]ThemeData, error)

	// Delete removes a theme and reports whether it existed.
	Delete(ctx context.Context, themeID string) (bool, error)
}
