// Package events records the theme lifecycle log.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Railly/tinte-sub002/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogThemeCreated records that a theme was imported or created from scratch.
func LogThemeCreated(ctx context.Context, repo Repository, themeID, name string) error {
	return logTheme(ctx, repo, models.EventTypeThemeCreated, themeID, map[string]string{"name": name})
}

// LogThemeForked records that an edit produced a private copy of sourceID.
func LogThemeForked(ctx context.Context, repo Repository, forkID, sourceID, ownerID string) error {
	return logTheme(ctx, repo, models.EventTypeThemeForked, forkID, models.ThemeForkedPayload{
		SourceID: sourceID,
		OwnerID:  ownerID,
	})
}

// LogThemeSaved records a successful save.
func LogThemeSaved(ctx context.Context, repo Repository, theme models.Theme, overrides int) error {
	return logTheme(ctx, repo, models.EventTypeThemeSaved, theme.ID, models.ThemeSavedPayload{
		Name:      theme.Name,
		IsPublic:  theme.IsPublic,
		Overrides: overrides,
	})
}

// LogThemeSaveFailed records a save the store rejected.
func LogThemeSaveFailed(ctx context.Context, repo Repository, theme models.Theme, saveErr error) error {
	msg := ""
	if saveErr != nil {
		msg = saveErr.Error()
	}
	return logTheme(ctx, repo, models.EventTypeThemeSaveFailed, theme.ID, models.ThemeSaveFailedPayload{
		Name:  theme.Name,
		Error: msg,
	})
}

// LogThemeDeleted records a deletion.
func LogThemeDeleted(ctx context.Context, repo Repository, themeID string) error {
	return logTheme(ctx, repo, models.EventTypeThemeDeleted, themeID, nil)
}

func logTheme(ctx context.Context, repo Repository, kind models.EventType, themeID string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if themeID == "" {
		return fmt.Errorf("theme id is required")
	}

	event := &models.Event{
		Type:       kind,
		EntityType: models.EntityTypeTheme,
		EntityID:   themeID,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
		}
		event.Payload = data
	}

	return repo.Create(ctx, event)
}
