package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// EventType categorizes theme lifecycle events.
type EventType string

const (
	EventTypeThemeCreated    EventType = "theme.created"
	EventTypeThemeForked     EventType = "theme.forked"
	EventTypeThemeSaved      EventType = "theme.saved"
	EventTypeThemeSaveFailed EventType = "theme.save_failed"
	EventTypeThemeDeleted    EventType = "theme.deleted"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeTheme EntityType = "theme"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	var errs []error
	if strings.TrimSpace(string(e.Type)) == "" {
		errs = append(errs, errors.New("type: event type is required"))
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		errs = append(errs, errors.New("entity_type: entity_type is required"))
	}
	if strings.TrimSpace(e.EntityID) == "" {
		errs = append(errs, errors.New("entity_id: entity_id is required"))
	}
	return errors.Join(errs...)
}

// ThemeForkedPayload is the payload for theme.forked events.
type ThemeForkedPayload struct {
	SourceID string `json:"source_id"`
	OwnerID  string `json:"owner_id"`
}

// ThemeSavedPayload is the payload for theme.saved events.
type ThemeSavedPayload struct {
	Name      string `json:"name"`
	IsPublic  bool   `json:"is_public"`
	Overrides int    `json:"overrides"`
}

// ThemeSaveFailedPayload is the payload for theme.save_failed events.
type ThemeSaveFailedPayload struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}
