package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Railly/tinte-sub002/internal/models"
)

func TestEventRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	payload, _ := json.Marshal(models.ThemeForkedPayload{SourceID: "flexoki", OwnerID: "mine"})
	event := &models.Event{
		Type:       models.EventTypeThemeForked,
		EntityType: models.EntityTypeTheme,
		EntityID:   "fork-1",
		Payload:    payload,
		Metadata:   map[string]string{"source": "test"},
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected ID to be set")
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected Timestamp to be set")
	}

	got, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Type != models.EventTypeThemeForked || got.EntityID != "fork-1" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Metadata["source"] != "test" {
		t.Fatalf("expected metadata to round-trip, got %v", got.Metadata)
	}

	var decoded models.ThemeForkedPayload
	if err := json.Unmarshal(got.Payload, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.SourceID != "flexoki" {
		t.Fatalf("expected source flexoki, got %q", decoded.SourceID)
	}
}

func TestEventRepositoryRejectsInvalid(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	err := repo.Create(context.Background(), &models.Event{Type: models.EventTypeThemeSaved})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestEventRepositoryGetMissing(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepositoryQuery(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, kind := range []models.EventType{
		models.EventTypeThemeCreated,
		models.EventTypeThemeSaved,
		models.EventTypeThemeSaved,
		models.EventTypeThemeDeleted,
	} {
		entity := "a"
		if i%2 == 1 {
			entity = "b"
		}
		if err := repo.Create(ctx, &models.Event{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Type:       kind,
			EntityType: models.EntityTypeTheme,
			EntityID:   entity,
		}); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	saved, err := repo.Query(ctx, EventQuery{Type: models.EventTypeThemeSaved})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved events, got %d", len(saved))
	}

	recent, err := repo.Query(ctx, EventQuery{Since: base.Add(2 * time.Minute)})
	if err != nil {
		t.Fatalf("Query since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent events, got %d", len(recent))
	}

	limited, err := repo.Query(ctx, EventQuery{Limit: 1})
	if err != nil {
		t.Fatalf("Query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Type != models.EventTypeThemeCreated {
		t.Fatalf("expected oldest event first, got %+v", limited)
	}

	forB, err := repo.ListByEntity(ctx, models.EntityTypeTheme, "b", 0)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(forB) != 2 || forB[0].Type != models.EventTypeThemeSaved || forB[1].Type != models.EventTypeThemeDeleted {
		t.Fatalf("unexpected events for b: %+v", forB)
	}
}
