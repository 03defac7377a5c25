package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/ownership"
	"github.com/Railly/tinte-sub002/internal/persistence"
)

// ErrThemeNotFound is returned when a theme id is not stored.
var ErrThemeNotFound = errors.New("theme not found")

const themeColumns = `id, name, author, provenance, owner_id, forked_from, is_public,
	tags_json, light_json, dark_json, created_at, updated_at`

// ThemeRepository is the SQLite implementation of persistence.Store.
type ThemeRepository struct {
	db  *DB
	now func() time.Time
}

var _ persistence.Store = (*ThemeRepository)(nil)

// NewThemeRepository creates a new ThemeRepository.
func NewThemeRepository(db *DB) *ThemeRepository {
	return &ThemeRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Save upserts theme and replaces its override layers in one transaction.
func (r *ThemeRepository) Save(ctx context.Context, theme models.Theme, overrides []models.OverrideLayer, isPublic bool) (persistence.SaveResult, error) {
	if err := models.ValidateTheme(theme); err != nil {
		return persistence.SaveResult{}, fmt.Errorf("%w: %v", persistence.ErrPersistence, err)
	}

	saved := theme.Clone()
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	saved.IsPublic = isPublic
	if saved.OwnerID == "" {
		saved.OwnerID = ownership.OwnerMine
	}

	if err := r.save(ctx, saved, overrides); err != nil {
		r.db.logger.Error().Err(err).Str("theme_id", saved.ID).Msg("failed to save theme")
		return persistence.SaveResult{}, fmt.Errorf("%w: %v", persistence.ErrPersistence, err)
	}
	return persistence.SaveResult{Success: true, Saved: &saved}, nil
}

func (r *ThemeRepository) save(ctx context.Context, theme models.Theme, overrides []models.OverrideLayer) error {
	tags, err := json.Marshal(theme.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	light, err := json.Marshal(theme.Light)
	if err != nil {
		return fmt.Errorf("failed to marshal light block: %w", err)
	}
	dark, err := json.Marshal(theme.Dark)
	if err != nil {
		return fmt.Errorf("failed to marshal dark block: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.now().Format(time.RFC3339Nano)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO themes (`+themeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			author = excluded.author,
			provenance = excluded.provenance,
			owner_id = excluded.owner_id,
			forked_from = excluded.forked_from,
			is_public = excluded.is_public,
			tags_json = excluded.tags_json,
			light_json = excluded.light_json,
			dark_json = excluded.dark_json,
			updated_at = excluded.updated_at
	`,
		theme.ID,
		theme.Name,
		nullString(theme.Author),
		nullString(theme.Provenance),
		theme.OwnerID,
		nullString(theme.ForkedFrom),
		theme.IsPublic,
		string(tags),
		string(light),
		string(dark),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert theme: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM theme_overrides WHERE theme_id = ?`, theme.ID); err != nil {
		return fmt.Errorf("failed to clear overrides: %w", err)
	}
	for i, layer := range overrides {
		if layer.Empty() {
			continue
		}
		values, err := json.Marshal(layer.Values)
		if err != nil {
			return fmt.Errorf("failed to marshal override values: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO theme_overrides (theme_id, position, channel, mode, values_json)
			VALUES (?, ?, ?, ?, ?)
		`, theme.ID, i, string(layer.Channel), string(layer.Mode), string(values)); err != nil {
			return fmt.Errorf("failed to insert override: %w", err)
		}
	}

	return tx.Commit()
}

// Get retrieves one stored theme with its overrides.
func (r *ThemeRepository) Get(ctx context.Context, id string) (*persistence.ThemeData, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+themeColumns+` FROM themes WHERE id = ?`, id)
	data, err := r.scanTheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrThemeNotFound
	}
	if err != nil {
		return nil, err
	}
	if data.Overrides, err = r.overrides(ctx, id); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadUserThemes returns the themes owned by identity, most recently updated
// first. An empty identity loads the local editor's themes.
func (r *ThemeRepository) LoadUserThemes(ctx context.Context, identity string) ([]persistence.ThemeData, error) {
	owner := ownership.Identity{ID: identity}.OwnerID()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+themeColumns+`
		FROM themes
		WHERE owner_id = ?
		ORDER BY updated_at DESC, id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query themes: %v", persistence.ErrPersistence, err)
	}

	var out []persistence.ThemeData
	for rows.Next() {
		data, err := r.scanTheme(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %v", persistence.ErrPersistence, err)
		}
		out = append(out, *data)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: error iterating themes: %v", persistence.ErrPersistence, err)
	}
	rows.Close()

	// Overrides are loaded after the cursor closes; the pool holds one connection.
	for i := range out {
		layers, err := r.overrides(ctx, out[i].Theme.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", persistence.ErrPersistence, err)
		}
		out[i].Overrides = layers
	}
	return out, nil
}

// Delete removes a theme and its overrides.
func (r *ThemeRepository) Delete(ctx context.Context, themeID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, themeID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete theme: %v", persistence.ErrPersistence, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", persistence.ErrPersistence, err)
	}
	return n > 0, nil
}

func (r *ThemeRepository) overrides(ctx context.Context, themeID string) ([]models.OverrideLayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT channel, mode, values_json
		FROM theme_overrides
		WHERE theme_id = ?
		ORDER BY position
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var layers []models.OverrideLayer
	for rows.Next() {
		var channel, mode, values string
		if err := rows.Scan(&channel, &mode, &values); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		layer := models.OverrideLayer{Channel: models.Channel(channel), Mode: models.Mode(mode)}
		if err := json.Unmarshal([]byte(values), &layer.Values); err != nil {
			return nil, fmt.Errorf("failed to parse override values: %w", err)
		}
		layers = append(layers, layer)
	}
	return layers, rows.Err()
}

func (r *ThemeRepository) scanTheme(row rowScanner) (*persistence.ThemeData, error) {
	var (
		theme                          models.Theme
		author, provenance, forkedFrom sql.NullString
		tags                           sql.NullString
		light, dark                    string
		createdAt, updatedAt           string
	)
	err := row.Scan(
		&theme.ID,
		&theme.Name,
		&author,
		&provenance,
		&theme.OwnerID,
		&forkedFrom,
		&theme.IsPublic,
		&tags,
		&light,
		&dark,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan theme: %w", err)
	}

	theme.Author = author.String
	theme.Provenance = provenance.String
	theme.ForkedFrom = forkedFrom.String
	if tags.Valid {
		if err := json.Unmarshal([]byte(tags.String), &theme.Tags); err != nil {
			r.db.logger.Warn().Err(err).Str("theme_id", theme.ID).Msg("failed to parse theme tags")
		}
	}
	if err := json.Unmarshal([]byte(light), &theme.Light); err != nil {
		return nil, fmt.Errorf("failed to parse light block: %w", err)
	}
	if err := json.Unmarshal([]byte(dark), &theme.Dark); err != nil {
		return nil, fmt.Errorf("failed to parse dark block: %w", err)
	}

	data := &persistence.ThemeData{Theme: theme, IsPublic: theme.IsPublic}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		data.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		data.UpdatedAt = t
	}
	return data, nil
}
