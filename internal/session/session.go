// Package session ties the editing core together: edits are validated,
// forked when the editor does not own the theme, recorded in history and
// saved asynchronously.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/events"
	"github.com/Railly/tinte-sub002/internal/history"
	"github.com/Railly/tinte-sub002/internal/logging"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/ownership"
	"github.com/Railly/tinte-sub002/internal/persistence"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// Session errors.
var (
	ErrNotOwner = errors.New("only the owner can delete a theme")
	ErrNoStore  = errors.New("session has no store")
)

// SaveOutcome is delivered once a save settles.
type SaveOutcome struct {
	// Theme is the theme that was sent to the store.
	Theme models.Theme
	// Saved is the store's copy, set on success.
	Saved *models.Theme
	// Forked reports whether saving produced a fork.
	Forked bool
	Err    error
}

// OK reports whether the save succeeded.
func (o SaveOutcome) OK() bool {
	return o.Err == nil
}

// Option configures a Session.
type Option func(*Session)

// WithHistoryLimit sets how many snapshots undo can reach.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		s.history = history.New(limit)
	}
}

// WithEvents records lifecycle events to repo.
func WithEvents(repo events.Repository) Option {
	return func(s *Session) {
		s.events = repo
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithResolver replaces the default token resolver.
func WithResolver(r *tokens.Resolver) Option {
	return func(s *Session) {
		s.resolver = r
	}
}

// WithIDSource sets how fork ids are generated.
func WithIDSource(fn ownership.IDSource) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// WithOnSaved registers a callback run after every save settles.
func WithOnSaved(fn func(SaveOutcome)) Option {
	return func(s *Session) {
		s.onSaved = fn
	}
}

// Session is one editor's working state over a single theme.
type Session struct {
	mu        sync.Mutex
	identity  ownership.Identity
	theme     models.Theme
	overrides []models.OverrideLayer

	history  *history.History
	store    persistence.Store
	events   events.Repository
	resolver *tokens.Resolver
	logger   zerolog.Logger
	onSaved  func(SaveOutcome)
	newID    ownership.IDSource

	pending sync.WaitGroup
}

// New starts a session on theme for identity. store may be nil for
// preview-only sessions.
func New(theme models.Theme, identity ownership.Identity, store persistence.Store, opts ...Option) *Session {
	s := &Session{
		identity: identity,
		theme:    canonical(theme),
		store:    store,
		logger:   logging.Component("session"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New(history.DefaultLimit)
	}
	if s.resolver == nil {
		s.resolver = tokens.NewResolver().WithLogger(s.logger)
	}
	s.history.Reset(s.theme)
	return s
}

// Theme returns a copy of the current theme.
func (s *Session) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme.Clone()
}

// Identity returns the editing identity.
func (s *Session) Identity() ownership.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// History exposes the undo log for depth and state queries.
func (s *Session) History() *history.History {
	return s.history
}

// Overrides returns a copy of the active override layers.
func (s *Session) Overrides() []models.OverrideLayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLayers(s.overrides)
}

// Tokens resolves the current theme and overrides for mode.
func (s *Session) Tokens(mode models.Mode) models.TokenMap {
	s.mu.Lock()
	theme := s.theme.Clone()
	layers := models.CloneLayers(s.overrides)
	s.mu.Unlock()

	return s.resolver.Resolve(theme, mode, layers)
}

// Edit sets one role of one mode. The value must parse as a color.
func (s *Session) Edit(ctx context.Context, mode models.Mode, role models.Role, value string) error {
	role, err := models.ParseRole(string(role))
	if err != nil {
		return err
	}
	mode, err = models.ParseMode(string(mode))
	if err != nil {
		return err
	}
	hex, err := normalizeColor(mode, role, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureOwned(ctx)
	s.theme = s.theme.WithBlock(mode, s.theme.Block(mode).With(role, hex))
	s.history.Push(s.theme)
	return nil
}

// SetBlock replaces a whole mode block.
func (s *Session) SetBlock(ctx context.Context, mode models.Mode, block models.Block) error {
	mode, err := models.ParseMode(string(mode))
	if err != nil {
		return err
	}
	normalized, err := models.NormalizeBlock(block)
	if err != nil {
		var roleErr *models.RoleError
		if errors.As(err, &roleErr) {
			roleErr.Mode = mode
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureOwned(ctx)
	s.theme = s.theme.WithBlock(mode, normalized)
	s.history.Push(s.theme)
	return nil
}

// SetOverride installs layer, replacing any layer with the same channel and
// mode. A layer without values removes the existing one.
func (s *Session) SetOverride(ctx context.Context, layer models.OverrideLayer) error {
	normalized, err := tokens.NormalizeLayer(layer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureOwned(ctx)

	idx := slices.IndexFunc(s.overrides, func(l models.OverrideLayer) bool {
		return l.Channel == normalized.Channel && l.Mode == normalized.Mode
	})
	switch {
	case normalized.Empty() && idx >= 0:
		s.overrides = slices.Delete(s.overrides, idx, idx+1)
	case normalized.Empty():
	case idx >= 0:
		s.overrides[idx] = normalized
	default:
		s.overrides = append(s.overrides, normalized)
	}
	return nil
}

// Undo steps back one snapshot.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, ok := s.history.Undo()
	if ok {
		s.theme = theme
	}
	return ok
}

// Redo steps forward one snapshot.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, ok := s.history.Redo()
	if ok {
		s.theme = theme
	}
	return ok
}

// Load switches the session to theme and its override layers. History starts
// over from theme.
func (s *Session) Load(theme models.Theme, overrides ...models.OverrideLayer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = canonical(theme)
	s.overrides = models.CloneLayers(overrides)
	s.history.Reset(s.theme)
}

// SetIdentity changes the editing identity. A different identity starts the
// history over from the current theme.
func (s *Session) SetIdentity(identity ownership.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == s.identity {
		return
	}
	s.identity = identity
	s.history.Reset(s.theme)
}

// ensureOwned forks the current theme when the identity does not own it.
// The caller holds s.mu.
func (s *Session) ensureOwned(ctx context.Context) bool {
	if ownership.Owns(s.theme, s.identity) {
		return false
	}
	source := s.theme
	fork, _ := ownership.ResolveEditTargetWith(source, s.identity, s.newID)
	s.theme = fork
	s.history.Reset(fork)

	s.logger.Debug().
		Str("source_id", source.ID).
		Str("fork_id", fork.ID).
		Msg("forked theme for editing")
	s.logEvent(func(repo events.Repository) error {
		return events.LogThemeForked(ctx, repo, fork.ID, source.ID, fork.OwnerID)
	})
	return true
}

// Save persists the current theme without blocking. Local state is updated
// before the store is called; the outcome arrives on the returned channel and
// through the WithOnSaved callback.
func (s *Session) Save(ctx context.Context, isPublic bool) <-chan SaveOutcome {
	out := make(chan SaveOutcome, 1)

	s.mu.Lock()
	forked := s.ensureOwned(ctx)
	target, _ := ownership.ResolveEditTargetWith(s.theme, s.identity, s.newID)
	target.IsPublic = isPublic
	s.theme = target
	layers := models.CloneLayers(s.overrides)
	store := s.store
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(out)

		outcome := SaveOutcome{Theme: target.Clone(), Forked: forked}
		if store == nil {
			outcome.Err = ErrNoStore
		} else {
			result, err := store.Save(ctx, target, layers, isPublic)
			switch {
			case err != nil:
				outcome.Err = err
			case !result.Success:
				outcome.Err = fmt.Errorf("%w: store reported failure", persistence.ErrPersistence)
			default:
				outcome.Saved = result.Saved
			}
		}

		s.settle(ctx, outcome, len(layers))
		out <- outcome
	}()
	return out
}

func (s *Session) settle(ctx context.Context, outcome SaveOutcome, overrides int) {
	if outcome.Err != nil {
		s.logger.Error().Err(outcome.Err).Str("theme_id", outcome.Theme.ID).Msg("save failed")
		s.logEvent(func(repo events.Repository) error {
			return events.LogThemeSaveFailed(context.WithoutCancel(ctx), repo, outcome.Theme, outcome.Err)
		})
	} else {
		saved := outcome.Theme
		if outcome.Saved != nil {
			saved = *outcome.Saved
		}

		s.mu.Lock()
		// Adopt a store-assigned id if nothing has replaced the theme since.
		if s.theme.ID == "" && outcome.Theme.ID == "" && saved.ID != "" {
			s.theme.ID = saved.ID
		}
		s.mu.Unlock()

		s.logger.Debug().Str("theme_id", saved.ID).Bool("public", saved.IsPublic).Msg("theme saved")
		s.logEvent(func(repo events.Repository) error {
			return events.LogThemeSaved(ctx, repo, saved, overrides)
		})
	}

	if s.onSaved != nil {
		s.onSaved(outcome)
	}
}

// Wait blocks until every pending save has settled.
func (s *Session) Wait() {
	s.pending.Wait()
}

// Delete removes the current theme from the store. Only its owner may do so.
func (s *Session) Delete(ctx context.Context) (bool, error) {
	s.mu.Lock()
	theme := s.theme.Clone()
	identity := s.identity
	store := s.store
	s.mu.Unlock()

	if !ownership.Owns(theme, identity) {
		return false, ErrNotOwner
	}
	if store == nil {
		return false, ErrNoStore
	}
	if theme.ID == "" {
		return false, nil
	}

	deleted, err := store.Delete(ctx, theme.ID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logEvent(func(repo events.Repository) error {
			return events.LogThemeDeleted(ctx, repo, theme.ID)
		})
	}
	return deleted, nil
}

// canonical returns theme with normalized colors. A theme that fails
// validation is kept as given so the editor can still repair it.
func canonical(theme models.Theme) models.Theme {
	normalized, err := models.NormalizeTheme(theme)
	if err != nil {
		return theme.Clone()
	}
	return normalized
}

func (s *Session) logEvent(fn func(events.Repository) error) {
	if s.events == nil {
		return
	}
	if err := fn(s.events); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record event")
	}
}

func normalizeColor(mode models.Mode, role models.Role, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", &models.RoleError{Mode: mode, Role: role, Err: models.ErrMissingRole}
	}
	hex, err := color.Normalize(value)
	if err != nil {
		return "", &models.RoleError{Mode: mode, Role: role, Value: value, Err: models.ErrUnparseableColor}
	}
	return hex, nil
}
