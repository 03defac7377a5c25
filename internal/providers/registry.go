package providers

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Railly/tinte-sub002/internal/logging"
	"github.com/Railly/tinte-sub002/internal/models"
)

// Registry manages registered providers. It is filled once at startup and
// read concurrently afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	logger    zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty provider registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		logger:    logging.Component("providers"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a provider to the registry.
// Returns an error if a provider with the same id is already registered.
func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	id := provider.Descriptor().ID
	if id == "" {
		return fmt.Errorf("provider id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[id]; exists {
		return fmt.Errorf("provider %q already registered", id)
	}
	r.providers[id] = provider
	return nil
}

// MustRegister adds a provider to the registry, panicking on error.
func (r *Registry) MustRegister(provider Provider) {
	if err := r.Register(provider); err != nil {
		panic(err)
	}
}

// Get retrieves a provider by id.
func (r *Registry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[id]
	return provider, ok
}

// List returns all registered providers sorted by id.
func (r *Registry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := lo.Values(r.providers)
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Descriptor().ID < providers[j].Descriptor().ID
	})
	return providers
}

// IDs returns the ids of all registered providers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := lo.Keys(r.providers)
	slices.Sort(ids)
	return ids
}

// ByCategory returns the providers in category, sorted by id.
func (r *Registry) ByCategory(category Category) []Provider {
	return lo.Filter(r.List(), func(p Provider, _ int) bool {
		return p.Descriptor().Category == category
	})
}

// ByTag returns the providers carrying tag, sorted by id.
func (r *Registry) ByTag(tag string) []Provider {
	return lo.Filter(r.List(), func(p Provider, _ int) bool {
		return slices.Contains(p.Descriptor().Tags, tag)
	})
}

// Descriptors returns the metadata of every provider, sorted by id.
func (r *Registry) Descriptors() []Descriptor {
	return lo.Map(r.List(), func(p Provider, _ int) Descriptor {
		return p.Descriptor()
	})
}

// Convert runs provider id over theme. It returns nil when the id is unknown
// or the provider fails; failures are logged, never returned.
func (r *Registry) Convert(id string, theme models.Theme) Output {
	provider, ok := r.Get(id)
	if !ok {
		r.logger.Warn().Str("provider", id).Msg("unknown provider")
		return nil
	}
	return r.convert(provider, theme, nil)
}

// ConvertWithOverrides is Convert with override layers applied when the
// provider accepts them.
func (r *Registry) ConvertWithOverrides(id string, theme models.Theme, layers []models.OverrideLayer) Output {
	provider, ok := r.Get(id)
	if !ok {
		r.logger.Warn().Str("provider", id).Msg("unknown provider")
		return nil
	}
	return r.convert(provider, theme, layers)
}

// ConvertAll converts theme with every provider, omitting the ones that fail.
func (r *Registry) ConvertAll(theme models.Theme) map[string]Output {
	out := make(map[string]Output)
	for _, provider := range r.List() {
		if result := r.convert(provider, theme, nil); result != nil {
			out[provider.Descriptor().ID] = result
		}
	}
	return out
}

func (r *Registry) convert(provider Provider, theme models.Theme, layers []models.OverrideLayer) (out Output) {
	id := provider.Descriptor().ID
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("provider", id).Interface("panic", rec).Msg("provider conversion panicked")
			out = nil
		}
	}()

	var err error
	if overridable, ok := provider.(Overridable); ok && len(layers) > 0 {
		out, err = overridable.ConvertWithOverrides(theme, layers)
	} else {
		out, err = provider.Convert(theme)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("provider", id).Msg("provider conversion failed")
		return nil
	}
	return out
}

// Export serializes theme with provider id. It returns nil when the id is
// unknown, the provider cannot export, or the export fails.
func (r *Registry) Export(id string, theme models.Theme, opts ExportOptions) *Artifact {
	provider, ok := r.Get(id)
	if !ok {
		r.logger.Warn().Str("provider", id).Msg("unknown provider")
		return nil
	}
	return r.export(provider, theme, opts)
}

// ExportAll exports theme with every provider that can export, omitting
// failures.
func (r *Registry) ExportAll(theme models.Theme, opts ExportOptions) map[string]*Artifact {
	opts.Filename = ""
	out := make(map[string]*Artifact)
	for _, provider := range r.List() {
		if artifact := r.export(provider, theme, opts); artifact != nil {
			out[provider.Descriptor().ID] = artifact
		}
	}
	return out
}

func (r *Registry) export(provider Provider, theme models.Theme, opts ExportOptions) (artifact *Artifact) {
	id := provider.Descriptor().ID
	exporter, ok := provider.(Exporter)
	if !ok {
		r.logger.Debug().Str("provider", id).Msg("provider does not export")
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("provider", id).Interface("panic", rec).Msg("provider export panicked")
			artifact = nil
		}
	}()

	artifact, err := exporter.Export(theme, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("provider", id).Msg("provider export failed")
		return nil
	}
	return artifact
}

// Validate runs the provider's validator over out. Providers without a
// validator accept any non-nil output.
func (r *Registry) Validate(id string, out Output) bool {
	provider, ok := r.Get(id)
	if !ok || out == nil {
		return false
	}
	if validator, ok := provider.(Validator); ok {
		return validator.Validate(out)
	}
	return true
}
