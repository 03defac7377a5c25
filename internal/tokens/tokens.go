// Package tokens resolves a theme and its override layers into the flat
// token map consumed by previews and exports.
package tokens

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
	"github.com/rs/zerolog"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/logging"
	"github.com/Railly/tinte-sub002/internal/models"
)

// DefaultPrecedence is the order channels are layered in. Later channels win.
var DefaultPrecedence = []models.Channel{
	models.ChannelUI,
	models.ChannelDesign,
	models.ChannelTerminal,
	models.ChannelChat,
	models.ChannelEditor,
}

// Base returns the generated token map for one mode before any overrides.
// Role colors are emitted in canonical hex form.
func Base(theme models.Theme, mode models.Mode) models.TokenMap {
	block := canonicalBlock(theme.Block(mode))
	out := make(models.TokenMap, 48)
	for _, role := range models.Roles {
		out[string(role)] = block.Get(role)
	}

	shift := 0.04
	if mode == models.ModeLight {
		shift = -0.04
	}
	out["bg_elevated"] = color.AdjustLightness(block.Bg, shift)
	out["bg_sunken"] = color.AdjustLightness(block.Bg, -shift)
	out["border"] = block.UI
	out["border_hover"] = block.UI2
	out["selection"] = color.SimulateAlpha(block.Pr, 0.25)
	out["hover"] = color.Mix(block.Bg, block.UI, 0.5)

	for i, role := range PlayerRoles {
		out[fmt.Sprintf("accent_%d", i+1)] = block.Get(role)
	}

	for _, status := range Statuses {
		triad := TriadFor(block, status.Role)
		key := "status." + status.Name
		out[key] = triad.Solid
		out[key+".bg"] = triad.Background
		out[key+".border"] = triad.Border
	}
	return out
}

// canonicalBlock normalizes every role of b. Values that do not parse are
// kept as given.
func canonicalBlock(b models.Block) models.Block {
	for _, role := range models.Roles {
		if hex, err := color.Normalize(b.Get(role)); err == nil {
			b = b.With(role, hex)
		}
	}
	return b
}

// Resolver layers override channels over generated tokens in a fixed order.
type Resolver struct {
	precedence []models.Channel
	logger     zerolog.Logger
}

// NewResolver returns a resolver that applies channels in the given order.
// With no channels it uses DefaultPrecedence.
func NewResolver(precedence ...models.Channel) *Resolver {
	if len(precedence) == 0 {
		precedence = DefaultPrecedence
	}
	return &Resolver{
		precedence: slices.Clone(precedence),
		logger:     logging.Component("tokens"),
	}
}

// WithLogger replaces the resolver logger.
func (r *Resolver) WithLogger(logger zerolog.Logger) *Resolver {
	r.logger = logger
	return r
}

// Precedence returns the channel order.
func (r *Resolver) Precedence() []models.Channel {
	return slices.Clone(r.precedence)
}

// Resolve computes the final token map for theme in mode. Layers for other
// modes or for channels outside the precedence list are ignored.
func (r *Resolver) Resolve(theme models.Theme, mode models.Mode, layers []models.OverrideLayer) models.TokenMap {
	out := Base(theme, mode)
	for _, channel := range r.precedence {
		out = r.apply(out, mode, layers, channel)
	}

	for _, layer := range layers {
		if !slices.Contains(r.precedence, layer.Channel) && !layer.Empty() {
			r.logger.Debug().Str("channel", string(layer.Channel)).Msg("skipping layer on undeclared channel")
		}
	}
	return out
}

// Resolve is NewResolver().Resolve with the default precedence.
func Resolve(theme models.Theme, mode models.Mode, layers []models.OverrideLayer) models.TokenMap {
	return defaultResolver().Resolve(theme, mode, layers)
}

// defaultResolver is built per call so it logs through the current global
// logger.
func defaultResolver() *Resolver {
	return &Resolver{precedence: DefaultPrecedence, logger: logging.Component("tokens")}
}

// Apply overlays the layers of one channel and mode onto base, in input
// order. base is not modified.
func Apply(base map[string]string, mode models.Mode, layers []models.OverrideLayer, channel models.Channel) map[string]string {
	return defaultResolver().apply(base, mode, layers, channel)
}

func (r *Resolver) apply(base map[string]string, mode models.Mode, layers []models.OverrideLayer, channel models.Channel) map[string]string {
	out := maps.Clone(base)
	if out == nil {
		out = map[string]string{}
	}

	for _, layer := range layers {
		if layer.Channel != channel || layer.Mode != mode || layer.Empty() {
			continue
		}

		clean := make(map[string]string, len(layer.Values))
		for _, key := range slices.Sorted(maps.Keys(layer.Values)) {
			hex, err := color.Normalize(layer.Values[key])
			if err != nil {
				r.logger.Warn().Str("channel", string(channel)).Str("key", key).Msg("skipping unparseable override")
				continue
			}
			clean[key] = hex
		}

		if err := mergo.Merge(&out, clean, mergo.WithOverride); err != nil {
			r.logger.Error().Err(err).Str("channel", string(channel)).Msg("failed to merge override layer")
		}
	}
	return out
}

// NormalizeLayer validates every value of layer and returns a copy with
// canonical colors. Empty values are dropped.
func NormalizeLayer(layer models.OverrideLayer) (models.OverrideLayer, error) {
	out := models.OverrideLayer{Channel: layer.Channel, Mode: layer.Mode}
	if layer.Mode != models.ModeLight && layer.Mode != models.ModeDark {
		return out, fmt.Errorf("override layer %s: unknown mode %q", layer.Channel, layer.Mode)
	}

	var errs []error
	for key, value := range layer.Values {
		if value == "" {
			continue
		}
		hex, err := color.Normalize(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w %q", key, models.ErrUnparseableColor, value))
			continue
		}
		if out.Values == nil {
			out.Values = make(map[string]string, len(layer.Values))
		}
		out.Values[key] = hex
	}
	if len(errs) > 0 {
		return models.OverrideLayer{}, fmt.Errorf("override layer %s/%s: %w", layer.Channel, layer.Mode, errors.Join(errs...))
	}
	return out, nil
}
