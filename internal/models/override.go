package models

import (
	"maps"
	"slices"
)

// Channel identifies which family of target formats an override layer feeds.
type Channel string

const (
	ChannelUI       Channel = "ui-scheme"
	ChannelTerminal Channel = "terminal-scheme"
	ChannelEditor   Channel = "editor-scheme"
	ChannelChat     Channel = "chat-scheme"
	ChannelDesign   Channel = "design-tool-scheme"
)

// OverrideLayer is a partial, mode-scoped map of target keys to literal colors.
type OverrideLayer struct {
	Channel Channel           `json:"channel" yaml:"channel"`
	Mode    Mode              `json:"mode" yaml:"mode"`
	Values  map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Empty reports whether the layer overrides nothing.
func (l OverrideLayer) Empty() bool {
	return len(l.Values) == 0
}

// Clone returns a deep copy of l.
func (l OverrideLayer) Clone() OverrideLayer {
	out := l
	if l.Values != nil {
		out.Values = maps.Clone(l.Values)
	}
	return out
}

// CloneLayers deep copies a layer list.
func CloneLayers(layers []OverrideLayer) []OverrideLayer {
	if layers == nil {
		return nil
	}
	out := make([]OverrideLayer, len(layers))
	for i, layer := range layers {
		out[i] = layer.Clone()
	}
	return out
}

// TokenMap is a flat key -> color map. It is always derived and never the
// source of truth for a theme.
type TokenMap map[string]string

// Clone returns a copy of m.
func (m TokenMap) Clone() TokenMap {
	if m == nil {
		return TokenMap{}
	}
	return maps.Clone(m)
}

// Keys returns the keys of m in sorted order.
func (m TokenMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
