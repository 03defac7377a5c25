// Package providers converts canonical themes into target theme formats.
package providers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Railly/tinte-sub002/internal/models"
)

// Category groups providers by the kind of tool they target.
type Category string

const (
	CategoryEditor     Category = "editor"
	CategoryTerminal   Category = "terminal"
	CategoryChat       Category = "chat"
	CategoryDesignTool Category = "design-tool"
	CategoryOther      Category = "other"
)

// Descriptor is the static metadata of a provider.
type Descriptor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Links    []string `json:"links,omitempty"`

	// Extension is the file extension of exported artifacts, without a dot.
	Extension string `json:"extension"`

	// MimeType is the MIME type of exported artifacts.
	MimeType string `json:"mime_type"`

	// DualMode is true when one artifact carries both light and dark.
	DualMode bool `json:"dual_mode"`
}

// Output is the native structure a provider converts a theme into.
type Output any

// Artifact is a serialized provider output ready to write or copy.
type Artifact struct {
	Content  []byte `json:"-"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
}

// ExportOptions tunes a single export.
type ExportOptions struct {
	// Filename overrides the derived filename.
	Filename string

	// Mode picks the variant for single-mode formats. Defaults to dark.
	Mode models.Mode

	// Overrides are applied when the provider is Overridable.
	Overrides []models.OverrideLayer
}

func (o ExportOptions) mode() models.Mode {
	if o.Mode == models.ModeLight {
		return models.ModeLight
	}
	return models.ModeDark
}

// Provider converts a canonical theme into one target format.
type Provider interface {
	Descriptor() Descriptor
	Convert(theme models.Theme) (Output, error)
}

// Exporter serializes a theme into a transportable artifact.
type Exporter interface {
	Export(theme models.Theme, opts ExportOptions) (*Artifact, error)
}

// Validator checks a converted output for required keys.
type Validator interface {
	Validate(out Output) bool
}

// Overridable providers accept override layers from one channel.
type Overridable interface {
	Channel() models.Channel
	ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error)
}

// Filename derives the default artifact name for desc.
func Filename(desc Descriptor, theme models.Theme, mode models.Mode) string {
	if desc.DualMode {
		return fmt.Sprintf("%s-%s.%s", theme.Slug(), desc.ID, desc.Extension)
	}
	if mode != models.ModeLight {
		mode = models.ModeDark
	}
	return fmt.Sprintf("%s-%s-%s.%s", theme.Slug(), mode, desc.ID, desc.Extension)
}

func newArtifact(desc Descriptor, theme models.Theme, opts ExportOptions, content []byte) *Artifact {
	name := opts.Filename
	if name == "" {
		name = Filename(desc, theme, opts.mode())
	}
	return &Artifact{Content: content, Filename: name, MimeType: desc.MimeType}
}

// Dual carries one output per mode.
type Dual[T any] struct {
	Light T `json:"light"`
	Dark  T `json:"dark"`
}

// Get returns the variant for mode.
func (d Dual[T]) Get(mode models.Mode) T {
	if mode == models.ModeLight {
		return d.Light
	}
	return d.Dark
}

func convertDual[T any](theme models.Theme, fn func(models.Block, models.Mode) T) Dual[T] {
	return Dual[T]{
		Light: fn(theme.Light, models.ModeLight),
		Dark:  fn(theme.Dark, models.ModeDark),
	}
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func outputAs[T any](out Output) (T, bool) {
	switch v := out.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}
