// Package catalog loads canonical themes from the embedded built-ins, from
// theme directories on disk and from imported YAML or JSON documents.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Railly/tinte-sub002/internal/models"
)

// Source values stamped into Theme.Provenance.
const (
	SourceBuiltin  = "builtin"
	SourceImported = "imported"
)

// ErrThemeNotFound is returned by Find when no theme matches.
var ErrThemeNotFound = errors.New("theme not found")

// Format is an import document format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name or file extension into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported theme format %q", s)
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinThemes returns the themes bundled with tinte, sorted by name.
func LoadBuiltinThemes() ([]models.Theme, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin themes: %w", err)
	}

	themes := make([]models.Theme, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin theme %s: %w", entry.Name(), err)
		}
		theme, err := Import(data, FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("parse builtin theme %s: %w", entry.Name(), err)
		}
		theme.Provenance = SourceBuiltin
		themes = append(themes, theme)
	}

	sortThemes(themes)
	return themes, nil
}

// Import decodes a theme document and enforces the block invariants. Colors
// are rewritten to canonical hex. Imported themes have no owner, so the
// first edit forks them.
func Import(data []byte, format Format) (models.Theme, error) {
	var theme models.Theme
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &theme); err != nil {
			return models.Theme{}, fmt.Errorf("decode yaml theme: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&theme); err != nil {
			return models.Theme{}, fmt.Errorf("decode json theme: %w", err)
		}
	default:
		return models.Theme{}, fmt.Errorf("unsupported theme format %q", format)
	}

	theme.Name = strings.TrimSpace(theme.Name)
	if theme.Name == "" {
		return models.Theme{}, fmt.Errorf("theme name is required")
	}
	if theme.ID == "" {
		theme.ID = theme.Slug()
	}
	if theme.Provenance == "" {
		theme.Provenance = SourceImported
	}
	theme.OwnerID = ""

	normalized, err := models.NormalizeTheme(theme)
	if err != nil {
		return models.Theme{}, err
	}
	return normalized, nil
}

// Find returns the theme whose id or name matches name, ignoring case.
func Find(themes []models.Theme, name string) (models.Theme, error) {
	want := strings.TrimSpace(name)
	for _, theme := range themes {
		if strings.EqualFold(theme.ID, want) || strings.EqualFold(theme.Name, want) {
			return theme.Clone(), nil
		}
	}
	slug := models.Slugify(want)
	for _, theme := range themes {
		if theme.Slug() == slug {
			return theme.Clone(), nil
		}
	}
	return models.Theme{}, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

func sortThemes(themes []models.Theme) {
	sort.SliceStable(themes, func(i, j int) bool {
		return strings.ToLower(themes[i].Name) < strings.ToLower(themes[j].Name)
	})
}

func formatForPath(path string) (Format, bool) {
	format, err := ParseFormat(filepath.Ext(path))
	return format, err == nil
}
