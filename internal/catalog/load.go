package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Railly/tinte-sub002/internal/models"
)

// LoadTheme reads a single theme file. The format follows the extension.
func LoadTheme(path string) (models.Theme, error) {
	if strings.TrimSpace(path) == "" {
		return models.Theme{}, fmt.Errorf("theme path is required")
	}
	format, ok := formatForPath(path)
	if !ok {
		return models.Theme{}, fmt.Errorf("unsupported theme file %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}

	theme, err := Import(data, format)
	if err != nil {
		return models.Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if theme.Provenance == SourceImported {
		theme.Provenance = path
	}
	return theme, nil
}

// LoadThemesFromDir loads every .yaml, .yml and .json theme in dir. A missing
// directory yields no themes.
func LoadThemesFromDir(dir string) ([]models.Theme, error) {
	if strings.TrimSpace(dir) == "" {
		return []models.Theme{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Theme{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	themes := make([]models.Theme, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, ok := formatForPath(path); !ok {
			continue
		}
		theme, err := LoadTheme(path)
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	sortThemes(themes)
	return themes, nil
}
