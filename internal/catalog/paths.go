package catalog

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/Railly/tinte-sub002/internal/models"
)

// SearchPaths returns theme directories in precedence order: the project's
// .tinte/themes, then the user's config and data directories.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 3)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".tinte", "themes"))
	}
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, "tinte", "themes"))
	}
	if xdg.DataHome != "" {
		paths = append(paths, filepath.Join(xdg.DataHome, "tinte", "themes"))
	}
	return paths
}

// LoadThemesFromSearchPaths loads themes from SearchPaths and the built-ins.
// The first theme seen for an id wins.
func LoadThemesFromSearchPaths(projectDir string) ([]models.Theme, error) {
	seen := make(map[string]bool)
	var resolved []models.Theme

	add := func(themes []models.Theme) {
		for _, theme := range themes {
			key := strings.ToLower(theme.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			resolved = append(resolved, theme)
		}
	}

	for _, path := range SearchPaths(projectDir) {
		themes, err := LoadThemesFromDir(path)
		if err != nil {
			return nil, err
		}
		add(themes)
	}

	builtins, err := LoadBuiltinThemes()
	if err != nil {
		return nil, err
	}
	add(builtins)

	return resolved, nil
}

// FindTheme loads the search paths and returns the theme matching name.
func FindTheme(projectDir, name string) (models.Theme, error) {
	themes, err := LoadThemesFromSearchPaths(projectDir)
	if err != nil {
		return models.Theme{}, err
	}
	return Find(themes, name)
}
