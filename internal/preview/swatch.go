package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Railly/tinte-sub002/internal/models"
)

// RoleKeys lists the token keys of the 13 semantic roles.
func RoleKeys() []string {
	keys := make([]string, len(models.Roles))
	for i, role := range models.Roles {
		keys[i] = string(role)
	}
	return keys
}

// Swatches renders one labelled color cell per key, wrapped to perRow cells
// per line. Keys missing from tm are skipped.
func Swatches(tm models.TokenMap, keys []string, perRow int) string {
	if perRow <= 0 {
		perRow = len(keys)
	}

	var (
		rows []string
		row  []string
	)
	for _, key := range keys {
		hex, ok := tm[key]
		if !ok || hex == "" {
			continue
		}
		row = append(row, swatchStyle(hex).Render(fmt.Sprintf("%-6s %s", key, hex)))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// StatusBadges renders one badge per status using its triad.
func StatusBadges(s Styles) string {
	var badges []string
	for _, name := range statusNames() {
		badges = append(badges, s.Badge[name].Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, badges...)
}
