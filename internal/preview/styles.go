// Package preview renders resolved token maps in the terminal: lipgloss
// styles, color swatches and an interactive bubbletea editor view.
package preview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// Styles contains lipgloss styles derived from a token map.
type Styles struct {
	Tokens    models.TokenMap
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Faint     lipgloss.Style
	Accent    lipgloss.Style
	Secondary lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	Selection lipgloss.Style
	Status    map[string]lipgloss.Style
	Badge     map[string]lipgloss.Style
}

// BuildStyles converts resolved tokens into lipgloss styles. Missing keys
// render without color.
func BuildStyles(tm models.TokenMap) Styles {
	tm = tm.Clone()
	fgOf := func(key string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(tm[key]))
	}

	s := Styles{
		Tokens:    tm,
		Title:     fgOf("tx").Bold(true),
		Text:      fgOf("tx"),
		Muted:     fgOf("tx_2"),
		Faint:     fgOf("tx_3"),
		Accent:    fgOf("pr").Bold(true),
		Secondary: fgOf("sc"),
		Panel: fgOf("tx").
			Background(lipgloss.Color(tm["bg_elevated"])).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(tm["border"])).
			Padding(0, 1),
		Border:    fgOf("border"),
		Selection: fgOf("tx").Background(lipgloss.Color(tm["selection"])),
		Status:    make(map[string]lipgloss.Style, len(tokens.Statuses)),
		Badge:     make(map[string]lipgloss.Style, len(tokens.Statuses)),
	}

	for _, status := range tokens.Statuses {
		key := "status." + status.Name
		s.Status[status.Name] = fgOf(key)
		s.Badge[status.Name] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tm[key])).
			Background(lipgloss.Color(tm[key+".bg"])).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(tm[key+".border"])).
			Padding(0, 1)
	}
	return s
}

// StatusStyle returns the style for a status name, or Text when unknown.
func (s Styles) StatusStyle(name string) lipgloss.Style {
	if style, ok := s.Status[name]; ok {
		return style
	}
	return s.Text
}

// swatchStyle paints a cell in hex with a readable label color.
func swatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(color.Contrasting(hex, "#000000", "#ffffff"))).
		Padding(0, 1)
}
