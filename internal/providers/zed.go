package providers

import (
	"encoding/json"
	"fmt"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// ZedFamily is a Zed theme family file carrying both appearances.
type ZedFamily struct {
	Schema string     `json:"$schema"`
	Name   string     `json:"name"`
	Author string     `json:"author"`
	Themes []ZedTheme `json:"themes"`
}

// ZedTheme is one appearance of a family.
type ZedTheme struct {
	Name       string   `json:"name"`
	Appearance string   `json:"appearance"`
	Style      ZedStyle `json:"style"`
}

// Theme returns the family member for mode.
func (f ZedFamily) Theme(mode models.Mode) (ZedTheme, bool) {
	for _, t := range f.Themes {
		if t.Appearance == string(mode) {
			return t, true
		}
	}
	return ZedTheme{}, false
}

// ZedStyle is the flat color map of a theme plus its players and syntax
// tables. Colors are marshaled at the top level of the style object.
type ZedStyle struct {
	Colors  map[string]string
	Players []ZedPlayer
	Syntax  map[string]ZedHighlight
}

func (s ZedStyle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Colors)+2)
	for k, v := range s.Colors {
		out[k] = v
	}
	out["players"] = s.Players
	out["syntax"] = s.Syntax
	return json.Marshal(out)
}

type ZedPlayer struct {
	Cursor     string `json:"cursor"`
	Background string `json:"background"`
	Selection  string `json:"selection"`
}

type ZedHighlight struct {
	Color     string `json:"color"`
	FontStyle string `json:"font_style,omitempty"`
}

var zedSyntax = map[SyntaxCategory][]string{
	SyntaxComment:     {"comment", "comment.doc"},
	SyntaxKeyword:     {"keyword"},
	SyntaxString:      {"string", "string.special"},
	SyntaxFunction:    {"function", "function.method"},
	SyntaxType:        {"type", "constructor"},
	SyntaxNumber:      {"number"},
	SyntaxConstant:    {"constant", "boolean"},
	SyntaxOperator:    {"operator"},
	SyntaxTag:         {"tag"},
	SyntaxAttribute:   {"attribute"},
	SyntaxDecorator:   {"preproc"},
	SyntaxVariable:    {"variable"},
	SyntaxProperty:    {"property", "label"},
	SyntaxPunctuation: {"punctuation", "punctuation.bracket", "punctuation.delimiter"},
	SyntaxNamespace:   {"namespace", "link_uri"},
}

// zedVCSStatuses extends the shared statuses with version control ones.
var zedVCSStatuses = []tokens.Status{
	{Name: "conflict", Role: models.RoleSc},
	{Name: "created", Role: models.RoleAc2},
	{Name: "deleted", Role: models.RoleAc1},
	{Name: "modified", Role: models.RoleAc3},
	{Name: "renamed", Role: models.RolePr},
	{Name: "hidden", Role: models.RoleTx3},
	{Name: "ignored", Role: models.RoleTx3},
}

var zedRequired = []string{"background", "text", "border", "editor.background", "editor.foreground", "terminal.background"}

type zed struct {
	desc Descriptor
}

// NewZed returns the Zed provider.
func NewZed() Provider {
	return &zed{desc: Descriptor{
		ID:        "zed",
		Name:      "Zed",
		Category:  CategoryEditor,
		Tags:      []string{"editor", "json"},
		Links:     []string{"https://zed.dev/docs/themes"},
		Extension: "json",
		MimeType:  "application/json",
		DualMode:  true,
	}}
}

func (z *zed) Descriptor() Descriptor { return z.desc }

func (z *zed) Channel() models.Channel { return models.ChannelEditor }

func (z *zed) Convert(theme models.Theme) (Output, error) {
	return z.ConvertWithOverrides(theme, nil)
}

func (z *zed) ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error) {
	author := theme.Author
	if author == "" {
		author = "tinte"
	}
	family := ZedFamily{
		Schema: "https://zed.dev/schema/themes/v0.2.0.json",
		Name:   theme.Name,
		Author: author,
	}
	for _, mode := range models.Modes {
		family.Themes = append(family.Themes, ZedTheme{
			Name:       modeTitle(theme, mode),
			Appearance: string(mode),
			Style:      zedStyle(theme.Block(mode), mode, layers),
		})
	}
	return family, nil
}

func zedStyle(b models.Block, mode models.Mode, layers []models.OverrideLayer) ZedStyle {
	shift := 0.03
	if mode == models.ModeLight {
		shift = -0.03
	}
	elevated := color.AdjustLightness(b.Bg, shift)
	palette := TerminalPalette(b, mode)

	colors := map[string]string{
		"border":                                     b.UI,
		"border.variant":                             b.UI2,
		"border.focused":                             b.Pr,
		"border.selected":                            b.Pr,
		"border.disabled":                            b.UI,
		"elevated_surface.background":                elevated,
		"surface.background":                         b.Bg2,
		"background":                                 b.Bg2,
		"element.background":                         b.UI,
		"element.hover":                              overlay(b.Tx, SurfaceHover, mode),
		"element.active":                             overlay(b.Pr, SurfaceSelection, mode),
		"element.selected":                           overlay(b.Pr, SurfaceSelection, mode),
		"ghost_element.hover":                        overlay(b.Tx, SurfaceHover, mode),
		"ghost_element.selected":                     overlay(b.Pr, SurfaceSelectionInactive, mode),
		"text":                                       b.Tx,
		"text.muted":                                 b.Tx2,
		"text.placeholder":                           b.Tx3,
		"text.disabled":                              b.Tx3,
		"text.accent":                                b.Pr,
		"icon":                                       b.Tx2,
		"icon.muted":                                 b.Tx3,
		"icon.accent":                                b.Pr,
		"status_bar.background":                      b.Bg2,
		"title_bar.background":                       b.Bg2,
		"toolbar.background":                         b.Bg,
		"tab_bar.background":                         b.Bg2,
		"tab.inactive_background":                    b.Bg2,
		"tab.active_background":                      b.Bg,
		"panel.background":                           b.Bg2,
		"panel.focused_border":                       b.Pr,
		"scrollbar.thumb.background":                 color.SuffixAlpha(b.UI2, "80"),
		"scrollbar.thumb.hover_background":           b.UI3,
		"scrollbar.track.background":                 b.Bg,
		"editor.background":                          b.Bg,
		"editor.foreground":                          b.Tx,
		"editor.gutter.background":                   b.Bg,
		"editor.subheader.background":                b.Bg2,
		"editor.active_line.background":              overlay(b.Tx, SurfaceLineHighlight, mode),
		"editor.line_number":                         b.Tx3,
		"editor.active_line_number":                  b.Tx2,
		"editor.indent_guide":                        b.UI,
		"editor.indent_guide_active":                 b.UI3,
		"editor.document_highlight.read_background":  overlay(b.Sc, SurfaceWordHighlight, mode),
		"editor.document_highlight.write_background": overlay(b.Sc, SurfaceFindHighlight, mode),
		"search.match_background":                    overlay(b.Ac3, SurfaceFindMatch, mode),
		"terminal.background":                        b.Bg,
		"terminal.foreground":                        b.Tx,
		"terminal.ansi.background":                   b.Bg,
		"link_text.hover":                            b.Pr,
	}

	for _, name := range ANSINames {
		colors["terminal.ansi."+name] = palette[name]
		colors["terminal.ansi.bright_"+name] = palette["bright_"+name]
		colors["terminal.ansi.dim_"+name] = color.Mix(palette[name], b.Bg, 0.3)
	}

	statuses := append(append([]tokens.Status{}, tokens.Statuses...), zedVCSStatuses...)
	for _, status := range statuses {
		triad := tokens.TriadFor(b, status.Role)
		colors[status.Name] = triad.Solid
		colors[status.Name+".background"] = triad.Background
		colors[status.Name+".border"] = triad.Border
	}

	colors = tokens.Apply(colors, mode, layers, models.ChannelEditor)

	players := make([]ZedPlayer, 0, len(tokens.PlayerRoles))
	for _, role := range tokens.PlayerRoles {
		solid := b.Get(role)
		players = append(players, ZedPlayer{
			Cursor:     solid,
			Background: solid,
			Selection:  overlay(solid, SurfacePlayerSelection, mode),
		})
	}

	syntax := make(map[string]ZedHighlight)
	for _, rule := range syntaxRules(b, zedSyntax) {
		for _, pattern := range rule.Patterns {
			h := ZedHighlight{Color: rule.Color}
			if rule.Category == SyntaxComment {
				h.FontStyle = "italic"
			}
			syntax[pattern] = h
		}
	}

	return ZedStyle{Colors: colors, Players: players, Syntax: syntax}
}

func (z *zed) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	out, err := z.ConvertWithOverrides(theme, opts.Overrides)
	if err != nil {
		return nil, err
	}
	content, err := marshalJSON(out)
	if err != nil {
		return nil, fmt.Errorf("encode zed theme: %w", err)
	}
	return newArtifact(z.desc, theme, opts, content), nil
}

func (z *zed) Validate(out Output) bool {
	family, ok := outputAs[ZedFamily](out)
	if !ok || len(family.Themes) != len(models.Modes) {
		return false
	}
	for _, t := range family.Themes {
		if len(t.Style.Players) != len(tokens.PlayerRoles) {
			return false
		}
		for _, key := range zedRequired {
			if t.Style.Colors[key] == "" {
				return false
			}
		}
	}
	return true
}
