package providers

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// HelixTheme is a Helix theme file: scope -> style, where a style is a
// plain color or a table of fg, bg and modifiers.
type HelixTheme map[string]any

// HelixStyle is the table form of a scope style.
type HelixStyle struct {
	Fg        string   `toml:"fg,omitempty"`
	Bg        string   `toml:"bg,omitempty"`
	Modifiers []string `toml:"modifiers,omitempty"`
}

var helixScopes = map[SyntaxCategory][]string{
	SyntaxComment:     {"comment"},
	SyntaxKeyword:     {"keyword", "keyword.control", "keyword.storage"},
	SyntaxString:      {"string"},
	SyntaxFunction:    {"function", "function.method"},
	SyntaxType:        {"type", "constructor"},
	SyntaxNumber:      {"constant.numeric"},
	SyntaxConstant:    {"constant", "constant.builtin"},
	SyntaxOperator:    {"operator"},
	SyntaxTag:         {"tag"},
	SyntaxAttribute:   {"attribute"},
	SyntaxDecorator:   {"special"},
	SyntaxVariable:    {"variable"},
	SyntaxProperty:    {"variable.other.member"},
	SyntaxPunctuation: {"punctuation"},
	SyntaxNamespace:   {"namespace"},
}

var helixDiagnostics = map[string]string{
	"error":   "error",
	"warning": "warning",
	"info":    "info",
	"hint":    "hint",
}

type helix struct {
	desc Descriptor
}

// NewHelix returns the Helix provider.
func NewHelix() Provider {
	return &helix{desc: Descriptor{
		ID:        "helix",
		Name:      "Helix",
		Category:  CategoryEditor,
		Tags:      []string{"editor", "toml", "terminal"},
		Links:     []string{"https://docs.helix-editor.com/themes.html"},
		Extension: "toml",
		MimeType:  "application/toml",
	}}
}

func (h *helix) Descriptor() Descriptor { return h.desc }

func (h *helix) Convert(theme models.Theme) (Output, error) {
	return convertDual(theme, helixTheme), nil
}

// flatten drops the alpha of an overlay: toward white in light mode, onto
// the background in dark mode.
func flatten(hex, background string, surface Surface, mode models.Mode) string {
	if mode == models.ModeLight {
		return flatOverlay(hex, surface, mode)
	}
	return flatBlend(hex, background, surface, mode)
}

func helixTheme(b models.Block, mode models.Mode) HelixTheme {
	t := HelixTheme{
		"ui.background":           HelixStyle{Bg: b.Bg},
		"ui.text":                 b.Tx,
		"ui.text.focus":           HelixStyle{Fg: b.Tx, Bg: flatten(b.Pr, b.Bg, SurfaceHover, mode)},
		"ui.linenr":               b.Tx3,
		"ui.linenr.selected":      b.Tx2,
		"ui.cursor":               HelixStyle{Fg: b.Bg, Bg: b.Tx2},
		"ui.cursor.primary":       HelixStyle{Fg: b.Bg, Bg: b.Pr},
		"ui.cursor.match":         HelixStyle{Bg: flatten(b.Pr, b.Bg, SurfaceBracketMatch, mode)},
		"ui.cursorline.primary":   HelixStyle{Bg: flatten(b.Tx, b.Bg, SurfaceLineHighlight, mode)},
		"ui.selection":            HelixStyle{Bg: flatten(b.Pr, b.Bg, SurfaceSelectionInactive, mode)},
		"ui.selection.primary":    HelixStyle{Bg: flatten(b.Pr, b.Bg, SurfaceSelection, mode)},
		"ui.statusline":           HelixStyle{Fg: b.Tx2, Bg: b.Bg2},
		"ui.statusline.inactive":  HelixStyle{Fg: b.Tx3, Bg: b.Bg2},
		"ui.statusline.normal":    HelixStyle{Fg: b.Bg, Bg: b.Pr, Modifiers: []string{"bold"}},
		"ui.statusline.insert":    HelixStyle{Fg: b.Bg, Bg: b.Ac2, Modifiers: []string{"bold"}},
		"ui.statusline.select":    HelixStyle{Fg: b.Bg, Bg: b.Sc, Modifiers: []string{"bold"}},
		"ui.popup":                HelixStyle{Fg: b.Tx, Bg: b.Bg2},
		"ui.window":               b.UI2,
		"ui.help":                 HelixStyle{Fg: b.Tx, Bg: b.Bg2},
		"ui.menu":                 HelixStyle{Fg: b.Tx, Bg: b.Bg2},
		"ui.menu.selected":        HelixStyle{Fg: b.Tx, Bg: flatten(b.Pr, b.Bg, SurfaceSelection, mode)},
		"ui.virtual.whitespace":   b.UI2,
		"ui.virtual.indent-guide": b.UI,
		"ui.virtual.ruler":        HelixStyle{Bg: b.Bg2},
		"ui.highlight":            HelixStyle{Bg: flatten(b.Ac3, b.Bg, SurfaceFindMatch, mode)},
		"diff.plus":               b.Ac2,
		"diff.minus":              b.Ac1,
		"diff.delta":              b.Ac3,
		"markup.heading":          HelixStyle{Fg: b.Pr, Modifiers: []string{"bold"}},
		"markup.link.url":         HelixStyle{Fg: b.Pr, Modifiers: []string{"underlined"}},
		"markup.raw":              b.Ac2,
	}

	for _, rule := range syntaxRules(b, helixScopes) {
		for _, scope := range rule.Patterns {
			if rule.Category == SyntaxComment {
				t[scope] = HelixStyle{Fg: rule.Color, Modifiers: []string{"italic"}}
				continue
			}
			t[scope] = rule.Color
		}
	}

	for _, status := range tokens.Statuses {
		scope, ok := helixDiagnostics[status.Name]
		if !ok {
			continue
		}
		triad := tokens.TriadFor(b, status.Role)
		t[scope] = triad.Solid
		t["diagnostic."+scope] = HelixStyle{Modifiers: []string{"undercurled"}, Bg: triad.Background}
	}
	return t
}

func (h *helix) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	mode := opts.mode()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", modeTitle(theme, mode))
	if err := toml.NewEncoder(&buf).Encode(helixTheme(theme.Block(mode), mode)); err != nil {
		return nil, fmt.Errorf("encode helix theme: %w", err)
	}
	return newArtifact(h.desc, theme, opts, buf.Bytes()), nil
}

func (h *helix) Validate(out Output) bool {
	if single, ok := outputAs[HelixTheme](out); ok {
		return helixValid(single)
	}
	dual, ok := outputAs[Dual[HelixTheme]](out)
	return ok && helixValid(dual.Light) && helixValid(dual.Dark)
}

func helixValid(t HelixTheme) bool {
	_, hasBackground := t["ui.background"]
	text, _ := t["ui.text"].(string)
	return hasBackground && text != ""
}
