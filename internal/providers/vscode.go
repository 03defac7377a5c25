package providers

import (
	"fmt"
	"strings"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// VSCodeTheme is a VS Code color theme file.
type VSCodeTheme struct {
	Schema               string                   `json:"$schema"`
	Name                 string                   `json:"name"`
	Type                 string                   `json:"type"`
	SemanticHighlighting bool                     `json:"semanticHighlighting"`
	Colors               map[string]string        `json:"colors"`
	TokenColors          []VSCodeTokenColor       `json:"tokenColors"`
	SemanticTokenColors  map[string]VSCodeSetting `json:"semanticTokenColors"`
}

// VSCodeTokenColor is one TextMate scope rule.
type VSCodeTokenColor struct {
	Name     string        `json:"name"`
	Scope    []string      `json:"scope"`
	Settings VSCodeSetting `json:"settings"`
}

type VSCodeSetting struct {
	Foreground string `json:"foreground,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`
}

var vscodeScopes = map[SyntaxCategory][]string{
	SyntaxComment:     {"comment", "punctuation.definition.comment", "string.comment"},
	SyntaxKeyword:     {"keyword", "storage.type", "storage.modifier", "keyword.control"},
	SyntaxString:      {"string", "string.quoted", "string.template", "punctuation.definition.string"},
	SyntaxFunction:    {"entity.name.function", "support.function", "meta.function-call"},
	SyntaxType:        {"entity.name.type", "entity.name.class", "support.type", "support.class"},
	SyntaxNumber:      {"constant.numeric"},
	SyntaxConstant:    {"constant.language", "constant.character", "support.constant", "variable.other.constant"},
	SyntaxOperator:    {"keyword.operator", "punctuation.accessor"},
	SyntaxTag:         {"entity.name.tag", "punctuation.definition.tag"},
	SyntaxAttribute:   {"entity.other.attribute-name"},
	SyntaxDecorator:   {"meta.decorator", "punctuation.decorator", "entity.name.function.decorator"},
	SyntaxVariable:    {"variable", "variable.other.readwrite", "meta.definition.variable"},
	SyntaxProperty:    {"variable.other.property", "support.type.property-name", "meta.object-literal.key"},
	SyntaxPunctuation: {"punctuation", "meta.brace", "punctuation.separator"},
	SyntaxNamespace:   {"entity.name.namespace", "entity.name.module", "storage.modifier.package"},
}

var vscodeSemantic = map[string]SyntaxCategory{
	"comment":    SyntaxComment,
	"keyword":    SyntaxKeyword,
	"string":     SyntaxString,
	"function":   SyntaxFunction,
	"method":     SyntaxFunction,
	"type":       SyntaxType,
	"class":      SyntaxType,
	"interface":  SyntaxType,
	"number":     SyntaxNumber,
	"enumMember": SyntaxConstant,
	"operator":   SyntaxOperator,
	"decorator":  SyntaxDecorator,
	"variable":   SyntaxVariable,
	"parameter":  SyntaxVariable,
	"property":   SyntaxProperty,
	"namespace":  SyntaxNamespace,
}

// vscodeRequired are the workbench keys every exported theme must carry.
var vscodeRequired = []string{
	"editor.background",
	"editor.foreground",
	"editor.selectionBackground",
	"activityBar.background",
	"sideBar.background",
	"statusBar.background",
	"titleBar.activeBackground",
	"tab.activeBackground",
	"terminal.ansiRed",
	"editorError.foreground",
}

type vscode struct {
	desc Descriptor
}

// NewVSCode returns the VS Code provider.
func NewVSCode() Provider {
	return &vscode{desc: Descriptor{
		ID:        "vscode",
		Name:      "Visual Studio Code",
		Category:  CategoryEditor,
		Tags:      []string{"editor", "json", "textmate"},
		Links:     []string{"https://code.visualstudio.com/api/extension-guides/color-theme"},
		Extension: "json",
		MimeType:  "application/json",
	}}
}

func (v *vscode) Descriptor() Descriptor { return v.desc }

func (v *vscode) Channel() models.Channel { return models.ChannelEditor }

func (v *vscode) Convert(theme models.Theme) (Output, error) {
	return v.ConvertWithOverrides(theme, nil)
}

func (v *vscode) ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error) {
	return Dual[VSCodeTheme]{
		Light: v.build(theme, models.ModeLight, layers),
		Dark:  v.build(theme, models.ModeDark, layers),
	}, nil
}

func (v *vscode) build(theme models.Theme, mode models.Mode, layers []models.OverrideLayer) VSCodeTheme {
	block := theme.Block(mode)
	colors := vscodeColors(block, mode)
	colors = tokens.Apply(colors, mode, layers, models.ChannelEditor)

	out := VSCodeTheme{
		Schema:               "vscode://schemas/color-theme",
		Name:                 modeTitle(theme, mode),
		Type:                 string(mode),
		SemanticHighlighting: true,
		Colors:               colors,
		SemanticTokenColors:  make(map[string]VSCodeSetting, len(vscodeSemantic)),
	}

	for _, rule := range syntaxRules(block, vscodeScopes) {
		setting := VSCodeSetting{Foreground: rule.Color}
		if rule.Category == SyntaxComment {
			setting.FontStyle = "italic"
		}
		out.TokenColors = append(out.TokenColors, VSCodeTokenColor{
			Name:     titleCase(string(rule.Category)),
			Scope:    rule.Patterns,
			Settings: setting,
		})
	}
	for key, category := range vscodeSemantic {
		out.SemanticTokenColors[key] = VSCodeSetting{Foreground: block.Get(SyntaxRole(category))}
	}
	return out
}

func vscodeColors(b models.Block, mode models.Mode) map[string]string {
	shift := 0.03
	if mode == models.ModeLight {
		shift = -0.03
	}
	elevated := color.AdjustLightness(b.Bg, shift)
	sunken := color.AdjustLightness(b.Bg, -shift)
	onPrimary := color.Contrasting(b.Pr, "#000000", "#ffffff")
	palette := TerminalPalette(b, mode)

	c := map[string]string{
		"focusBorder":               b.Pr,
		"foreground":                b.Tx,
		"disabledForeground":        b.Tx3,
		"descriptionForeground":     b.Tx2,
		"errorForeground":           b.Ac1,
		"icon.foreground":           b.Tx2,
		"widget.shadow":             color.SuffixAlpha(b.Tx, "1a"),
		"selection.background":      overlay(b.Pr, SurfaceSelection, mode),
		"textLink.foreground":       b.Pr,
		"textLink.activeForeground": b.Sc,

		"button.background":           b.Pr,
		"button.foreground":           onPrimary,
		"button.hoverBackground":      color.AdjustLightness(b.Pr, shift*2),
		"button.secondaryBackground":  b.UI,
		"button.secondaryForeground":  b.Tx,
		"badge.background":            b.Pr,
		"badge.foreground":            onPrimary,
		"input.background":            sunken,
		"input.foreground":            b.Tx,
		"input.border":                b.UI2,
		"input.placeholderForeground": b.Tx3,
		"dropdown.background":         elevated,
		"dropdown.border":             b.UI2,
		"dropdown.foreground":         b.Tx,

		"editor.background":                      b.Bg,
		"editor.foreground":                      b.Tx,
		"editorLineNumber.foreground":            b.Tx3,
		"editorLineNumber.activeForeground":      b.Tx2,
		"editorCursor.foreground":                b.Pr,
		"editor.selectionBackground":             overlay(b.Pr, SurfaceSelection, mode),
		"editor.inactiveSelectionBackground":     overlay(b.Pr, SurfaceSelectionInactive, mode),
		"editor.selectionHighlightBackground":    overlay(b.Sc, SurfaceWordHighlight, mode),
		"editor.wordHighlightBackground":         overlay(b.Sc, SurfaceWordHighlight, mode),
		"editor.findMatchBackground":             overlay(b.Ac3, SurfaceFindMatch, mode),
		"editor.findMatchHighlightBackground":    overlay(b.Ac3, SurfaceFindHighlight, mode),
		"editor.hoverHighlightBackground":        overlay(b.Pr, SurfaceHover, mode),
		"editor.lineHighlightBackground":         overlay(b.Tx, SurfaceLineHighlight, mode),
		"editorBracketMatch.background":          overlay(b.Pr, SurfaceBracketMatch, mode),
		"editorBracketMatch.border":              b.Pr,
		"editorIndentGuide.background1":          b.UI,
		"editorIndentGuide.activeBackground1":    b.UI3,
		"editorWhitespace.foreground":            b.UI2,
		"editorWidget.background":                elevated,
		"editorWidget.border":                    b.UI2,
		"editorHoverWidget.background":           elevated,
		"editorHoverWidget.border":               b.UI2,
		"editorSuggestWidget.background":         elevated,
		"editorSuggestWidget.border":             b.UI2,
		"editorSuggestWidget.selectedBackground": overlay(b.Pr, SurfaceSelection, mode),
		"editorGutter.background":                b.Bg,
		"editorGroupHeader.tabsBackground":       b.Bg2,
		"editorGroup.border":                     b.UI,

		"activityBar.background":           b.Bg2,
		"activityBar.foreground":           b.Tx,
		"activityBar.inactiveForeground":   b.Tx3,
		"activityBar.border":               b.UI,
		"activityBarBadge.background":      b.Pr,
		"activityBarBadge.foreground":      onPrimary,
		"sideBar.background":               b.Bg2,
		"sideBar.foreground":               b.Tx2,
		"sideBar.border":                   b.UI,
		"sideBarTitle.foreground":          b.Tx,
		"sideBarSectionHeader.background":  b.Bg2,
		"sideBarSectionHeader.foreground":  b.Tx,
		"list.activeSelectionBackground":   overlay(b.Pr, SurfaceSelection, mode),
		"list.activeSelectionForeground":   b.Tx,
		"list.inactiveSelectionBackground": overlay(b.Pr, SurfaceSelectionInactive, mode),
		"list.hoverBackground":             overlay(b.Tx, SurfaceHover, mode),
		"list.highlightForeground":         b.Pr,

		"statusBar.background":             b.Bg2,
		"statusBar.foreground":             b.Tx2,
		"statusBar.border":                 b.UI,
		"statusBar.debuggingBackground":    b.Ac3,
		"statusBarItem.remoteBackground":   b.Pr,
		"statusBarItem.remoteForeground":   onPrimary,
		"titleBar.activeBackground":        b.Bg2,
		"titleBar.activeForeground":        b.Tx,
		"titleBar.inactiveBackground":      b.Bg2,
		"titleBar.inactiveForeground":      b.Tx3,
		"titleBar.border":                  b.UI,
		"tab.activeBackground":             b.Bg,
		"tab.activeForeground":             b.Tx,
		"tab.inactiveBackground":           b.Bg2,
		"tab.inactiveForeground":           b.Tx3,
		"tab.border":                       b.UI,
		"tab.activeBorderTop":              b.Pr,
		"panel.background":                 b.Bg2,
		"panel.border":                     b.UI,
		"panelTitle.activeBorder":          b.Pr,
		"panelTitle.activeForeground":      b.Tx,
		"panelTitle.inactiveForeground":    b.Tx3,
		"scrollbarSlider.background":       color.SuffixAlpha(b.UI2, "80"),
		"scrollbarSlider.hoverBackground":  color.SuffixAlpha(b.UI3, "80"),
		"scrollbarSlider.activeBackground": b.UI3,

		"gitDecoration.addedResourceForeground":       b.Ac2,
		"gitDecoration.modifiedResourceForeground":    b.Ac3,
		"gitDecoration.deletedResourceForeground":     b.Ac1,
		"gitDecoration.untrackedResourceForeground":   b.Pr,
		"gitDecoration.ignoredResourceForeground":     b.Tx3,
		"gitDecoration.conflictingResourceForeground": b.Sc,

		"terminal.background":          b.Bg,
		"terminal.foreground":          b.Tx,
		"terminalCursor.foreground":    palette["cursor"],
		"terminal.selectionBackground": overlay(b.Pr, SurfaceSelection, mode),
	}

	for _, status := range tokens.Statuses {
		triad := tokens.TriadFor(b, status.Role)
		keys := vscodeStatusKeys[status.Name]
		for key, value := range map[string]string{
			keys.solid:      triad.Solid,
			keys.background: triad.Background,
			keys.border:     triad.Border,
		} {
			if key != "" {
				c[key] = value
			}
		}
	}

	for i, name := range ANSINames {
		c["terminal.ansi"+titleCase(name)] = palette[name]
		c["terminal.ansiBright"+titleCase(name)] = palette["bright_"+ANSINames[i]]
	}
	return c
}

// vscodeStatusKeys lists the workbench keys each status triad feeds. Empty
// keys have no VS Code counterpart.
var vscodeStatusKeys = map[string]struct{ solid, background, border string }{
	"error":   {"editorError.foreground", "editorError.background", "editorError.border"},
	"warning": {"editorWarning.foreground", "editorWarning.background", "editorWarning.border"},
	"info":    {"editorInfo.foreground", "editorInfo.background", "editorInfo.border"},
	"hint":    {"editorHint.foreground", "", "editorHint.border"},
	"success": {"testing.iconPassed", "", ""},
}

func (v *vscode) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	out := v.build(theme, opts.mode(), opts.Overrides)
	content, err := marshalJSON(out)
	if err != nil {
		return nil, fmt.Errorf("encode vscode theme: %w", err)
	}
	return newArtifact(v.desc, theme, opts, content), nil
}

func (v *vscode) Validate(out Output) bool {
	if single, ok := outputAs[VSCodeTheme](out); ok {
		return vscodeValid(single)
	}
	dual, ok := outputAs[Dual[VSCodeTheme]](out)
	if !ok {
		return false
	}
	return vscodeValid(dual.Light) && vscodeValid(dual.Dark)
}

func vscodeValid(t VSCodeTheme) bool {
	if t.Type != string(models.ModeLight) && t.Type != string(models.ModeDark) {
		return false
	}
	for _, key := range vscodeRequired {
		if t.Colors[key] == "" {
			return false
		}
	}
	return len(t.TokenColors) > 0
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
