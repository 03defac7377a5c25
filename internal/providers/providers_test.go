package providers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Railly/tinte-sub002/internal/models"
)

func fixtureTheme() models.Theme {
	return models.Theme{
		ID:   "fixture",
		Name: "Fixture",
		Light: models.Block{
			Bg: "#ffffff", Bg2: "#f2f0e5",
			UI: "#e6e4d9", UI2: "#dad8ce", UI3: "#cecdc3",
			Tx3: "#b7b5ac", Tx2: "#6f6e69", Tx: "#100f0f",
			Pr: "#1e40af", Sc: "#5e409d",
			Ac1: "#dc2626", Ac2: "#66800b", Ac3: "#ad8301",
		},
		Dark: models.Block{
			Bg: "#100f0f", Bg2: "#1c1b1a",
			UI: "#282726", UI2: "#343331", UI3: "#403e3c",
			Tx3: "#575653", Tx2: "#878580", Tx: "#cecdc3",
			Pr: "#4385be", Sc: "#8b7ec8",
			Ac1: "#d14d41", Ac2: "#879a39", Ac3: "#d0a215",
		},
	}
}

func TestEveryBuiltinConvertsAndValidates(t *testing.T) {
	r := Builtin(WithLogger(zerolog.Nop()))
	theme := fixtureTheme()
	before := theme.Clone()

	outputs := r.ConvertAll(theme)
	assert.Len(t, outputs, len(r.IDs()))
	for id, out := range outputs {
		assert.True(t, r.Validate(id, out), "provider %s produced invalid output", id)
	}
	assert.Equal(t, before, theme, "conversion must not mutate the theme")
}

func TestExportsAreDeterministic(t *testing.T) {
	r := Builtin(WithLogger(zerolog.Nop()))
	first := r.ExportAll(fixtureTheme(), ExportOptions{})
	second := r.ExportAll(fixtureTheme(), ExportOptions{})
	require.Len(t, first, len(r.IDs()))
	for id, artifact := range first {
		assert.Equal(t, string(artifact.Content), string(second[id].Content), id)
		assert.NotEmpty(t, artifact.MimeType, id)
	}
}

func TestExportFilenames(t *testing.T) {
	r := Builtin(WithLogger(zerolog.Nop()))
	theme := fixtureTheme()
	theme.Name = "Tinte Test"

	assert.Equal(t, "tinte-test-dark-vscode.json", r.Export("vscode", theme, ExportOptions{}).Filename)
	assert.Equal(t, "tinte-test-light-helix.toml", r.Export("helix", theme, ExportOptions{Mode: models.ModeLight}).Filename)
	assert.Equal(t, "tinte-test-zed.json", r.Export("zed", theme, ExportOptions{}).Filename)
	assert.Equal(t, "tinte-test-gimp.gpl", r.Export("gimp", theme, ExportOptions{}).Filename)
	assert.Equal(t, "custom.css", r.Export("shadcn", theme, ExportOptions{Filename: "custom.css"}).Filename)
}

func TestVSCodeStatusKeysAreWorkbenchColors(t *testing.T) {
	out, err := NewVSCode().Convert(fixtureTheme())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	colors := out.(Dual[VSCodeTheme]).Light.Colors

	if got := colors["testing.iconPassed"]; got != "#66800b" {
		t.Fatalf("testing.iconPassed = %q, want the ac_2 color", got)
	}
	for _, key := range []string{
		"testing.iconPassed.foreground",
		"testing.iconPassed.background",
		"testing.iconPassed.border",
		"editorHint.background",
	} {
		if _, ok := colors[key]; ok {
			t.Fatalf("unexpected non-VS Code key %s", key)
		}
	}
	for _, key := range []string{"editorWarning.background", "editorInfo.border", "editorHint.border"} {
		if colors[key] == "" {
			t.Fatalf("missing %s", key)
		}
	}
}

func TestVSCodeRolesAndOverrides(t *testing.T) {
	p := NewVSCode()
	out, err := p.Convert(fixtureTheme())
	require.NoError(t, err)
	dual := out.(Dual[VSCodeTheme])
	assert.Equal(t, "#ffffff", dual.Light.Colors["editor.background"])
	assert.Equal(t, "#100f0f", dual.Dark.Colors["editor.background"])
	assert.Equal(t, "#1e40af4d", dual.Light.Colors["editor.selectionBackground"])
	assert.Equal(t, "#4385be33", dual.Dark.Colors["editor.selectionBackground"])
	assert.Equal(t, "#dc2626", dual.Light.Colors["editorError.foreground"])
	assert.Equal(t, "light", dual.Light.Type)
	assert.Equal(t, "comment", dual.Dark.TokenColors[0].Scope[0])

	overridable := p.(Overridable)
	assert.Equal(t, models.ChannelEditor, overridable.Channel())
	out, err = overridable.ConvertWithOverrides(fixtureTheme(), []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"editor.background": "#000000"}},
		{Channel: models.ChannelTerminal, Mode: models.ModeDark, Values: map[string]string{"editor.foreground": "#ffffff"}},
	})
	require.NoError(t, err)
	dual = out.(Dual[VSCodeTheme])
	assert.Equal(t, "#000000", dual.Dark.Colors["editor.background"])
	assert.Equal(t, "#cecdc3", dual.Dark.Colors["editor.foreground"], "other channels do not reach the editor")
	assert.Equal(t, "#ffffff", dual.Light.Colors["editor.background"])

	var parsed VSCodeTheme
	artifact, err := p.(Exporter).Export(fixtureTheme(), ExportOptions{Mode: models.ModeLight})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(artifact.Content, &parsed))
	assert.Equal(t, "Fixture Light", parsed.Name)

	assert.False(t, p.(Validator).Validate(Dual[VSCodeTheme]{}))
}

func TestZedPlayersAndStatuses(t *testing.T) {
	out, err := NewZed().Convert(fixtureTheme())
	require.NoError(t, err)
	family := out.(ZedFamily)
	require.Len(t, family.Themes, 2)

	light, ok := family.Theme(models.ModeLight)
	require.True(t, ok)
	require.Len(t, light.Style.Players, 8)
	assert.Equal(t, "#1e40af", light.Style.Players[0].Cursor)
	assert.Equal(t, "#66800b", light.Style.Players[1].Cursor)
	assert.Equal(t, "#1e40af3d", light.Style.Players[0].Selection)
	assert.Equal(t, "#dc2626", light.Style.Colors["error"])
	assert.Contains(t, light.Style.Colors, "modified.background")
	assert.Equal(t, "italic", light.Style.Syntax["comment"].FontStyle)

	raw, err := json.Marshal(light.Style)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "#ffffff", flat["editor.background"])
	assert.Contains(t, flat, "players")
}

func TestHelixTOMLHasNoAlpha(t *testing.T) {
	artifact, err := NewHelix().(Exporter).Export(fixtureTheme(), ExportOptions{Mode: models.ModeDark})
	require.NoError(t, err)

	var decoded map[string]any
	_, err = toml.Decode(string(artifact.Content), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "#cecdc3", decoded["ui.text"])

	selection, ok := decoded["ui.selection.primary"].(map[string]any)
	require.True(t, ok)
	bg, _ := selection["bg"].(string)
	assert.Len(t, bg, 7, "helix rejects 8 digit colors")
}

func TestTerminalPalette(t *testing.T) {
	dark := TerminalPalette(fixtureTheme().Dark, models.ModeDark)
	assert.Equal(t, "#282726", dark["black"])
	assert.Equal(t, "#878580", dark["white"])
	assert.Equal(t, "#d14d41", dark.Index(1))
	assert.NotEqual(t, dark["red"], dark["bright_red"])
	assert.Equal(t, "", dark.Index(16))

	light := TerminalPalette(fixtureTheme().Light, models.ModeLight)
	assert.Equal(t, "#100f0f", light["black"])
	assert.Equal(t, "#cecdc3", light["white"])
}

func TestAlacrittyOverrides(t *testing.T) {
	p := NewAlacritty().(Overridable)
	out, err := p.ConvertWithOverrides(fixtureTheme(), []models.OverrideLayer{
		{Channel: models.ChannelTerminal, Mode: models.ModeDark, Values: map[string]string{"red": "#FF0000"}},
	})
	require.NoError(t, err)
	dual := out.(Dual[AlacrittyTheme])
	assert.Equal(t, "#ff0000", dual.Dark.Colors.Normal.Red)
	assert.Equal(t, "#dc2626", dual.Light.Colors.Normal.Red)

	artifact, err := NewAlacritty().(Exporter).Export(fixtureTheme(), ExportOptions{})
	require.NoError(t, err)
	var decoded AlacrittyTheme
	_, err = toml.Decode(string(artifact.Content), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "#100f0f", decoded.Colors.Primary.Background)
}

func TestKittyConf(t *testing.T) {
	artifact, err := NewKitty().(Exporter).Export(fixtureTheme(), ExportOptions{})
	require.NoError(t, err)
	content := string(artifact.Content)
	for _, key := range []string{"color0", "color7", "color15", "background", "cursor"} {
		assert.Contains(t, content, "\n"+key+" ")
	}
	assert.True(t, strings.HasPrefix(content, "# Fixture Dark\n"))
}

func TestWarpYAML(t *testing.T) {
	artifact, err := NewWarp().(Exporter).Export(fixtureTheme(), ExportOptions{Mode: models.ModeLight})
	require.NoError(t, err)
	var decoded WarpTheme
	require.NoError(t, yaml.Unmarshal(artifact.Content, &decoded))
	assert.Equal(t, "lighter", decoded.Details)
	assert.Equal(t, "#dc2626", decoded.TerminalColors.Normal.Red)
}

func TestWindowsTerminalUsesPurple(t *testing.T) {
	artifact, err := NewWindowsTerminal().(Exporter).Export(fixtureTheme(), ExportOptions{})
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(artifact.Content, &decoded))
	assert.Equal(t, "#8b7ec8", decoded["purple"])
	assert.NotContains(t, decoded, "magenta")
}

func TestSlackString(t *testing.T) {
	p := NewSlack().(Overridable)
	out, err := p.ConvertWithOverrides(fixtureTheme(), []models.OverrideLayer{
		{Channel: models.ChannelChat, Mode: models.ModeLight, Values: map[string]string{"mention_badge": "#00ff00"}},
	})
	require.NoError(t, err)
	light := out.(Dual[SlackTheme]).Light
	parts := strings.Split(light.String(), ",")
	require.Len(t, parts, 8)
	assert.Equal(t, "#F2F0E5", parts[0])
	assert.Equal(t, "#00FF00", parts[7])
}

func TestGimpPalette(t *testing.T) {
	out, err := NewGimp().Convert(fixtureTheme())
	require.NoError(t, err)
	text := out.(GimpPalette).String()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Equal(t, "GIMP Palette", lines[0])
	assert.Len(t, lines, 4+26)
	assert.Contains(t, text, "255 255 255\tlight bg")
}

func TestGlamourStyle(t *testing.T) {
	artifact, err := NewGlamour().(Exporter).Export(fixtureTheme(), ExportOptions{})
	require.NoError(t, err)
	var cfg ansi.StyleConfig
	require.NoError(t, json.Unmarshal(artifact.Content, &cfg))
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#cecdc3", *cfg.Document.Color)
	require.NotNil(t, cfg.CodeBlock.Chroma)
	assert.Equal(t, "#8b7ec8", *cfg.CodeBlock.Chroma.Keyword.Color)

	rendered, err := RenderMarkdown(fixtureTheme(), models.ModeDark, "# Title\n\nSome `code`.", 40)
	require.NoError(t, err)
	assert.Contains(t, rendered, "Title")
}

func TestChromaStyleAndCSS(t *testing.T) {
	artifact, err := NewChroma().(Exporter).Export(fixtureTheme(), ExportOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifact.Content, []byte(`<style name="fixture-dark">`)))
	assert.Contains(t, string(artifact.Content), "#8b7ec8")

	css, err := ExportCSS(fixtureTheme(), models.ModeLight)
	require.NoError(t, err)
	assert.Contains(t, string(css), ".chroma")
	assert.Contains(t, string(css), "#5e409d")
}

func TestShadcnCSS(t *testing.T) {
	p := NewShadcn()
	out, err := p.(Overridable).ConvertWithOverrides(fixtureTheme(), []models.OverrideLayer{
		{Channel: models.ChannelUI, Mode: models.ModeDark, Values: map[string]string{"ring": "#ffffff"}},
	})
	require.NoError(t, err)
	dual := out.(Dual[ShadcnVars])
	assert.Equal(t, "#ffffff", dual.Dark["ring"])
	assert.Equal(t, "#1e40af", dual.Light["chart-1"])
	assert.Equal(t, "#ffffff", dual.Light["primary-foreground"])

	css := ShadcnCSS(dual)
	assert.True(t, strings.HasPrefix(css, ":root {\n"))
	assert.Contains(t, css, "\n.dark {\n")
	assert.Contains(t, css, "--ring: oklch(1.0000 0 0);")
}
