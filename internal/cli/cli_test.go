package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/providers"
)

const importYAML = `name: Harbor
light:
  bg: "#ffffff"
  bg_2: "#f4f4f5"
  ui: "#e4e4e7"
  ui_2: "#d4d4d8"
  ui_3: "#a1a1aa"
  tx_3: "#71717a"
  tx_2: "#52525b"
  tx: "#18181b"
  pr: "#0369a1"
  sc: "#7e22ce"
  ac_1: "#b91c1c"
  ac_2: "#15803d"
  ac_3: "#a16207"
dark:
  bg: "#09090b"
  bg_2: "#18181b"
  ui: "#27272a"
  ui_2: "#3f3f46"
  ui_3: "#52525b"
  tx_3: "#71717a"
  tx_2: "#a1a1aa"
  tx: "#fafafa"
  pr: "#38bdf8"
  sc: "#c084fc"
  ac_1: "#f87171"
  ac_2: "#4ade80"
  ac_3: "#facc15"
`

// setupCLI isolates config, data and file output for one test.
func setupCLI(t *testing.T) afero.Fs {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("TINTE_NO_PROGRESS", "1")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	fs := afero.NewMemMapFs()
	prevFs := appFs
	appFs = fs
	t.Cleanup(func() { appFs = prevFs })

	prevClipboard := clipboardWrite
	t.Cleanup(func() { clipboardWrite = prevClipboard })

	return fs
}

func resetFlags() {
	cfgFile, logLevel = "", ""
	jsonOutput, jsonlOutput, nonInteractive, noProgress = false, false, false, false
	projectDir = "."
	appConfig = nil

	providersCategory, providersTag = "", ""
	exportProviders, exportMode, exportOut = nil, "", ""
	exportClipboard, exportOverride, exportCSS = false, "", false
	resolveMode, resolveOverride = "", ""
	previewMode = ""
	themesImportPublic = false
	themesEditMode, themesEditSet, themesEditOverride, themesEditPublic = "", nil, "", false
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProvidersCommand(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "providers")
	require.NoError(t, err)
	for _, id := range []string{"vscode", "zed", "kitty", "windows-terminal", "slack", "shadcn"} {
		assert.Contains(t, out, id)
	}

	out, err = runCLI(t, "providers", "--category", "terminal", "--json")
	require.NoError(t, err)
	var descs []providers.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &descs))
	assert.Len(t, descs, 4)
	for _, d := range descs {
		assert.Equal(t, providers.CategoryTerminal, d.Category)
	}

	_, err = runCLI(t, "providers", "--category", "spreadsheet")
	require.Error(t, err)
}

func TestThemesList(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "themes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Flexoki")
	assert.Contains(t, out, "Tokyo Night")

	out, err = runCLI(t, "themes", "list", "--jsonl")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestExportWritesArtifacts(t *testing.T) {
	fs := setupCLI(t)

	out, err := runCLI(t, "export", "tinte", "--provider", "kitty,slack", "--mode", "light", "--out", "themes", "--css")
	require.NoError(t, err)
	assert.Contains(t, out, "kitty")

	for _, name := range []string{"tinte-light-kitty.conf", "tinte-light-slack.txt", "tinte-light-chroma.css"} {
		ok, err := afero.Exists(fs, filepath.Join("themes", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	data, err := afero.ReadFile(fs, filepath.Join("themes", "tinte-light-slack.txt"))
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(string(data), ","))
}

func TestExportIsolatesFailures(t *testing.T) {
	fs := setupCLI(t)

	out, err := runCLI(t, "export", "flexoki", "--provider", "nope,alacritty", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 exports failed")

	var results []ExportResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Error)
	assert.Empty(t, results[1].Error)

	ok, err := afero.Exists(fs, results[1].Path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExportClipboard(t *testing.T) {
	setupCLI(t)

	var copied string
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}

	_, err := runCLI(t, "export", "tinte", "--provider", "slack", "--clipboard")
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(copied, ","))

	_, err = runCLI(t, "export", "tinte", "--clipboard")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
}

func TestResolveWithOverrideFile(t *testing.T) {
	fs := setupCLI(t)

	overrides := `overrides:
  - channel: ui-scheme
    mode: light
    values:
      pr: "#FF0000"
  - channel: editor-scheme
    mode: light
    values:
      pr: "#00ff00"
`
	require.NoError(t, afero.WriteFile(fs, "overrides.yaml", []byte(overrides), 0o644))

	out, err := runCLI(t, "resolve", "tinte", "--mode", "light", "--json")
	require.NoError(t, err)
	var tm map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &tm))
	assert.Equal(t, "#1e40af", tm["pr"])

	out, err = runCLI(t, "resolve", "tinte", "--mode", "light", "--override", "overrides.yaml", "--json")
	require.NoError(t, err)
	tm = nil
	require.NoError(t, json.Unmarshal([]byte(out), &tm))
	// editor-scheme comes after ui-scheme in precedence.
	assert.Equal(t, "#00ff00", tm["pr"])
	assert.Contains(t, tm, "status.error.bg")

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("- channel: ui-scheme\n  mode: light\n  values: {pr: nope}\n"), 0o644))
	_, err = runCLI(t, "resolve", "tinte", "--override", "bad.yaml")
	require.ErrorIs(t, err, models.ErrUnparseableColor)
}

func TestThemesImportEditDelete(t *testing.T) {
	fs := setupCLI(t)
	require.NoError(t, afero.WriteFile(fs, "harbor.yaml", []byte(importYAML), 0o644))

	out, err := runCLI(t, "themes", "import", "harbor.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported "Harbor"`)

	out, err = runCLI(t, "themes", "edit", "harbor", "--set", "pr=#123456", "--mode", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Harbor"`)

	out, err = runCLI(t, "themes", "show", "harbor", "--json")
	require.NoError(t, err)
	var entry themeEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "saved", entry.Source)
	assert.Equal(t, "#123456", entry.Theme.Dark.Pr)

	out, err = runCLI(t, "themes", "delete", "harbor")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, err = runCLI(t, "themes", "show", "harbor")
	require.Error(t, err)
}

func TestThemesEditForksBuiltin(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "themes", "edit", "flexoki", "--set", "ac_1=#ff0000", "--json")
	require.NoError(t, err)
	var saved models.Theme
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, "flexoki", saved.ForkedFrom)
	assert.Equal(t, "Custom", saved.Name)
	assert.Equal(t, "#ff0000", saved.Dark.Ac1)

	// The built-in itself is still available and unchanged.
	out, err = runCLI(t, "themes", "show", "flexoki", "--json")
	require.NoError(t, err)
	var entry themeEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "#d14d41", entry.Theme.Dark.Ac1)

	_, err = runCLI(t, "themes", "edit", "flexoki")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
}

func TestThemesDeleteBuiltinRefused(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "themes", "delete", "solarized")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Message, "not one of your themes")
}

func TestPreviewRequiresTTY(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "preview", "tinte", "--non-interactive")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
}
