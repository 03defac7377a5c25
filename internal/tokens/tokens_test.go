package tokens

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/logging"
	"github.com/Railly/tinte-sub002/internal/models"
)

func fixtureTheme() models.Theme {
	light := models.Block{
		Bg: "#ffffff", Bg2: "#f2f0e5",
		UI: "#e6e4d9", UI2: "#dad8ce", UI3: "#cecdc3",
		Tx3: "#b7b5ac", Tx2: "#6f6e69", Tx: "#100f0f",
		Pr: "#1e40af", Sc: "#5e409d",
		Ac1: "#dc2626", Ac2: "#66800b", Ac3: "#ad8301",
	}
	dark := models.Block{
		Bg: "#100f0f", Bg2: "#1c1b1a",
		UI: "#282726", UI2: "#343331", UI3: "#403e3c",
		Tx3: "#575653", Tx2: "#878580", Tx: "#cecdc3",
		Pr: "#4385be", Sc: "#8b7ec8",
		Ac1: "#d14d41", Ac2: "#879a39", Ac3: "#d0a215",
	}
	return models.Theme{ID: "fixture", Name: "Fixture", Light: light, Dark: dark}
}

func TestBaseCoversRolesAndSynthesized(t *testing.T) {
	base := Base(fixtureTheme(), models.ModeLight)
	for _, role := range models.Roles {
		assert.Contains(t, base, string(role))
	}
	for _, key := range []string{"bg_elevated", "bg_sunken", "border", "border_hover", "selection", "hover", "accent_1", "accent_8", "status.error", "status.hint.border"} {
		assert.Contains(t, base, key)
	}
	assert.Equal(t, "#1e40af", base["accent_1"])
	assert.Equal(t, "#66800b", base["accent_2"])
}

func TestStatusTriadFixture(t *testing.T) {
	base := Base(fixtureTheme(), models.ModeLight)
	assert.Equal(t, "#dc2626", base["status.error"])
	assertNear(t, "#e3473f", base["status.error.bg"])
	assertNear(t, "#ef766b", base["status.error.border"])
}

// assertNear allows one unit of rounding per channel.
func assertNear(t *testing.T, want, got string) {
	t.Helper()
	wr, wg, wb, err := color.RGB255(want)
	require.NoError(t, err)
	gr, gg, gb, err := color.RGB255(got)
	require.NoError(t, err, "got %q", got)
	assert.InDelta(t, float64(wr), float64(gr), 1, "red %s vs %s", want, got)
	assert.InDelta(t, float64(wg), float64(gg), 1, "green %s vs %s", want, got)
	assert.InDelta(t, float64(wb), float64(gb), 1, "blue %s vs %s", want, got)
}

func TestResolveIsDeterministic(t *testing.T) {
	layers := []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"bg": "#000000", "tx": "#FAFAFA"}},
		{Channel: models.ChannelTerminal, Mode: models.ModeDark, Values: map[string]string{"pr": "#0000ff"}},
	}
	first := Resolve(fixtureTheme(), models.ModeDark, layers)
	second := Resolve(fixtureTheme(), models.ModeDark, layers)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolve not deterministic (-first +second):\n%s", diff)
	}
	assert.Equal(t, "#fafafa", first["tx"])
}

func TestLaterLayerWins(t *testing.T) {
	theme := fixtureTheme()
	layers := []models.OverrideLayer{
		{Channel: models.ChannelUI, Mode: models.ModeLight, Values: map[string]string{"pr": "#111111"}},
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"pr": "#222222"}},
	}
	out := Resolve(theme, models.ModeLight, layers)
	assert.Equal(t, "#222222", out["pr"])

	// Same channel: input order decides.
	layers = []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"pr": "#333333"}},
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"pr": "#444444"}},
	}
	out = Resolve(theme, models.ModeLight, layers)
	assert.Equal(t, "#444444", out["pr"])

	// Precedence, not input order, orders channels.
	layers = []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"pr": "#555555"}},
		{Channel: models.ChannelUI, Mode: models.ModeLight, Values: map[string]string{"pr": "#666666"}},
	}
	out = Resolve(theme, models.ModeLight, layers)
	assert.Equal(t, "#555555", out["pr"])
}

func TestEmptyLayerIsNoop(t *testing.T) {
	theme := fixtureTheme()
	without := Resolve(theme, models.ModeDark, nil)
	with := Resolve(theme, models.ModeDark, []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeDark},
		{Channel: models.ChannelTerminal, Mode: models.ModeDark, Values: map[string]string{}},
	})
	if diff := cmp.Diff(without, with); diff != "" {
		t.Fatalf("empty layers changed the result:\n%s", diff)
	}
}

func TestResolveSkipsOtherModesAndBadValues(t *testing.T) {
	theme := fixtureTheme()
	out := Resolve(theme, models.ModeDark, []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"bg": "#ff0000"}},
		{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"tx": "not-a-color"}},
		{Channel: models.Channel("mystery"), Mode: models.ModeDark, Values: map[string]string{"bg": "#00ff00"}},
	})
	assert.Equal(t, "#100f0f", out["bg"])
	assert.Equal(t, "#cecdc3", out["tx"])
}

func TestCustomPrecedence(t *testing.T) {
	r := NewResolver(models.ChannelEditor, models.ChannelUI)
	out := r.Resolve(fixtureTheme(), models.ModeLight, []models.OverrideLayer{
		{Channel: models.ChannelUI, Mode: models.ModeLight, Values: map[string]string{"pr": "#aaaaaa"}},
		{Channel: models.ChannelEditor, Mode: models.ModeLight, Values: map[string]string{"pr": "#bbbbbb"}},
	})
	assert.Equal(t, "#aaaaaa", out["pr"])
	assert.Equal(t, []models.Channel{models.ChannelEditor, models.ChannelUI}, r.Precedence())
}

func TestApplyDoesNotMutateBase(t *testing.T) {
	base := map[string]string{"background": "#101010", "foreground": "#f0f0f0"}
	out := Apply(base, models.ModeDark, []models.OverrideLayer{
		{Channel: models.ChannelTerminal, Mode: models.ModeDark, Values: map[string]string{"background": "#000000", "red": "#ff0000"}},
		{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"foreground": "#ffffff"}},
	}, models.ChannelTerminal)

	assert.Equal(t, "#000000", out["background"])
	assert.Equal(t, "#ff0000", out["red"])
	assert.Equal(t, "#f0f0f0", out["foreground"])
	assert.Equal(t, "#101010", base["background"])
}

func TestNormalizeLayer(t *testing.T) {
	layer, err := NormalizeLayer(models.OverrideLayer{
		Channel: models.ChannelChat,
		Mode:    models.ModeLight,
		Values:  map[string]string{"column_bg": "#ABC", "drop": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"column_bg": "#aabbcc"}, layer.Values)

	_, err = NormalizeLayer(models.OverrideLayer{Channel: models.ChannelChat, Mode: models.ModeLight, Values: map[string]string{"x": "nah"}})
	require.ErrorIs(t, err, models.ErrUnparseableColor)

	_, err = NormalizeLayer(models.OverrideLayer{Channel: models.ChannelChat, Mode: "dim"})
	require.Error(t, err)
}

func TestBaseNormalizesRoleColors(t *testing.T) {
	theme := fixtureTheme()
	theme.Light.Bg = "#FFF"
	theme.Light.Pr = "rgb(30, 64, 175)"
	theme.Light.Ac1 = "oklch(0.577 0.215 27.3)"
	if err := models.ValidateTheme(theme); err != nil {
		t.Fatalf("fixture should validate: %v", err)
	}

	out := Resolve(theme, models.ModeLight, nil)
	for _, key := range []string{"bg", "pr", "accent_1", "status.info", "status.error", "border"} {
		value := out[key]
		canonical, err := color.Normalize(value)
		if err != nil || canonical != value {
			t.Fatalf("%s = %q is not in canonical form", key, value)
		}
	}
	if out["bg"] != "#ffffff" {
		t.Fatalf("bg = %q, want #ffffff", out["bg"])
	}
	if out["pr"] != "#1e40af" || out["accent_1"] != "#1e40af" || out["status.info"] != "#1e40af" {
		t.Fatalf("pr tokens not canonical: pr=%q accent_1=%q status.info=%q", out["pr"], out["accent_1"], out["status.info"])
	}
}

func TestPackageResolveLogsSkippedOverrides(t *testing.T) {
	var buf bytes.Buffer
	logging.InitWithWriter(logging.Config{Level: "warn", Format: "json"}, &buf)
	t.Cleanup(func() { logging.Init(logging.Config{}) })

	Resolve(fixtureTheme(), models.ModeDark, []models.OverrideLayer{
		{Channel: models.ChannelEditor, Mode: models.ModeDark, Values: map[string]string{"tx": "not-a-color"}},
	})

	if !strings.Contains(buf.String(), "skipping unparseable override") {
		t.Fatalf("expected a warning for the bad override, got %q", buf.String())
	}
}
