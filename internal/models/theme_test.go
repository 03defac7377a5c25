package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlock() Block {
	return Block{
		Bg: "#fffcf0", Bg2: "#f2f0e5",
		UI: "#e6e4d9", UI2: "#dad8ce", UI3: "#cecdc3",
		Tx3: "#b7b5ac", Tx2: "#6f6e69", Tx: "#100f0f",
		Pr: "#205ea6", Sc: "#5e409d",
		Ac1: "#af3029", Ac2: "#66800b", Ac3: "#ad8301",
	}
}

func TestBlockGetWith(t *testing.T) {
	b := sampleBlock()
	for _, role := range Roles {
		assert.NotEmpty(t, b.Get(role), role)
	}

	changed := b.With(RolePr, "#000000")
	assert.Equal(t, "#000000", changed.Pr)
	assert.Equal(t, "#205ea6", b.Pr, "With must not mutate the receiver")
	assert.Equal(t, "", b.Get(Role("nope")))
	assert.Len(t, b.Map(), len(Roles))
}

func TestParseModeAndRole(t *testing.T) {
	mode, err := ParseMode(" Light ")
	require.NoError(t, err)
	assert.Equal(t, ModeLight, mode)
	_, err = ParseMode("dim")
	require.Error(t, err)

	role, err := ParseRole("AC_2")
	require.NoError(t, err)
	assert.Equal(t, RoleAc2, role)
	_, err = ParseRole("ac_4")
	require.Error(t, err)
}

func TestThemeCloneIsDeep(t *testing.T) {
	theme := Theme{Name: "Flexoki", Tags: []string{"warm"}, Light: sampleBlock(), Dark: sampleBlock()}
	clone := theme.Clone()
	clone.Tags[0] = "cold"
	assert.Equal(t, "warm", theme.Tags[0])

	updated := theme.WithBlock(ModeDark, sampleBlock().With(RoleBg, "#100f0f"))
	assert.Equal(t, "#100f0f", updated.Dark.Bg)
	assert.Equal(t, "#fffcf0", theme.Dark.Bg)
	assert.Equal(t, theme.Light, updated.Light)
}

func TestValidateBlock(t *testing.T) {
	require.NoError(t, ValidateBlock(sampleBlock()))

	err := ValidateBlock(sampleBlock().With(RoleUI2, ""))
	require.ErrorIs(t, err, ErrMissingRole)
	var roleErr *RoleError
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, RoleUI2, roleErr.Role)

	err = ValidateBlock(sampleBlock().With(RoleAc1, "reddish"))
	require.ErrorIs(t, err, ErrUnparseableColor)
}

func TestValidateThemeTagsMode(t *testing.T) {
	theme := Theme{Name: "broken", Light: sampleBlock(), Dark: sampleBlock().With(RoleTx, "#zz0000")}
	err := ValidateTheme(theme)
	require.ErrorIs(t, err, ErrUnparseableColor)

	var roleErr *RoleError
	require.True(t, errors.As(err, &roleErr))
	assert.Equal(t, ModeDark, roleErr.Mode)
	assert.Contains(t, err.Error(), "dark.tx")
}

func TestNormalizeTheme(t *testing.T) {
	theme := Theme{Name: "upper", Light: sampleBlock().With(RolePr, "#ABC"), Dark: sampleBlock().With(RoleBg, "rgb(16, 15, 15)")}
	out, err := NormalizeTheme(theme)
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", out.Light.Pr)
	assert.Equal(t, "#100f0f", out.Dark.Bg)
	assert.Equal(t, "#ABC", theme.Light.Pr)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "tokyo-night", Slugify("Tokyo Night"))
	assert.Equal(t, "custom-unsaved", Slugify("Custom (unsaved)"))
	assert.Equal(t, "theme", Slugify("!!!"))
}

func TestEventValidate(t *testing.T) {
	ev := &Event{}
	err := ev.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity_id")

	ev = &Event{Type: EventTypeThemeSaved, EntityType: EntityTypeTheme, EntityID: "abc"}
	require.NoError(t, ev.Validate())
}

func TestTokenMapKeysSorted(t *testing.T) {
	m := TokenMap{"tx": "#000000", "bg": "#ffffff", "pr": "#0000ff"}
	assert.Equal(t, []string{"bg", "pr", "tx"}, m.Keys())

	clone := m.Clone()
	clone["bg"] = "#111111"
	assert.Equal(t, "#ffffff", m["bg"])
	assert.NotNil(t, TokenMap(nil).Clone())
}
