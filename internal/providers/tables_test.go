package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

func TestAlphaSuffixTableComplete(t *testing.T) {
	for _, surface := range Surfaces {
		for _, mode := range models.Modes {
			suffix := AlphaSuffix(surface, mode)
			assert.Len(t, suffix, 2, "%s/%s has no alpha suffix", surface, mode)
			assert.True(t, color.Valid("#000000"+suffix), "%s/%s suffix %q is not hex", surface, mode, suffix)
		}
	}
	assert.Equal(t, "", AlphaSuffix(Surface("unknown"), models.ModeDark))
}

func TestSelectionSuffixIsModeAware(t *testing.T) {
	assert.Equal(t, "4d", AlphaSuffix(SurfaceSelection, models.ModeLight))
	assert.Equal(t, "33", AlphaSuffix(SurfaceSelection, models.ModeDark))
	assert.Equal(t, "#1e40af4d", overlay("#1E40AF", SurfaceSelection, models.ModeLight))
}

func TestSyntaxTableCoversCategories(t *testing.T) {
	for _, category := range SyntaxCategories {
		_, ok := syntaxRoles[category]
		assert.True(t, ok, "category %s has no role", category)
	}
	assert.Equal(t, models.RoleTx3, SyntaxRole(SyntaxComment))
	assert.Equal(t, models.RoleSc, SyntaxRole(SyntaxKeyword))
}

func TestSyntaxRulesKeepCategoryOrder(t *testing.T) {
	block := fixtureTheme().Dark
	rules := syntaxRules(block, map[SyntaxCategory][]string{
		SyntaxNamespace: {"ns"},
		SyntaxComment:   {"c"},
		SyntaxString:    {"s"},
	})
	if assert.Len(t, rules, 3) {
		assert.Equal(t, SyntaxComment, rules[0].Category)
		assert.Equal(t, SyntaxString, rules[1].Category)
		assert.Equal(t, SyntaxNamespace, rules[2].Category)
		assert.Equal(t, block.Tx3, rules[0].Color)
	}
}

func TestFlatOverlaysAreOpaque(t *testing.T) {
	assert.Len(t, flatOverlay("#1e40af", SurfaceSelection, models.ModeLight), 7)
	assert.Len(t, flatBlend("#1e40af", "#100f0f", SurfaceSelection, models.ModeDark), 7)
	assert.Equal(t, "#1e40af", flatOverlay("#1e40af", Surface("none"), models.ModeLight))
}
