package providers

import (
	"strconv"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

// SyntaxCategory is a lexical token class shared by all editor formats.
type SyntaxCategory string

const (
	SyntaxComment     SyntaxCategory = "comment"
	SyntaxKeyword     SyntaxCategory = "keyword"
	SyntaxString      SyntaxCategory = "string"
	SyntaxFunction    SyntaxCategory = "function"
	SyntaxType        SyntaxCategory = "type"
	SyntaxNumber      SyntaxCategory = "number"
	SyntaxConstant    SyntaxCategory = "constant"
	SyntaxOperator    SyntaxCategory = "operator"
	SyntaxTag         SyntaxCategory = "tag"
	SyntaxAttribute   SyntaxCategory = "attribute"
	SyntaxDecorator   SyntaxCategory = "decorator"
	SyntaxVariable    SyntaxCategory = "variable"
	SyntaxProperty    SyntaxCategory = "property"
	SyntaxPunctuation SyntaxCategory = "punctuation"
	SyntaxNamespace   SyntaxCategory = "namespace"
)

// SyntaxCategories is the order syntax rules are emitted in.
var SyntaxCategories = []SyntaxCategory{
	SyntaxComment,
	SyntaxKeyword,
	SyntaxString,
	SyntaxFunction,
	SyntaxType,
	SyntaxNumber,
	SyntaxConstant,
	SyntaxOperator,
	SyntaxTag,
	SyntaxAttribute,
	SyntaxDecorator,
	SyntaxVariable,
	SyntaxProperty,
	SyntaxPunctuation,
	SyntaxNamespace,
}

var syntaxRoles = map[SyntaxCategory]models.Role{
	SyntaxComment:     models.RoleTx3,
	SyntaxKeyword:     models.RoleSc,
	SyntaxString:      models.RoleAc2,
	SyntaxFunction:    models.RolePr,
	SyntaxType:        models.RoleAc3,
	SyntaxNumber:      models.RoleAc1,
	SyntaxConstant:    models.RoleAc1,
	SyntaxOperator:    models.RoleTx2,
	SyntaxTag:         models.RolePr,
	SyntaxAttribute:   models.RoleAc3,
	SyntaxDecorator:   models.RoleAc3,
	SyntaxVariable:    models.RoleTx,
	SyntaxProperty:    models.RoleTx2,
	SyntaxPunctuation: models.RoleTx3,
	SyntaxNamespace:   models.RoleAc3,
}

// SyntaxRole returns the role that colors category.
func SyntaxRole(category SyntaxCategory) models.Role {
	if role, ok := syntaxRoles[category]; ok {
		return role
	}
	return models.RoleTx
}

// SyntaxRule is one emitted syntax color assignment.
type SyntaxRule struct {
	Category SyntaxCategory
	Patterns []string
	Color    string
}

// syntaxRules pairs each category with the format's own matchers, in the
// fixed category order. Categories without matchers are skipped.
func syntaxRules(block models.Block, patterns map[SyntaxCategory][]string) []SyntaxRule {
	rules := make([]SyntaxRule, 0, len(SyntaxCategories))
	for _, category := range SyntaxCategories {
		p, ok := patterns[category]
		if !ok || len(p) == 0 {
			continue
		}
		rules = append(rules, SyntaxRule{
			Category: category,
			Patterns: p,
			Color:    block.Get(SyntaxRole(category)),
		})
	}
	return rules
}

// Surface names a translucent overlay that gets an alpha suffix.
type Surface string

const (
	SurfaceSelection         Surface = "selection"
	SurfaceSelectionInactive Surface = "selection-inactive"
	SurfaceHover             Surface = "hover"
	SurfaceFindMatch         Surface = "find-match"
	SurfaceFindHighlight     Surface = "find-highlight"
	SurfaceWordHighlight     Surface = "word-highlight"
	SurfaceLineHighlight     Surface = "line-highlight"
	SurfaceBracketMatch      Surface = "bracket-match"
	SurfacePlayerSelection   Surface = "player-selection"
)

// Surfaces lists every overlay surface.
var Surfaces = []Surface{
	SurfaceSelection,
	SurfaceSelectionInactive,
	SurfaceHover,
	SurfaceFindMatch,
	SurfaceFindHighlight,
	SurfaceWordHighlight,
	SurfaceLineHighlight,
	SurfaceBracketMatch,
	SurfacePlayerSelection,
}

// alphaSuffixes holds hand-tuned two digit alpha values. Light backgrounds
// need stronger overlays than dark ones for the same perceived weight.
var alphaSuffixes = map[Surface]map[models.Mode]string{
	SurfaceSelection:         {models.ModeLight: "4d", models.ModeDark: "33"},
	SurfaceSelectionInactive: {models.ModeLight: "26", models.ModeDark: "1a"},
	SurfaceHover:             {models.ModeLight: "1a", models.ModeDark: "14"},
	SurfaceFindMatch:         {models.ModeLight: "66", models.ModeDark: "4d"},
	SurfaceFindHighlight:     {models.ModeLight: "40", models.ModeDark: "33"},
	SurfaceWordHighlight:     {models.ModeLight: "33", models.ModeDark: "26"},
	SurfaceLineHighlight:     {models.ModeLight: "0d", models.ModeDark: "0a"},
	SurfaceBracketMatch:      {models.ModeLight: "33", models.ModeDark: "26"},
	SurfacePlayerSelection:   {models.ModeLight: "3d", models.ModeDark: "3d"},
}

// AlphaSuffix returns the alpha suffix for surface in mode, or "" when the
// surface has none.
func AlphaSuffix(surface Surface, mode models.Mode) string {
	return alphaSuffixes[surface][mode]
}

// overlay applies the surface alpha suffix to hex.
func overlay(hex string, surface Surface, mode models.Mode) string {
	return color.SuffixAlpha(hex, AlphaSuffix(surface, mode))
}

// suffixOpacity reads the surface alpha suffix as an opacity in [0,1].
func suffixOpacity(surface Surface, mode models.Mode) (float64, bool) {
	suffix := AlphaSuffix(surface, mode)
	if suffix == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(suffix, 16, 8)
	if err != nil {
		return 0, false
	}
	return float64(v) / 255.0, true
}

// flatOverlay is overlay for formats that reject alpha: the overlay is
// flattened toward white.
func flatOverlay(hex string, surface Surface, mode models.Mode) string {
	alpha, ok := suffixOpacity(surface, mode)
	if !ok {
		return hex
	}
	return color.SimulateAlpha(hex, alpha)
}

// flatBlend flattens an overlay onto background instead of white, which
// reads better on dark backgrounds.
func flatBlend(hex, background string, surface Surface, mode models.Mode) string {
	alpha, ok := suffixOpacity(surface, mode)
	if !ok {
		return hex
	}
	return color.Mix(background, hex, alpha)
}
