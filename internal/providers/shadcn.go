package providers

import (
	"fmt"
	"strings"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// ShadcnKeys are the CSS variables a shadcn/ui theme defines, in output order.
var ShadcnKeys = []string{
	"background", "foreground",
	"card", "card-foreground",
	"popover", "popover-foreground",
	"primary", "primary-foreground",
	"secondary", "secondary-foreground",
	"muted", "muted-foreground",
	"accent", "accent-foreground",
	"destructive", "destructive-foreground",
	"border", "input", "ring",
	"chart-1", "chart-2", "chart-3", "chart-4", "chart-5",
	"sidebar", "sidebar-foreground",
	"sidebar-primary", "sidebar-primary-foreground",
	"sidebar-accent", "sidebar-accent-foreground",
	"sidebar-border", "sidebar-ring",
}

// ShadcnVars maps shadcn variable names (without the leading dashes) to hex
// colors.
type ShadcnVars map[string]string

type shadcn struct {
	desc Descriptor
}

// NewShadcn returns the shadcn/ui CSS variables provider.
func NewShadcn() Provider {
	return &shadcn{desc: Descriptor{
		ID:        "shadcn",
		Name:      "shadcn/ui",
		Category:  CategoryOther,
		Tags:      []string{"web", "css", "tailwind"},
		Links:     []string{"https://ui.shadcn.com/docs/theming"},
		Extension: "css",
		MimeType:  "text/css",
		DualMode:  true,
	}}
}

func (s *shadcn) Descriptor() Descriptor { return s.desc }

func (s *shadcn) Channel() models.Channel { return models.ChannelUI }

func (s *shadcn) Convert(theme models.Theme) (Output, error) {
	return s.ConvertWithOverrides(theme, nil)
}

func (s *shadcn) ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error) {
	return Dual[ShadcnVars]{
		Light: shadcnVars(theme.Light, models.ModeLight, layers),
		Dark:  shadcnVars(theme.Dark, models.ModeDark, layers),
	}, nil
}

func shadcnVars(b models.Block, mode models.Mode, layers []models.OverrideLayer) ShadcnVars {
	on := func(bg string) string {
		return color.Contrasting(bg, b.Tx, b.Bg)
	}
	if mode == models.ModeDark {
		on = func(bg string) string {
			return color.Contrasting(bg, b.Bg, b.Tx)
		}
	}
	card := color.AdjustLightness(b.Bg, map[models.Mode]float64{models.ModeLight: 0.01, models.ModeDark: 0.03}[mode])

	vars := map[string]string{
		"background":                 b.Bg,
		"foreground":                 b.Tx,
		"card":                       card,
		"card-foreground":            b.Tx,
		"popover":                    card,
		"popover-foreground":         b.Tx,
		"primary":                    b.Pr,
		"primary-foreground":         on(b.Pr),
		"secondary":                  b.Bg2,
		"secondary-foreground":       b.Tx,
		"muted":                      b.Bg2,
		"muted-foreground":           b.Tx2,
		"accent":                     b.UI,
		"accent-foreground":          b.Tx,
		"destructive":                b.Ac1,
		"destructive-foreground":     on(b.Ac1),
		"border":                     b.UI,
		"input":                      b.UI2,
		"ring":                       b.Pr,
		"sidebar":                    b.Bg2,
		"sidebar-foreground":         b.Tx,
		"sidebar-primary":            b.Pr,
		"sidebar-primary-foreground": on(b.Pr),
		"sidebar-accent":             b.UI,
		"sidebar-accent-foreground":  b.Tx,
		"sidebar-border":             b.UI,
		"sidebar-ring":               b.Pr,
	}
	for i, role := range tokens.PlayerRoles[:5] {
		vars[fmt.Sprintf("chart-%d", i+1)] = b.Get(role)
	}
	return ShadcnVars(tokens.Apply(vars, mode, layers, models.ChannelUI))
}

// oklchString renders hex as a CSS oklch() value.
func oklchString(hex string) string {
	p, err := color.ToPerceptual(hex)
	if err != nil {
		return hex
	}
	if p.C < 0.0005 {
		return fmt.Sprintf("oklch(%.4f 0 0)", p.L)
	}
	return fmt.Sprintf("oklch(%.4f %.4f %.2f)", p.L, p.C, p.H)
}

// ShadcnCSS renders both modes as :root and .dark blocks.
func ShadcnCSS(out Dual[ShadcnVars]) string {
	var b strings.Builder
	writeBlock := func(selector string, vars ShadcnVars) {
		fmt.Fprintf(&b, "%s {\n", selector)
		if selector == ":root" {
			b.WriteString("  --radius: 0.625rem;\n")
		}
		for _, key := range ShadcnKeys {
			if v, ok := vars[key]; ok {
				fmt.Fprintf(&b, "  --%s: %s;\n", key, oklchString(v))
			}
		}
		b.WriteString("}\n")
	}
	writeBlock(":root", out.Light)
	b.WriteString("\n")
	writeBlock(".dark", out.Dark)
	return b.String()
}

func (s *shadcn) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	out, err := s.ConvertWithOverrides(theme, opts.Overrides)
	if err != nil {
		return nil, err
	}
	return newArtifact(s.desc, theme, opts, []byte(ShadcnCSS(out.(Dual[ShadcnVars])))), nil
}

func (s *shadcn) Validate(out Output) bool {
	dual, ok := outputAs[Dual[ShadcnVars]](out)
	if !ok {
		return false
	}
	for _, vars := range []ShadcnVars{dual.Light, dual.Dark} {
		for _, key := range ShadcnKeys {
			if vars[key] == "" {
				return false
			}
		}
	}
	return true
}
