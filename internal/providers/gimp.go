package providers

import (
	"fmt"
	"strings"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

// GimpPalette is a GIMP .gpl palette.
type GimpPalette struct {
	Name    string
	Columns int
	Entries []GimpEntry
}

type GimpEntry struct {
	R, G, B uint8
	Name    string
}

// String renders the palette in .gpl format.
func (p GimpPalette) String() string {
	var b strings.Builder
	b.WriteString("GIMP Palette\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Columns: %d\n", p.Columns)
	b.WriteString("#\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "%3d %3d %3d\t%s\n", e.R, e.G, e.B, e.Name)
	}
	return b.String()
}

type gimp struct {
	desc Descriptor
}

// NewGimp returns the GIMP palette provider.
func NewGimp() Provider {
	return &gimp{desc: Descriptor{
		ID:        "gimp",
		Name:      "GIMP Palette",
		Category:  CategoryDesignTool,
		Tags:      []string{"design", "palette", "inkscape", "krita"},
		Links:     []string{"https://docs.gimp.org/en/gimp-concepts-palettes.html"},
		Extension: "gpl",
		MimeType:  "text/plain",
		DualMode:  true,
	}}
}

func (g *gimp) Descriptor() Descriptor { return g.desc }

func (g *gimp) Convert(theme models.Theme) (Output, error) {
	p := GimpPalette{Name: theme.Name, Columns: len(models.Roles)}
	for _, mode := range models.Modes {
		block := theme.Block(mode)
		for _, role := range models.Roles {
			r, gr, bl, err := color.RGB255(block.Get(role))
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", mode, role, err)
			}
			p.Entries = append(p.Entries, GimpEntry{R: r, G: gr, B: bl, Name: fmt.Sprintf("%s %s", mode, role)})
		}
	}
	return p, nil
}

func (g *gimp) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	out, err := g.Convert(theme)
	if err != nil {
		return nil, err
	}
	return newArtifact(g.desc, theme, opts, []byte(out.(GimpPalette).String())), nil
}

func (g *gimp) Validate(out Output) bool {
	p, ok := outputAs[GimpPalette](out)
	return ok && len(p.Entries) == len(models.Roles)*len(models.Modes)
}
