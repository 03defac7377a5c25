package providers

import (
	"gopkg.in/yaml.v3"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

// WarpTheme is a Warp terminal custom theme.
type WarpTheme struct {
	Name           string             `yaml:"name"`
	Accent         string             `yaml:"accent"`
	Cursor         string             `yaml:"cursor"`
	Background     string             `yaml:"background"`
	Foreground     string             `yaml:"foreground"`
	Details        string             `yaml:"details"`
	TerminalColors WarpTerminalColors `yaml:"terminal_colors"`
}

type WarpTerminalColors struct {
	Normal WarpANSI `yaml:"normal"`
	Bright WarpANSI `yaml:"bright"`
}

type WarpANSI struct {
	Black   string `yaml:"black"`
	Red     string `yaml:"red"`
	Green   string `yaml:"green"`
	Yellow  string `yaml:"yellow"`
	Blue    string `yaml:"blue"`
	Magenta string `yaml:"magenta"`
	Cyan    string `yaml:"cyan"`
	White   string `yaml:"white"`
}

func warpSet(p Palette, prefix string) WarpANSI {
	return WarpANSI(ansiSet(p, prefix))
}

// NewWarp returns the Warp provider.
func NewWarp() Provider {
	return &terminal[WarpTheme]{
		desc: Descriptor{
			ID:        "warp",
			Name:      "Warp",
			Category:  CategoryTerminal,
			Tags:      []string{"terminal", "yaml"},
			Links:     []string{"https://docs.warp.dev/appearance/custom-themes"},
			Extension: "yaml",
			MimeType:  "application/yaml",
		},
		render: func(theme models.Theme, mode models.Mode, p Palette) WarpTheme {
			details := "darker"
			if color.IsLight(p["background"]) {
				details = "lighter"
			}
			return WarpTheme{
				Name:       modeTitle(theme, mode),
				Accent:     theme.Block(mode).Pr,
				Cursor:     p["cursor"],
				Background: p["background"],
				Foreground: p["foreground"],
				Details:    details,
				TerminalColors: WarpTerminalColors{
					Normal: warpSet(p, ""),
					Bright: warpSet(p, "bright_"),
				},
			}
		},
		encode: func(_ models.Theme, _ models.Mode, v WarpTheme) ([]byte, error) {
			return yaml.Marshal(v)
		},
	}
}
