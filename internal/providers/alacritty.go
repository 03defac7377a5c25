package providers

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/Railly/tinte-sub002/internal/models"
)

// AlacrittyTheme is the [colors] section of an alacritty.toml.
type AlacrittyTheme struct {
	Colors AlacrittyColors `toml:"colors"`
}

type AlacrittyColors struct {
	Primary   AlacrittyPrimary `toml:"primary"`
	Cursor    AlacrittyPair    `toml:"cursor"`
	Selection AlacrittyPair    `toml:"selection"`
	Normal    AlacrittyANSI    `toml:"normal"`
	Bright    AlacrittyANSI    `toml:"bright"`
}

type AlacrittyPrimary struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
}

type AlacrittyPair struct {
	Text       string `toml:"text"`
	Background string `toml:"background,omitempty"`
	Cursor     string `toml:"cursor,omitempty"`
}

type AlacrittyANSI struct {
	Black   string `toml:"black"`
	Red     string `toml:"red"`
	Green   string `toml:"green"`
	Yellow  string `toml:"yellow"`
	Blue    string `toml:"blue"`
	Magenta string `toml:"magenta"`
	Cyan    string `toml:"cyan"`
	White   string `toml:"white"`
}

func ansiSet(p Palette, prefix string) AlacrittyANSI {
	return AlacrittyANSI{
		Black:   p[prefix+"black"],
		Red:     p[prefix+"red"],
		Green:   p[prefix+"green"],
		Yellow:  p[prefix+"yellow"],
		Blue:    p[prefix+"blue"],
		Magenta: p[prefix+"magenta"],
		Cyan:    p[prefix+"cyan"],
		White:   p[prefix+"white"],
	}
}

// NewAlacritty returns the Alacritty provider.
func NewAlacritty() Provider {
	return &terminal[AlacrittyTheme]{
		desc: Descriptor{
			ID:        "alacritty",
			Name:      "Alacritty",
			Category:  CategoryTerminal,
			Tags:      []string{"terminal", "toml", "gpu"},
			Links:     []string{"https://alacritty.org/config-alacritty.html"},
			Extension: "toml",
			MimeType:  "application/toml",
		},
		render: func(_ models.Theme, _ models.Mode, p Palette) AlacrittyTheme {
			return AlacrittyTheme{Colors: AlacrittyColors{
				Primary:   AlacrittyPrimary{Background: p["background"], Foreground: p["foreground"]},
				Cursor:    AlacrittyPair{Text: p["background"], Cursor: p["cursor"]},
				Selection: AlacrittyPair{Text: p["selection_foreground"], Background: p["selection_background"]},
				Normal:    ansiSet(p, ""),
				Bright:    ansiSet(p, "bright_"),
			}}
		},
		encode: func(theme models.Theme, mode models.Mode, v AlacrittyTheme) ([]byte, error) {
			var buf bytes.Buffer
			buf.WriteString("# " + modeTitle(theme, mode) + "\n\n")
			if err := toml.NewEncoder(&buf).Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	}
}
