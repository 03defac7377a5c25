package providers

import (
	"fmt"
	"strings"

	"github.com/Railly/tinte-sub002/internal/models"
)

// KittyTheme is an ordered list of kitty.conf color settings.
type KittyTheme [][2]string

// Get returns the value of key.
func (k KittyTheme) Get(key string) string {
	for _, kv := range k {
		if kv[0] == key {
			return kv[1]
		}
	}
	return ""
}

// NewKitty returns the kitty provider.
func NewKitty() Provider {
	return &terminal[KittyTheme]{
		desc: Descriptor{
			ID:        "kitty",
			Name:      "Kitty",
			Category:  CategoryTerminal,
			Tags:      []string{"terminal", "conf", "gpu"},
			Links:     []string{"https://sw.kovidgoyal.net/kitty/conf/#color-scheme"},
			Extension: "conf",
			MimeType:  "text/plain",
		},
		render: func(theme models.Theme, mode models.Mode, p Palette) KittyTheme {
			block := theme.Block(mode)
			out := KittyTheme{
				{"foreground", p["foreground"]},
				{"background", p["background"]},
				{"selection_foreground", p["selection_foreground"]},
				{"selection_background", p["selection_background"]},
				{"cursor", p["cursor"]},
				{"cursor_text_color", p["background"]},
				{"url_color", block.Pr},
				{"active_border_color", block.Pr},
				{"inactive_border_color", block.UI2},
				{"active_tab_foreground", block.Bg},
				{"active_tab_background", block.Pr},
				{"inactive_tab_foreground", block.Tx2},
				{"inactive_tab_background", block.Bg2},
			}
			for i := 0; i < 16; i++ {
				out = append(out, [2]string{fmt.Sprintf("color%d", i), p.Index(i)})
			}
			return out
		},
		encode: func(theme models.Theme, mode models.Mode, v KittyTheme) ([]byte, error) {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n", modeTitle(theme, mode))
			for _, kv := range v {
				fmt.Fprintf(&b, "%-24s %s\n", kv[0], kv[1])
			}
			return []byte(b.String()), nil
		},
	}
}
