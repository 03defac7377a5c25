package providers

import (
	"github.com/Railly/tinte-sub002/internal/models"
)

// WindowsTerminalScheme is one entry of the Windows Terminal "schemes" list.
type WindowsTerminalScheme struct {
	Name                string `json:"name"`
	Background          string `json:"background"`
	Foreground          string `json:"foreground"`
	CursorColor         string `json:"cursorColor"`
	SelectionBackground string `json:"selectionBackground"`
	Black               string `json:"black"`
	Red                 string `json:"red"`
	Green               string `json:"green"`
	Yellow              string `json:"yellow"`
	Blue                string `json:"blue"`
	Purple              string `json:"purple"`
	Cyan                string `json:"cyan"`
	White               string `json:"white"`
	BrightBlack         string `json:"brightBlack"`
	BrightRed           string `json:"brightRed"`
	BrightGreen         string `json:"brightGreen"`
	BrightYellow        string `json:"brightYellow"`
	BrightBlue          string `json:"brightBlue"`
	BrightPurple        string `json:"brightPurple"`
	BrightCyan          string `json:"brightCyan"`
	BrightWhite         string `json:"brightWhite"`
}

// NewWindowsTerminal returns the Windows Terminal provider.
func NewWindowsTerminal() Provider {
	return &terminal[WindowsTerminalScheme]{
		desc: Descriptor{
			ID:        "windows-terminal",
			Name:      "Windows Terminal",
			Category:  CategoryTerminal,
			Tags:      []string{"terminal", "json", "windows"},
			Links:     []string{"https://learn.microsoft.com/en-us/windows/terminal/customize-settings/color-schemes"},
			Extension: "json",
			MimeType:  "application/json",
		},
		render: func(theme models.Theme, mode models.Mode, p Palette) WindowsTerminalScheme {
			return WindowsTerminalScheme{
				Name:                modeTitle(theme, mode),
				Background:          p["background"],
				Foreground:          p["foreground"],
				CursorColor:         p["cursor"],
				SelectionBackground: p["selection_background"],
				Black:               p["black"],
				Red:                 p["red"],
				Green:               p["green"],
				Yellow:              p["yellow"],
				Blue:                p["blue"],
				Purple:              p["magenta"],
				Cyan:                p["cyan"],
				White:               p["white"],
				BrightBlack:         p["bright_black"],
				BrightRed:           p["bright_red"],
				BrightGreen:         p["bright_green"],
				BrightYellow:        p["bright_yellow"],
				BrightBlue:          p["bright_blue"],
				BrightPurple:        p["bright_magenta"],
				BrightCyan:          p["bright_cyan"],
				BrightWhite:         p["bright_white"],
			}
		},
		encode: func(_ models.Theme, _ models.Mode, v WindowsTerminalScheme) ([]byte, error) {
			return marshalJSON(v)
		},
	}
}
