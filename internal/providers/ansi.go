package providers

import (
	"fmt"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// brightShift is the lightness step from a normal ANSI color to its bright
// variant. Light themes step darker instead.
const brightShift = 0.08

// ANSINames lists the eight base ANSI colors in terminal index order.
var ANSINames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Palette is the flat terminal palette shared by every terminal provider.
// Its keys are the override keys of the terminal channel: background,
// foreground, cursor, selection_background, selection_foreground, the eight
// ANSI names and their bright_ variants.
type Palette map[string]string

// Index returns ANSI color n (0-15).
func (p Palette) Index(n int) string {
	if n < 0 || n > 15 {
		return ""
	}
	if n < 8 {
		return p[ANSINames[n]]
	}
	return p["bright_"+ANSINames[n-8]]
}

// TerminalPalette derives the terminal palette of block.
func TerminalPalette(block models.Block, mode models.Mode) Palette {
	p := Palette{
		"background":           block.Bg,
		"foreground":           block.Tx,
		"cursor":               block.Tx,
		"selection_background": block.UI2,
		"selection_foreground": block.Tx,
		"red":                  block.Ac1,
		"green":                block.Ac2,
		"yellow":               block.Ac3,
		"blue":                 block.Pr,
		"magenta":              block.Sc,
		"cyan":                 color.Mix(block.Pr, block.Ac2, 0.5),
	}
	shift := brightShift
	if mode == models.ModeLight {
		p["black"] = block.Tx
		p["white"] = block.UI3
		shift = -brightShift
	} else {
		p["black"] = block.UI
		p["white"] = block.Tx2
	}
	for _, name := range ANSINames {
		p["bright_"+name] = color.AdjustLightness(p[name], shift)
	}
	return p
}

func terminalPalette(theme models.Theme, mode models.Mode, layers []models.OverrideLayer) Palette {
	base := TerminalPalette(theme.Block(mode), mode)
	if len(layers) == 0 {
		return base
	}
	return Palette(tokens.Apply(base, mode, layers, models.ChannelTerminal))
}

// terminal is embedded by providers that render from the terminal palette.
type terminal[T any] struct {
	desc   Descriptor
	render func(theme models.Theme, mode models.Mode, p Palette) T
	encode func(theme models.Theme, mode models.Mode, v T) ([]byte, error)
}

func (t *terminal[T]) Descriptor() Descriptor {
	return t.desc
}

func (t *terminal[T]) Channel() models.Channel {
	return models.ChannelTerminal
}

func (t *terminal[T]) Convert(theme models.Theme) (Output, error) {
	return t.ConvertWithOverrides(theme, nil)
}

func (t *terminal[T]) ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error) {
	return Dual[T]{
		Light: t.render(theme, models.ModeLight, terminalPalette(theme, models.ModeLight, layers)),
		Dark:  t.render(theme, models.ModeDark, terminalPalette(theme, models.ModeDark, layers)),
	}, nil
}

func (t *terminal[T]) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	mode := opts.mode()
	v := t.render(theme, mode, terminalPalette(theme, mode, opts.Overrides))
	content, err := t.encode(theme, mode, v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.desc.ID, err)
	}
	return newArtifact(t.desc, theme, opts, content), nil
}

func modeTitle(theme models.Theme, mode models.Mode) string {
	if mode == models.ModeLight {
		return theme.Name + " Light"
	}
	return theme.Name + " Dark"
}
