// Package color provides the color math used to derive theme surfaces from
// a handful of semantic colors: parsing, OkLch conversion, lightness shifts,
// perceptual mixing and alpha handling.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnparseable is returned when a string cannot be read as a color.
var ErrUnparseable = errors.New("unparseable color")

var white = colorful.Color{R: 1, G: 1, B: 1}

// Perceptual is a color in the OkLch space. L and C are in [0,1] for
// displayable colors; H is in degrees.
type Perceptual struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// Parse reads a color in one of the forms #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a) or oklch(l c h). The returned alpha is 1
// when the input carries none.
func Parse(s string) (colorful.Color, float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return colorful.Color{}, 0, fmt.Errorf("%w: empty value", ErrUnparseable)
	}

	switch {
	case strings.HasPrefix(raw, "#"):
		return parseHex(raw)
	case strings.HasPrefix(raw, "rgba("), strings.HasPrefix(raw, "rgb("):
		return parseRGBFunc(raw)
	case strings.HasPrefix(raw, "oklch("):
		return parseOklchFunc(raw)
	}

	return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, s)
}

func parseHex(raw string) (colorful.Color, float64, error) {
	alpha := 1.0
	switch len(raw) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(raw[7:9], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		alpha = float64(a) / 255.0
		raw = raw[:7]
	default:
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	c, err := colorful.Hex(raw)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return c, alpha, nil
}

func parseRGBFunc(raw string) (colorful.Color, float64, error) {
	args, ok := funcArgs(raw)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		channels[i] = v / 255.0
	}

	alpha := 1.0
	if len(args) == 4 {
		v, err := parseUnit(args[3])
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		alpha = v
	}

	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, alpha, nil
}

func parseOklchFunc(raw string) (colorful.Color, float64, error) {
	args, ok := funcArgs(raw)
	if !ok || len(args) < 3 {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	l, err := parseUnit(args[0])
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	c, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[2], "deg"), 64)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	alpha := 1.0
	if len(args) == 5 && args[3] == "/" {
		if alpha, err = parseUnit(args[4]); err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
	}

	return colorful.OkLch(l, c, h).Clamped(), alpha, nil
}

// funcArgs splits "name(a, b c / d)" into its arguments.
func funcArgs(raw string) ([]string, bool) {
	open := strings.IndexByte(raw, '(')
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return nil, false
	}
	inner := strings.ReplaceAll(raw[open+1:len(raw)-1], ",", " ")
	inner = strings.ReplaceAll(inner, "/", " / ")
	return strings.Fields(inner), true
}

// parseUnit accepts "0.5" or "50%" and returns a value in [0,1].
func parseUnit(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clamp01(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp01(v), nil
}

// Normalize returns the canonical lower-case form of a color: #rrggbb, or
// #rrggbbaa when the color is not fully opaque.
func Normalize(s string) (string, error) {
	c, alpha, err := Parse(s)
	if err != nil {
		return "", err
	}
	return format(c, alpha), nil
}

// Valid reports whether s parses as a color.
func Valid(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}

func format(c colorful.Color, alpha float64) string {
	hex := c.Clamped().Hex()
	if alpha >= 1 {
		return hex
	}
	return hex + fmt.Sprintf("%02x", uint8(clamp01(alpha)*255.0+0.5))
}

// ToPerceptual converts a color into OkLch.
func ToPerceptual(hex string) (Perceptual, error) {
	c, _, err := Parse(hex)
	if err != nil {
		return Perceptual{}, err
	}
	l, ch, h := c.OkLch()
	return Perceptual{L: l, C: ch, H: h}, nil
}

// FromPerceptual converts an OkLch color back to #rrggbb, clamping values
// that fall outside the sRGB gamut.
func FromPerceptual(p Perceptual) string {
	return colorful.OkLch(clamp01(p.L), math.Max(0, p.C), p.H).Clamped().Hex()
}

// AdjustLightness shifts the OkLch lightness of hex by delta, keeping chroma
// and hue. Unparseable input is returned unchanged.
func AdjustLightness(hex string, delta float64) string {
	c, alpha, err := Parse(hex)
	if err != nil {
		return hex
	}
	l, ch, h := c.OkLch()
	return format(colorful.OkLch(clamp01(l+delta), ch, h).Clamped(), alpha)
}

// Mix interpolates between a and b in OkLab. ratio 0 yields a and ratio 1
// yields b. When either side is unparseable, a is returned unchanged.
func Mix(a, b string, ratio float64) string {
	ca, alphaA, err := Parse(a)
	if err != nil {
		return a
	}
	cb, alphaB, err := Parse(b)
	if err != nil {
		return a
	}

	ratio = clamp01(ratio)
	switch ratio {
	case 0:
		return format(ca, alphaA)
	case 1:
		return format(cb, alphaB)
	}

	alpha := alphaA + ratio*(alphaB-alphaA)
	return format(ca.BlendOkLab(cb, ratio).Clamped(), alpha)
}

// SimulateAlpha flattens a translucent color for formats that reject alpha
// channels: the color is blended toward white with weight (1-alpha) and the
// result is always an opaque #rrggbb.
func SimulateAlpha(hex string, alpha float64) string {
	c, _, err := Parse(hex)
	if err != nil {
		return hex
	}
	alpha = clamp01(alpha)
	if alpha == 1 {
		return c.Clamped().Hex()
	}
	return c.BlendRgb(white, 1-alpha).Clamped().Hex()
}

// SuffixAlpha appends a two hex digit alpha suffix to an opaque color,
// replacing any alpha the color already has. An empty suffix yields the
// opaque color.
func SuffixAlpha(hex, suffix string) string {
	c, _, err := Parse(hex)
	if err != nil {
		return hex
	}
	base := c.Clamped().Hex()
	if suffix == "" {
		return base
	}
	return base + strings.ToLower(suffix)
}

// Luminance returns the WCAG relative luminance of hex, or 0 when it does
// not parse.
func Luminance(hex string) float64 {
	c, _, err := Parse(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// IsLight reports whether dark text reads better than light text on hex.
func IsLight(hex string) bool {
	return Luminance(hex) > 0.179
}

// Contrasting picks whichever of dark or light reads better on background.
func Contrasting(background, dark, light string) string {
	if IsLight(background) {
		return dark
	}
	return light
}

// RGB255 returns the 8-bit channels of hex.
func RGB255(hex string) (r, g, b uint8, err error) {
	c, _, err := Parse(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.Clamped().RGB255()
	return r, g, b, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
