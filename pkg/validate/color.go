package validate

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

const colorShape = "hex (#rgb, #rrggbb, #rrggbbaa), rgb(r,g,b), rgba(r,g,b,a) or a named color"

var (
	hexPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbPattern  = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	rgbaPattern = regexp.MustCompile(`^rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d*\.?\d+)\s*\)$`)
)

// Colors checks that there are exactly expectedLen colors and that each one
// parses.
func Colors(colors []string, expectedLen int) error {
	if len(colors) != expectedLen {
		return apperr.Invalid("colors", fmt.Sprintf("%d entries", expectedLen), len(colors))
	}
	for i, c := range colors {
		if _, ok := parse(c); !ok {
			return apperr.Invalid(fmt.Sprintf("colors[%d]", i), colorShape, fmt.Sprintf("%q", c))
		}
	}
	return nil
}

// Color checks a single color string.
func Color(s string) error {
	if _, ok := parse(s); !ok {
		return apperr.Invalid("color", colorShape, fmt.Sprintf("%q", s))
	}
	return nil
}

// IsColor reports whether s is a valid color string.
func IsColor(s string) bool {
	_, ok := parse(s)
	return ok
}

// ParseColor converts a color string to RGBA. Named colors are matched
// case-insensitively against the CSS color keywords; "transparent" is zero.
// Components are straight, not alpha-premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	c, ok := parse(s)
	if !ok {
		return color.RGBA{}, apperr.Invalid("color", colorShape, fmt.Sprintf("%q", s))
	}
	return c, nil
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func parse(s string) (color.RGBA, bool) {
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba("):
		return parseRGBA(s)
	case strings.HasPrefix(s, "rgb("):
		return parseRGB(s)
	}
	name := strings.ToLower(s)
	if name == "transparent" {
		return color.RGBA{}, true
	}
	c, ok := colornames.Map[name]
	return c, ok
}

func parseHex(s string) (color.RGBA, bool) {
	if !hexPattern.MatchString(s) {
		return color.RGBA{}, false
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

func parseRGB(s string) (color.RGBA, bool) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return color.RGBA{}, false
	}
	r, g, b, ok := channels(m[1:4])
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, ok
}

func parseRGBA(s string) (color.RGBA, bool) {
	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return color.RGBA{}, false
	}
	r, g, b, ok := channels(m[1:4])
	if !ok {
		return color.RGBA{}, false
	}
	a, err := strconv.ParseFloat(m[4], 64)
	if err != nil || a < 0 || a > 1 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, true
}

func channels(parts []string) (r, g, b uint8, ok bool) {
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return 0, 0, 0, false
		}
		v[i] = uint8(n)
	}
	return v[0], v[1], v[2], true
}
