package caret

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for color values that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Black is the default caret color.
var Black = colorful.Color{}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"silver":  "#c0c0c0",
}

// ParseColor parses a CSS color: a name, #rgb, #rrggbb or rgb(r, g, b).
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Black, ErrInvalidColor
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGB(s)
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

func parseRGB(s string) (colorful.Color, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
	if len(parts) != 3 {
		return Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var rgb [3]float64
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return Black, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		rgb[i] = float64(v) / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
