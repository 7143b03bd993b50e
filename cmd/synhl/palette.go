package main

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/gophlex/synhl/render"
)

// paletteFromConfig builds a render.Palette from the config file's
// palette map (token/alias name -> "#rrggbb" hex string).
func paletteFromConfig(cfg *config) *render.Palette {
	pal := render.NewPalette(render.Style{Foreground: color.White})
	for name, hex := range cfg.Palette {
		c, err := parseHexColor(hex)
		if err != nil {
			continue
		}
		pal.Set(name, render.Style{Foreground: c})
	}
	return pal
}

func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, err
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
