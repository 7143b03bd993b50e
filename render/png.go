package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gophlex/synhl"
)

const tabWidth = 4

var face = basicfont.Face7x13

// PNG rasterizes frags into an RGBA image using a fixed-width bitmap
// font, wrapping lines to fit within width pixels and on '\n' runs. It
// walks nested token content exactly as ANSI does, so an inner token
// (an escape sequence inside a string, say) is drawn in its own resolved
// Style (or the palette Default when none resolves), while raw text
// nested inside a token keeps the enclosing token's Style.
func PNG(frags []synhl.Fragment, pal *Palette, width int) (image.Image, error) {
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	advance, _ := face.GlyphAdvance(' ')
	cellWidth := advance.Ceil()
	if cellWidth == 0 {
		cellWidth = 7
	}

	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}

	var cells []styledRune
	walkRunes(frags, pal, pal.Default, &cells)

	lines := wrapToCols(cells, cols)
	height := len(lines) * lineHeight
	if height <= 0 {
		height = lineHeight
	}
	if width <= 0 {
		width = cols * cellWidth
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for ln, line := range lines {
		col := 0
		for _, cr := range line {
			if cr.r == '\t' {
				col += tabWidth
				continue
			}
			fg := cr.style.Foreground
			if fg == nil {
				fg = color.White
			}
			dot := fixed.Point26_6{
				X: fixed.I(col * cellWidth),
				Y: fixed.I((ln+1)*lineHeight - metrics.Descent.Ceil()),
			}
			d := font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face, Dot: dot}
			d.DrawString(string(cr.r))
			col++
		}
	}

	return img, nil
}

type styledRune struct {
	r     rune
	style Style
}

// walkRunes flattens frags into styled runes, threading parentStyle
// down as the fallback for raw (unclassified) text nested inside a
// token.
func walkRunes(frags []synhl.Fragment, pal *Palette, parentStyle Style, out *[]styledRune) {
	for _, f := range frags {
		if !f.IsToken() {
			s, _ := f.Raw()
			for _, r := range s {
				*out = append(*out, styledRune{r: r, style: parentStyle})
			}
			continue
		}

		tok := f.Token()
		style := pal.ResolveNames(append([]string{tok.Type}, tok.Alias...)...)
		if nested, ok := tok.Content.Nested(); ok {
			walkRunes(nested, pal, style, out)
			continue
		}

		for _, r := range tok.Content.Text() {
			*out = append(*out, styledRune{r: r, style: style})
		}
	}
}

// wrapToCols splits cells into lines, breaking on '\n' and again
// whenever a line would exceed cols columns.
func wrapToCols(cells []styledRune, cols int) [][]styledRune {
	var lines [][]styledRune
	var cur []styledRune
	col := 0
	for _, cr := range cells {
		if cr.r == '\n' {
			lines = append(lines, cur)
			cur = nil
			col = 0
			continue
		}
		width := 1
		if cr.r == '\t' {
			width = tabWidth
		}
		if col+width > cols && len(cur) > 0 {
			lines = append(lines, cur)
			cur = nil
			col = 0
		}
		cur = append(cur, cr)
		col += width
	}
	lines = append(lines, cur)
	return lines
}
