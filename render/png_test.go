package render

import (
	"testing"

	"github.com/gophlex/synhl"
	"github.com/stretchr/testify/require"
)

func TestPNGProducesNonEmptyImage(t *testing.T) {
	pal := NewPalette(Style{})
	frags := []synhl.Fragment{
		synhl.RawFragment("ab\n"),
		synhl.TokenFragment(&synhl.Token{Type: "kw", Content: synhl.PlainContent("cd"), Length: 2}),
	}
	img, err := PNG(frags, pal, 200)
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dx(), 0)
	require.Greater(t, img.Bounds().Dy(), 0)
}

func TestWrapToColsBreaksOnNewlineAndWidth(t *testing.T) {
	cells := []styledRune{{r: 'a'}, {r: 'b'}, {r: 'c'}, {r: 'd'}}
	lines := wrapToCols(cells, 2)
	require.Len(t, lines, 2)
	require.Len(t, lines[0], 2)
	require.Len(t, lines[1], 2)
}

func TestWrapToColsRespectsExplicitNewline(t *testing.T) {
	cells := []styledRune{{r: 'a'}, {r: '\n'}, {r: 'b'}}
	lines := wrapToCols(cells, 10)
	require.Len(t, lines, 2)
	require.Equal(t, 'a', lines[0][0].r)
	require.Equal(t, 'b', lines[1][0].r)
}
