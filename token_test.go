package synhl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFragmentRawVsToken(t *testing.T) {
	raw := RawFragment("abc")
	require.False(t, raw.IsToken())
	s, ok := raw.Raw()
	require.True(t, ok)
	require.Equal(t, "abc", s)
	require.Equal(t, 3, raw.Len())

	frag := TokenFragment(&Token{Type: "kw", Content: PlainContent("if"), Length: 2})
	require.True(t, frag.IsToken())
	_, ok = frag.Raw()
	require.False(t, ok)
	require.Equal(t, 2, frag.Len())
	require.Equal(t, "if", frag.Text())
}

func TestTokenContentTextRecursesThroughNesting(t *testing.T) {
	inner := []Fragment{
		RawFragment("a"),
		TokenFragment(&Token{Type: "esc", Content: PlainContent("\\n"), Length: 2}),
	}
	outer := &Token{Type: "str", Content: NestedContent(inner), Length: 3}
	require.Equal(t, "a\\n", outer.Content.Text())

	nested, ok := outer.Content.Nested()
	require.True(t, ok)
	require.Len(t, nested, 2)
}

func TestHasAlias(t *testing.T) {
	tok := &Token{Type: "kw", Alias: []string{"control", "important"}}
	require.True(t, tok.HasAlias("control"))
	require.False(t, tok.HasAlias("other"))
}
