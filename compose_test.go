package synhl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleGrammar(t *testing.T, names ...string) *Grammar {
	t.Helper()
	g := NewGrammar()
	for _, name := range names {
		g.Set(name, mustPatternRule(t, name, PatternSpec{Source: `x`}))
	}
	return g
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	g := simpleGrammar(t, "a")
	reg.Register("lang", g)

	got, ok := reg.Get("lang")
	require.True(t, ok)
	require.Same(t, g, got)
	require.Equal(t, []string{"lang"}, reg.IDs())
}

func TestExtendUnknownGrammar(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Extend("missing", NewGrammar())
	require.ErrorIs(t, err, ErrUnknownGrammar)
}

func TestExtendReplacesInPlaceAndAppends(t *testing.T) {
	reg := NewRegistry()
	base := simpleGrammar(t, "comment", "string", "number")
	reg.Register("base", base)

	redef := NewGrammar()
	redef.Set("string", mustPatternRule(t, "string", PatternSpec{Source: `y`}))
	redef.Set("keyword", mustPatternRule(t, "keyword", PatternSpec{Source: `z`}))

	out, err := reg.Extend("base", redef)
	require.NoError(t, err)

	require.Equal(t, []string{"comment", "string", "number", "keyword"}, out.Names())

	// the registered base itself is untouched
	require.Equal(t, []string{"comment", "string", "number"}, base.Names())
}

func TestInsertBeforeSplicesAndDropsCollidingTargetEntry(t *testing.T) {
	reg := NewRegistry()
	base := simpleGrammar(t, "comment", "string", "number", "punctuation")
	reg.Register("lang", base)

	insert := NewGrammar()
	insert.Set("interpolation", mustPatternRule(t, "interpolation", PatternSpec{Source: `\$\{`}))
	// "number" collides with an existing target entry further along.
	insert.Set("number", mustPatternRule(t, "number", PatternSpec{Source: `[0-9]+`}))

	out, err := reg.InsertBefore("lang", "string", insert)
	require.NoError(t, err)

	// insert's entries land at "string"'s old position, in insert's own
	// order, and insert's "number" wins over (and is not duplicated at)
	// the target's original "number" position.
	require.Equal(t, []string{"comment", "interpolation", "number", "string", "punctuation"}, out.Names())

	got, _ := reg.Get("lang")
	require.Same(t, out, got)
}

func TestInsertBeforeUnknownGrammarOrRule(t *testing.T) {
	reg := NewRegistry()
	base := simpleGrammar(t, "a")
	reg.Register("lang", base)

	_, err := reg.InsertBefore("missing", "a", NewGrammar())
	require.ErrorIs(t, err, ErrUnknownGrammar)

	_, err = reg.InsertBefore("lang", "nope", NewGrammar())
	require.ErrorIs(t, err, ErrUnknownRule)
}

func TestInsertBeforeRewritesNestedReferences(t *testing.T) {
	reg := NewRegistry()
	base := simpleGrammar(t, "string", "comment")
	reg.Register("lang", base)

	// another grammar nests "lang" as an Inside grammar (e.g. markdown
	// embedding a code-fence language) - this reference must follow the
	// swap when "lang" itself is rebuilt by InsertBefore.
	host := NewGrammar()
	host.Set("codefence", mustPatternRule(t, "codefence", PatternSpec{Source: `\x60\x60\x60`, Inside: base}))
	reg.Register("host", host)

	insert := NewGrammar()
	insert.Set("keyword", mustPatternRule(t, "keyword", PatternSpec{Source: `if`}))

	out, err := reg.InsertBefore("lang", "comment", insert)
	require.NoError(t, err)

	hostRule, _ := host.Get("codefence")
	require.Same(t, out, hostRule.Patterns[0].Inside)
}

func TestInsertBeforeRewritesSelfReferentialInside(t *testing.T) {
	reg := NewRegistry()
	base := NewGrammar()
	base.Set("comment", mustPatternRule(t, "comment", PatternSpec{Source: `//.*`}))
	// "embedded" nests the very grammar it belongs to (e.g. a language
	// that can recursively embed itself, like nested template literals).
	selfRule := mustPatternRule(t, "embedded", PatternSpec{Source: `\{.*\}`, Inside: base})
	base.Set("embedded", selfRule)
	reg.Register("lang", base)

	insert := NewGrammar()
	insert.Set("keyword", mustPatternRule(t, "keyword", PatternSpec{Source: `if`}))

	out, err := reg.InsertBefore("lang", "comment", insert)
	require.NoError(t, err)

	embeddedRule, ok := out.Get("embedded")
	require.True(t, ok)
	require.Same(t, out, embeddedRule.Patterns[0].Inside)
}
