package synhl_test

import (
	"testing"

	"github.com/gophlex/synhl"
	"github.com/stretchr/testify/require"
)

func grammarFromSpecs(t *testing.T, rules map[string]synhl.PatternSpec, order []string) *synhl.Grammar {
	t.Helper()
	g := synhl.NewGrammar()
	for _, name := range order {
		spec := rules[name]
		p, err := synhl.NewPattern(spec)
		require.NoError(t, err)
		r, err := synhl.NewRule(name, p)
		require.NoError(t, err)
		g.Set(name, r)
	}
	return g
}

func flattenText(frags []synhl.Fragment) string {
	out := ""
	for _, f := range frags {
		out += f.Text()
	}
	return out
}

func TestTokenizePlainText(t *testing.T) {
	got := synhl.Tokenize("hello", synhl.NewGrammar())
	require.Len(t, got, 1)
	s, ok := got[0].Raw()
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestTokenizeEmptyInput(t *testing.T) {
	got := synhl.Tokenize("", synhl.NewGrammar())
	require.Len(t, got, 1)
	s, ok := got[0].Raw()
	require.True(t, ok)
	require.Equal(t, "", s)
}

func TestTokenizeSingleRule(t *testing.T) {
	g := grammarFromSpecs(t, map[string]synhl.PatternSpec{
		"num": {Source: `\d+`},
	}, []string{"num"})

	got := synhl.Tokenize("a1b22c", g)

	require.Len(t, got, 5)
	want := []struct {
		isToken bool
		text    string
	}{
		{false, "a"},
		{true, "1"},
		{false, "b"},
		{true, "22"},
		{false, "c"},
	}
	for i, w := range want {
		require.Equal(t, w.isToken, got[i].IsToken(), "fragment %d", i)
		require.Equal(t, w.text, got[i].Text(), "fragment %d", i)
		if w.isToken {
			require.Equal(t, "num", got[i].Token().Type)
			require.Equal(t, len(w.text), got[i].Token().Length)
		}
	}
	require.Equal(t, "a1b22c", flattenText(got))
}

func TestTokenizeLookbehind(t *testing.T) {
	g := grammarFromSpecs(t, map[string]synhl.PatternSpec{
		"kw": {Source: `(^|\s)(if|else)\b`, Lookbehind: true},
	}, []string{"kw"})

	got := synhl.Tokenize("if x else y", g)

	require.Equal(t, "if x else y", flattenText(got))

	require.True(t, got[0].IsToken())
	require.Equal(t, "if", got[0].Text())
	require.Equal(t, " x ", mustRaw(t, got[1]))
	require.True(t, got[2].IsToken())
	require.Equal(t, "else", got[2].Text())
	require.Equal(t, " y", mustRaw(t, got[3]))
}

func mustRaw(t *testing.T, f synhl.Fragment) string {
	t.Helper()
	s, ok := f.Raw()
	require.True(t, ok)
	return s
}

func TestTokenizeNestedInside(t *testing.T) {
	inside := grammarFromSpecs(t, map[string]synhl.PatternSpec{
		"esc": {Source: `\\.`},
	}, []string{"esc"})

	g := grammarFromSpecs(t, map[string]synhl.PatternSpec{
		"str": {Source: `"[^"]*"`, Inside: inside},
	}, []string{"str"})

	got := synhl.Tokenize(`"a\nb"`, g)
	require.Len(t, got, 1)
	require.True(t, got[0].IsToken())
	tok := got[0].Token()
	require.Equal(t, "str", tok.Type)

	nested, ok := tok.Content.Nested()
	require.True(t, ok)
	require.Equal(t, `"a\nb"`, flattenText(nested))

	var sawEsc bool
	for _, f := range nested {
		if f.IsToken() && f.Token().Type == "esc" {
			sawEsc = true
			require.Equal(t, `\n`, f.Text())
		}
	}
	require.True(t, sawEsc)
}

func TestTokenizeGreedyOverridesNonGreedy(t *testing.T) {
	wordP, err := synhl.NewPattern(synhl.PatternSpec{Source: `\w+`})
	require.NoError(t, err)
	wordRule, err := synhl.NewRule("word", wordP)
	require.NoError(t, err)

	commentP, err := synhl.NewPattern(synhl.PatternSpec{Source: `/\*[\s\S]*?\*/`, Greedy: true})
	require.NoError(t, err)
	commentRule, err := synhl.NewRule("comment", commentP)
	require.NoError(t, err)

	g := synhl.NewGrammar()
	g.Set("word", wordRule)
	g.Set("comment", commentRule)

	got := synhl.Tokenize("a /*b*/ c", g)
	require.Equal(t, "a /*b*/ c", flattenText(got))

	var commentCount, wordCount int
	for _, f := range got {
		if f.IsToken() {
			switch f.Token().Type {
			case "comment":
				commentCount++
				require.Equal(t, "/*b*/", f.Text())
			case "word":
				wordCount++
			}
		}
	}
	require.Equal(t, 1, commentCount)
	require.Equal(t, 2, wordCount) // "a" and "c"; "b" was subsumed by the comment
}

func TestTokenizeRuleOrderMatters(t *testing.T) {
	aP, _ := synhl.NewPattern(synhl.PatternSpec{Source: `foobar`})
	bP, _ := synhl.NewPattern(synhl.PatternSpec{Source: `foo`})
	aRule, _ := synhl.NewRule("whole", aP)
	bRule, _ := synhl.NewRule("partial", bP)

	g1 := synhl.NewGrammar()
	g1.Set("whole", aRule)
	g1.Set("partial", bRule)

	got1 := synhl.Tokenize("foobar", g1)
	require.Len(t, got1, 1)
	require.Equal(t, "whole", got1[0].Token().Type)

	g2 := synhl.NewGrammar()
	g2.Set("partial", bRule)
	g2.Set("whole", aRule)

	got2 := synhl.Tokenize("foobar", g2)
	require.Equal(t, "partial", got2[0].Token().Type)
}

func TestTokenizeRest(t *testing.T) {
	rest := synhl.NewGrammar()
	numP, _ := synhl.NewPattern(synhl.PatternSpec{Source: `\d+`})
	numRule, _ := synhl.NewRule("num", numP)
	rest.Set("num", numRule)

	g := synhl.NewGrammar()
	g.SetRest(rest)

	got := synhl.Tokenize("a1", g)
	require.Len(t, got, 2)
	require.Equal(t, "num", got[1].Token().Type)
}
