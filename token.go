package synhl

import "strings"

// Token is a classified span of the original input. Its Length is fixed
// at construction and never mutated afterwards; its Content is either a
// nested sequence, tokenized when the token is built (when the rule
// that produced it carried an Inside grammar), or the plain matched
// substring.
type Token struct {
	Type    string
	Content TokenContent
	Alias   []string
	Length  int
}

// TokenContent is either a plain string or a nested ordered sequence of
// Fragments.
type TokenContent struct {
	plain  string
	nested []Fragment
	isNest bool
}

// PlainContent wraps a matched substring with no Inside grammar.
func PlainContent(s string) TokenContent {
	return TokenContent{plain: s}
}

// NestedContent wraps the result of recursively tokenizing a matched
// substring against an Inside grammar.
func NestedContent(frags []Fragment) TokenContent {
	return TokenContent{nested: frags, isNest: true}
}

// Nested reports whether this content is a nested fragment sequence.
func (c TokenContent) Nested() ([]Fragment, bool) {
	if c.isNest {
		return c.nested, true
	}
	return nil, false
}

// Text reconstructs the original matched substring, recursing through
// nested content. The fragment-list invariant (concatenation of leaf
// projections equals the input) guarantees this equals the text the
// token was built from.
func (c TokenContent) Text() string {
	if !c.isNest {
		return c.plain
	}
	var b strings.Builder
	for _, f := range c.nested {
		b.WriteString(f.Text())
	}
	return b.String()
}

// HasAlias reports whether name is one of the token's alias labels.
func (t *Token) HasAlias(name string) bool {
	for _, a := range t.Alias {
		if a == name {
			return true
		}
	}
	return false
}

// Fragment is a tagged union of either a raw, unclassified string slice
// or a classified *Token - a node value in the tokenizer's work list and
// a leaf (or subtree root) of the final token tree returned by
// Tokenize.
type Fragment struct {
	raw   string
	token *Token
}

// RawFragment wraps an unclassified string.
func RawFragment(s string) Fragment {
	return Fragment{raw: s}
}

// TokenFragment wraps a classified token.
func TokenFragment(t *Token) Fragment {
	return Fragment{token: t}
}

// IsToken reports whether this fragment is a classified Token rather
// than raw text.
func (f Fragment) IsToken() bool {
	return f.token != nil
}

// Token returns the wrapped *Token, or nil if this fragment is raw text.
func (f Fragment) Token() *Token {
	return f.token
}

// Raw returns the wrapped string and true, or ("", false) if this
// fragment is a Token.
func (f Fragment) Raw() (string, bool) {
	if f.token != nil {
		return "", false
	}
	return f.raw, true
}

// Len is the length, in bytes of the original text, this fragment
// projects onto.
func (f Fragment) Len() int {
	if f.token != nil {
		return f.token.Length
	}
	return len(f.raw)
}

// Text reconstructs the slice of original input this fragment covers.
func (f Fragment) Text() string {
	if f.token != nil {
		return f.token.Content.Text()
	}
	return f.raw
}

// normalizeAlias accepts either a bare string or a list of strings for
// a rule's alias and normalizes it to []string, so the rest of the
// package never has to branch on which shape a caller supplied.
func normalizeAlias(alias any) []string {
	switch v := alias.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}
