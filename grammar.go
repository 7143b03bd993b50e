package synhl

import (
	"fmt"

	"github.com/gophlex/synhl/internal/rx"
)

// Pattern is one alternative way a Rule can match, carrying the
// compiled regex plus its matching metadata: lookbehind, greedy, a
// nested Inside grammar, and alias labels.
type Pattern struct {
	rule *rx.Pattern

	// Inside, if non-nil, is used to recursively tokenize the matched
	// substring.
	Inside *Grammar

	// Alias holds secondary classification labels attached to the
	// emitted Token.
	Alias []string
}

// PatternSpec is the constructor-time description of a Pattern; bare
// regex source is shorthand for a Pattern with every option at its
// default.
type PatternSpec struct {
	Source     string
	IgnoreCase bool
	Lookbehind bool
	Greedy     bool
	Inside     *Grammar
	Alias      any // string, []string, or nil
}

// NewPattern compiles spec into a Pattern.
func NewPattern(spec PatternSpec) (*Pattern, error) {
	compiled, err := rx.Compile(spec.Source, spec.IgnoreCase)
	if err != nil {
		return nil, err
	}
	compiled.Lookbehind = spec.Lookbehind
	compiled.Greedy = spec.Greedy
	return &Pattern{
		rule:   compiled,
		Inside: spec.Inside,
		Alias:  normalizeAlias(spec.Alias),
	}, nil
}

// SimplePattern is shorthand for NewPattern(PatternSpec{Source: source}).
func SimplePattern(source string) (*Pattern, error) {
	return NewPattern(PatternSpec{Source: source})
}

func (p *Pattern) Lookbehind() bool { return p.rule.Lookbehind }
func (p *Pattern) Greedy() bool     { return p.rule.Greedy }
func (p *Pattern) Source() string   { return p.rule.Source }

func (p *Pattern) clone() *Pattern {
	cp := *p
	return &cp
}

// Rule is a named, non-empty ordered list of alternative Patterns.
type Rule struct {
	Name     string
	Patterns []*Pattern
}

// NewRule builds a Rule from one or more patterns; a rule with no
// patterns at all can never match anything, so at least one is
// required.
func NewRule(name string, patterns ...*Pattern) (*Rule, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("synhl: rule %q must have at least one pattern", name)
	}
	return &Rule{Name: name, Patterns: patterns}, nil
}

func (r *Rule) clone() *Rule {
	patterns := make([]*Pattern, len(r.Patterns))
	for i, p := range r.Patterns {
		patterns[i] = p.clone()
	}
	return &Rule{Name: r.Name, Patterns: patterns}
}

// Grammar is an ordered, named collection of Rules. Order is
// semantically significant: the tokenizer tries earlier rules first at
// every position. Grammars are read-mostly after construction; Extend
// and InsertBefore always return a new Grammar rather than changing an
// existing one's rule set, though InsertBefore repoints Pattern.Inside
// references to the grammar it replaced.
type Grammar struct {
	order []string
	rules map[string]*Rule

	// rest is an embedded grammar awaiting one-time inlining, set via
	// the reserved "rest" key.
	rest *Grammar

	normalized bool
}

// NewGrammar returns an empty, ordered Grammar.
func NewGrammar() *Grammar {
	return &Grammar{rules: make(map[string]*Rule)}
}

// Set adds or replaces a rule. If name already exists its position is
// preserved (in-place replacement); otherwise the rule is appended to
// the end. This is the ordered-map semantics both Extend and
// InsertBefore are built on.
func (g *Grammar) Set(name string, rule *Rule) {
	if _, ok := g.rules[name]; !ok {
		g.order = append(g.order, name)
	}
	g.rules[name] = rule
}

// Get returns the named rule, if present.
func (g *Grammar) Get(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// Has reports whether name is a rule in this grammar.
func (g *Grammar) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Delete removes a rule, preserving the relative order of the rest.
func (g *Grammar) Delete(name string) {
	if _, ok := g.rules[name]; !ok {
		return
	}
	delete(g.rules, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Names returns the rule names in declared order. The returned slice is
// a copy; mutating it does not affect the grammar.
func (g *Grammar) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of rules currently in the grammar.
func (g *Grammar) Len() int {
	return len(g.order)
}

// SetRest attaches an embedded grammar whose entries will be inlined
// into this one, once, the first time it is tokenized against.
func (g *Grammar) SetRest(rest *Grammar) {
	g.rest = rest
}

// clone deep-copies the grammar's own rule/pattern structure. Nested
// Inside grammars are reference-shared, not copied - grammars may
// legitimately share sub-grammars with other languages, so only the
// top-level container is duplicated by Extend.
func (g *Grammar) clone() *Grammar {
	cp := NewGrammar()
	cp.order = append([]string(nil), g.order...)
	for name, r := range g.rules {
		cp.rules[name] = r.clone()
	}
	cp.rest = g.rest
	cp.normalized = g.normalized
	return cp
}

// ensureNormalized inlines a pending rest grammar into g exactly once.
// It is idempotent and safe to call on every Tokenize entry.
func (g *Grammar) ensureNormalized() {
	if g.normalized {
		return
	}
	g.normalized = true
	if g.rest == nil {
		return
	}
	for _, name := range g.rest.order {
		g.Set(name, g.rest.rules[name])
	}
	g.rest = nil
}
