// Package grammardef loads synhl.Grammar definitions from JSON or
// plist documents on disk, validating their shape before compiling
// patterns.
package grammardef

// Document is the on-disk shape of a grammar definition file: a name
// and an ordered list of named rules. JSON object key order is not
// reliable across decoders, so rules are an array of named entries
// rather than an object keyed by rule name.
type Document struct {
	Name  string      `json:"name" plist:"name"`
	Rules []RuleEntry `json:"rules" plist:"rules"`
}

// RuleEntry is one named rule. The common case is a single pattern,
// described directly on the entry; Patterns holds additional
// alternatives tried in order when more than one is needed. A rule
// named "rest" with Ref set is a cross-file splice point instead of a
// pattern rule: Ref names another Document's Name in the same load
// batch.
type RuleEntry struct {
	Name string `json:"name" plist:"name"`

	Pattern    string `json:"pattern" plist:"pattern"`
	Lookbehind bool   `json:"lookbehind" plist:"lookbehind"`
	Greedy     bool   `json:"greedy" plist:"greedy"`
	IgnoreCase bool   `json:"ignoreCase" plist:"ignoreCase"`
	Alias      any    `json:"alias" plist:"alias"`
	Inside     *Document `json:"inside" plist:"inside"`

	Patterns []PatternEntry `json:"patterns" plist:"patterns"`

	Ref string `json:"ref" plist:"ref"`
}

// PatternEntry is one alternative within a multi-pattern rule.
type PatternEntry struct {
	Pattern    string    `json:"pattern" plist:"pattern"`
	Lookbehind bool      `json:"lookbehind" plist:"lookbehind"`
	Greedy     bool      `json:"greedy" plist:"greedy"`
	IgnoreCase bool      `json:"ignoreCase" plist:"ignoreCase"`
	Alias      any       `json:"alias" plist:"alias"`
	Inside     *Document `json:"inside" plist:"inside"`
}

func (r RuleEntry) alternatives() []PatternEntry {
	if len(r.Patterns) > 0 {
		return r.Patterns
	}
	return []PatternEntry{{
		Pattern:    r.Pattern,
		Lookbehind: r.Lookbehind,
		Greedy:     r.Greedy,
		IgnoreCase: r.IgnoreCase,
		Alias:      r.Alias,
		Inside:     r.Inside,
	}}
}
