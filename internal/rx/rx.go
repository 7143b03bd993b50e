// Package rx wraps dlclark/regexp2, the engine the tokenizer matches
// through. The engine needs two things the standard library's regexp
// (RE2) cannot give it: a real lookbehind assertion, and "try this
// pattern starting at or after offset N" semantics that can be called
// repeatedly against a growing document. regexp2 runs a backtracking
// engine (.NET regex flavor) and gives us both, at the usual cost of no
// linear-time guarantee - a pathological pattern can block the caller.
package rx

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Pattern wraps a compiled regexp2 expression plus the metadata the
// tokenizer's matching contract needs (lookbehind, greedy).
type Pattern struct {
	Source     string
	Lookbehind bool
	Greedy     bool

	re *regexp2.Regexp

	// greedyReady records that EnsureGreedyReady has run for this
	// pattern. regexp2 carries no JS-style mutable lastIndex, so there
	// is nothing to actually flip; the field just makes the one-time
	// setup idempotent and inspectable.
	greedyReady bool
}

// Compile builds a Pattern from a source regex. ignoreCase mirrors the
// grammar's case-insensitivity flag, if any.
func Compile(source string, ignoreCase bool) (*Pattern, error) {
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, fmt.Errorf("rx: compile %q: %w", source, err)
	}
	return &Pattern{Source: source, re: re}, nil
}

// EnsureGreedyReady marks a greedy pattern as set up for repeated
// re-anchored matching. Calling it more than once is a no-op.
func (p *Pattern) EnsureGreedyReady() {
	p.greedyReady = true
}

// GreedyReady reports whether EnsureGreedyReady has run.
func (p *Pattern) GreedyReady() bool {
	return p.greedyReady
}

// Match is the result of a successful anchored match. Start and End are
// byte offsets into the original text, regardless of the regex engine's
// own indexing.
type Match struct {
	// Start is the adjusted start: for a lookbehind pattern, this is
	// shifted past the captured lookbehind group.
	Start int
	// End is the absolute end of the full match (lookbehind group
	// included), never shifted.
	End int
	// Text is text[Start:End] - the lookbehind-trimmed matched
	// substring.
	Text string
}

func (m *Match) Len() int {
	return m.End - m.Start
}

// MatchAt anchors the search at offset within text: like a global regex
// whose lastIndex has been set to offset, it finds the next match at or
// after offset, not necessarily one that begins exactly there - callers
// that need the match to start exactly at a position (the non-greedy,
// per-fragment case, where offset is always 0 and the fragment itself
// supplies the boundary) get that naturally because there is nothing
// before offset left to match against. It returns (nil, nil) on no
// match anywhere at or after offset.
//
// offset is a byte offset, matching how callers track position (every
// Fragment's length is a byte count). regexp2 indexes matches by rune,
// not byte, so MatchAt converts text to runes once per call and maps
// the match back to byte offsets before returning - this keeps every
// index this package hands back in the same units callers already use,
// and keeps text[Start:End] a valid, rune-boundary-respecting slice
// even when text contains multi-byte characters.
func (p *Pattern) MatchAt(text string, offset int) (*Match, error) {
	runes, byteAt := runeByteOffsets(text)
	startRune := byteOffsetToRuneIndex(byteAt, offset)

	m, err := p.re.FindRunesMatchStartingAt(runes, startRune)
	if err != nil {
		return nil, fmt.Errorf("rx: match %q at %d: %w", p.Source, offset, err)
	}
	if m == nil {
		return nil, nil
	}

	start := byteAt[m.Index]
	end := byteAt[m.Index+m.Length]
	matched := text[start:end]

	if p.Lookbehind {
		if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 && g.Length > 0 {
			shift := byteAt[m.Index+g.Length] - byteAt[m.Index]
			start += shift
			matched = matched[shift:]
		}
	}

	return &Match{Start: start, End: end, Text: matched}, nil
}

// runeByteOffsets decodes text once into its runes plus a parallel
// table mapping each rune index (and one past the last, for an exact
// end-of-text match) to its byte offset.
func runeByteOffsets(text string) ([]rune, []int) {
	runes := make([]rune, 0, len(text))
	byteAt := make([]int, 0, len(text)+1)

	b := 0
	for _, r := range text {
		byteAt = append(byteAt, b)
		runes = append(runes, r)
		b += utf8.RuneLen(r)
	}
	byteAt = append(byteAt, b)

	return runes, byteAt
}

// byteOffsetToRuneIndex finds the rune index whose byte offset equals
// byteOffset. Callers only ever pass offsets that fall on a rune
// boundary (accumulated fragment lengths), so this always lands on an
// exact match; it falls back to the nearest rune at or before the
// requested offset if it doesn't.
func byteOffsetToRuneIndex(byteAt []int, byteOffset int) int {
	i := sort.Search(len(byteAt), func(i int) bool { return byteAt[i] >= byteOffset })
	if i == len(byteAt) || byteAt[i] != byteOffset {
		if i > 0 {
			i--
		}
	}
	return i
}
