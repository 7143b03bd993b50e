package synhl

// cause identifies the (rule name, pattern index) that triggered a
// rematch, guarding against a rule re-entering its own expansion.
type cause struct {
	name  string
	index int
}

// rematch carries the state a nested matchGrammar call needs when it is
// re-scanning a region whose tokens were just invalidated by a greedy
// match: which (rule, pattern) must not run again, and how far (reach)
// the rescan must cover. reach only ever grows within a single
// matchGrammar invocation.
type rematch struct {
	cause cause
	reach int
}

// Tokenize converts text into an ordered sequence of Fragments
// (strings and Tokens) per grammar. It never fails: a grammar that
// cannot classify anything simply yields the whole input as one raw
// Fragment, and an empty input yields a single empty-string Fragment.
func Tokenize(text string, grammar *Grammar) []Fragment {
	if grammar == nil {
		grammar = NewGrammar()
	}
	grammar.ensureNormalized()

	list := newFragList(text)
	matchGrammar(text, list, grammar, list.head, 0, nil)
	return list.toArray()
}

// matchGrammar is the engine's central routine: for each rule, for each
// alternative pattern, walk the fragment list from startNode, matching
// and splicing. It mutates list in place.
func matchGrammar(text string, list *fragList, grammar *Grammar, startNode *fragNode, startPos int, rm *rematch) {
	for _, name := range grammar.order {
		rule, ok := grammar.rules[name]
		if !ok {
			continue
		}
		for j, pattern := range rule.Patterns {
			// The rule/pattern that caused this rescan never runs again
			// within it.
			if rm != nil && rm.cause.name == name && rm.cause.index == j {
				return
			}

			// Step 2: greedy preflight, a one-time idempotent rewrite.
			if pattern.Greedy() {
				pattern.rule.EnsureGreedyReady()
			}

			runPattern(text, list, grammar, name, j, pattern, startNode, startPos, rm)
		}
	}
}

// runPattern walks the fragment list from startNode.next, attempting a
// single (rule, pattern) at every position, splicing a Token on every
// match. The loop's post-statement (pos/node advance) intentionally
// reads node *after* the body has run, so that a splice which replaced
// node with the freshly-inserted Token resumes the walk immediately
// after it.
func runPattern(text string, list *fragList, grammar *Grammar, ruleName string, patIdx int, pattern *Pattern, startNode *fragNode, startPos int, rm *rematch) {
	for node, pos := startNode.next, startPos; node != list.tail; pos, node = pos+node.frag.Len(), node.next {
		// Rematch reach cutoff: this region was already covered by a
		// prior splice in the same rescan.
		if rm != nil && pos >= rm.reach {
			return
		}
		// Safety valve: the list has grown past the length of the input,
		// which should never happen. Bail out rather than spin.
		if list.length > len(text) {
			if onListInvariantViolation != nil {
				onListInvariantViolation(ErrListInvariant)
			}
			return
		}
		if node.frag.IsToken() {
			continue
		}

		str, _ := node.frag.Raw()
		removeCount := 1
		var matchFrom int
		var matchedText string

		if pattern.Greedy() {
			mm, err := pattern.rule.MatchAt(text, pos)
			if err != nil || mm == nil || mm.Start >= len(text) {
				return
			}
			from, to := mm.Start, mm.End

			p := pos + node.frag.Len()
			for from >= p && node.next != list.tail {
				node = node.next
				p += node.frag.Len()
			}
			p -= node.frag.Len()
			pos = p

			if node.frag.IsToken() {
				continue
			}

			p = pos
			for k := node; k != list.tail; k = k.next {
				_, isRaw := k.frag.Raw()
				if !(p < to || isRaw) {
					break
				}
				removeCount++
				p += k.frag.Len()
			}
			removeCount--
			str = text[pos:p]
			matchFrom = from - pos
			matchedText = mm.Text
		} else {
			mm, err := pattern.rule.MatchAt(str, 0)
			if err != nil || mm == nil {
				continue
			}
			matchFrom = mm.Start
			matchedText = mm.Text
		}

		reach := pos + len(str)
		if rm != nil && reach > rm.reach {
			rm.reach = reach
		}

		before := str[:matchFrom]
		after := str[matchFrom+len(matchedText):]

		removeFrom := node.prev
		if before != "" {
			f := RawFragment(before)
			removeFrom = list.addAfter(removeFrom, &f)
			pos += len(before)
		}

		list.removeRange(removeFrom, removeCount)

		var content TokenContent
		if pattern.Inside != nil {
			content = NestedContent(Tokenize(matchedText, pattern.Inside))
		} else {
			content = PlainContent(matchedText)
		}
		tok := &Token{Type: ruleName, Content: content, Alias: pattern.Alias, Length: len(matchedText)}
		tf := TokenFragment(tok)
		node = list.addAfter(removeFrom, &tf)

		if after != "" {
			af := RawFragment(after)
			list.addAfter(node, &af)
		}

		if removeCount > 1 {
			nested := &rematch{cause: cause{name: ruleName, index: patIdx}, reach: reach}
			matchGrammar(text, list, grammar, node.prev, pos, nested)
			if rm != nil && nested.reach > rm.reach {
				rm.reach = nested.reach
			}
		}
	}
}
