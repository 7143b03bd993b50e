package synhl

import (
	"fmt"
	"sync"
)

// Registry is a process-wide mapping from language id to Grammar. Some
// ids may alias the same Grammar object (e.g. "plaintext" and "txt").
// It is expected to be populated at startup and read-mostly thereafter;
// Register and InsertBefore are the only operations that mutate it
// (Extend leaves it untouched). InsertBefore replaces the target's
// entry with a new Grammar, and its back-reference pass also rewrites
// Pattern.Inside fields of other grammars in place, so concurrent
// Tokenize calls are safe against a registry that is not itself being
// composed.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*Grammar
	order  []string // insertion order, for deterministic iteration (DFS rewrite, listings)
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Grammar)}
}

// Register stores grammar under id, overwriting any previous entry
// under that id. Multiple ids may be registered with the same *Grammar
// to alias one another.
func (reg *Registry) Register(id string, g *Grammar) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.byID[id]; !ok {
		reg.order = append(reg.order, id)
	}
	reg.byID[id] = g
}

// Get returns the grammar registered under id.
func (reg *Registry) Get(id string) (*Grammar, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	g, ok := reg.byID[id]
	return g, ok
}

// IDs returns every registered language id, in registration order.
func (reg *Registry) IDs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out
}

// Extend deep-clones the grammar registered under id and applies redef
// on top of it: entries already present in the clone are replaced in
// place (their iteration position is preserved); new entries are
// appended at the end. The original grammar and the registry itself
// are left untouched - the new Grammar is returned for the caller to
// use or Register under a new id.
func (reg *Registry) Extend(id string, redef *Grammar) (*Grammar, error) {
	reg.mu.RLock()
	base, ok := reg.byID[id]
	reg.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, id)
	}

	out := base.clone()
	for _, name := range redef.order {
		out.Set(name, redef.rules[name])
	}
	return out, nil
}

// InsertBefore builds a new Grammar from root[inside] by splicing every
// entry of insert immediately before the entry named before, then
// installs it as root[inside] and rewrites every other reference to
// the old Grammar object found anywhere in root (by depth-first walk
// through nested Inside grammars) so existing references stay in sync.
//
// Any target entry whose name also appears in insert is dropped from
// its original position - insert's copy, spliced in at before, is the
// one that survives. This is how callers overwrite existing rules
// while also adding new ones in a single call.
func (reg *Registry) InsertBefore(insideID, before string, insert *Grammar) (*Grammar, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	target, ok := reg.byID[insideID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, insideID)
	}
	if !target.Has(before) {
		return nil, fmt.Errorf("%w: %q has no rule %q", ErrUnknownRule, insideID, before)
	}

	result := NewGrammar()
	for _, name := range target.order {
		if name == before {
			for _, insName := range insert.order {
				result.Set(insName, insert.rules[insName])
			}
		}
		if !insert.Has(name) {
			result.Set(name, target.rules[name])
		}
	}
	result.rest = target.rest
	result.normalized = target.normalized

	old := target
	reg.byID[insideID] = result

	visited := map[*Grammar]bool{}
	for _, id := range reg.order {
		g := reg.byID[id]
		if g == old && id != insideID {
			g = result
			reg.byID[id] = result
		}
		rewriteGrammarRefs(g, old, result, visited)
	}

	return result, nil
}

// rewriteGrammarRefs walks g's rules (and any rest grammar) looking for
// Pattern.Inside pointers equal to old, replacing them with replacement,
// and recurses into whatever it finds - including g itself the first
// time it is visited, so a grammar referenced only via nesting (never a
// registry top-level id) is still rewritten. visited guards against the
// infinite recursion a self-referential grammar would otherwise cause.
func rewriteGrammarRefs(g *Grammar, old, replacement *Grammar, visited map[*Grammar]bool) {
	if g == nil || visited[g] {
		return
	}
	visited[g] = true

	for _, name := range g.order {
		rule := g.rules[name]
		for _, p := range rule.Patterns {
			if p.Inside == old {
				p.Inside = replacement
			}
			if p.Inside != nil {
				rewriteGrammarRefs(p.Inside, old, replacement, visited)
			}
		}
	}
	if g.rest == old {
		g.rest = replacement
	}
	rewriteGrammarRefs(g.rest, old, replacement, visited)
}
