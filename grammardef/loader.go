package grammardef

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"github.com/gophlex/synhl"
)

// Loader accumulates Documents across a directory and compiles them
// into a synhl.Registry in one pass, so "rest"/"ref" entries can be
// resolved against sibling files in the same load batch.
type Loader struct {
	docs  map[string]*Document
	order []string
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{docs: make(map[string]*Document)}
}

func decodeFile(pathname string) (*Document, error) {
	content, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}

	var doc Document
	if strings.HasSuffix(pathname, ".json") {
		if err := ValidateJSON(content); err != nil {
			return nil, fmt.Errorf("%s: %w", pathname, err)
		}
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", pathname, err)
		}
	} else {
		if _, err := plist.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", pathname, err)
		}
	}
	return &doc, nil
}

// LoadDir walks dir (non-recursively) for *.synhl.json and
// *.synhl.plist files, decodes each, and compiles the whole batch into
// a synhl.Registry keyed by document name.
func (l *Loader) LoadDir(dir string) (*synhl.Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("grammardef: read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".synhl.json") && !strings.HasSuffix(name, ".synhl.plist") {
			continue
		}
		doc, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if doc.Name == "" {
			return nil, fmt.Errorf("grammardef: %s: missing grammar name", path.Join(dir, name))
		}
		if _, exists := l.docs[doc.Name]; !exists {
			l.order = append(l.order, doc.Name)
		}
		l.docs[doc.Name] = doc
	}

	return l.Compile()
}

// Add registers a Document directly, without reading it from disk -
// useful for tests and for callers that already hold a decoded
// Document.
func (l *Loader) Add(doc *Document) {
	if _, exists := l.docs[doc.Name]; !exists {
		l.order = append(l.order, doc.Name)
	}
	l.docs[doc.Name] = doc
}

// Compile builds a synhl.Registry from every Document added so far,
// resolving "rest"/"ref" entries against the batch and eagerly
// compiling every pattern (regexp2, per the core's Regex Adapter).
func (l *Loader) Compile() (*synhl.Registry, error) {
	reg := synhl.NewRegistry()
	for _, name := range l.order {
		g, err := l.compileDocument(l.docs[name])
		if err != nil {
			return nil, fmt.Errorf("grammardef: grammar %q: %w", name, err)
		}
		reg.Register(name, g)
	}
	return reg, nil
}

func (l *Loader) compileDocument(doc *Document) (*synhl.Grammar, error) {
	g := synhl.NewGrammar()
	for _, entry := range doc.Rules {
		if entry.Name == "rest" && entry.Ref != "" {
			refDoc, ok := l.docs[entry.Ref]
			if !ok {
				return nil, fmt.Errorf("rule %q: unknown ref %q", entry.Name, entry.Ref)
			}
			rest, err := l.compileDocument(refDoc)
			if err != nil {
				return nil, fmt.Errorf("ref %q: %w", entry.Ref, err)
			}
			g.SetRest(rest)
			continue
		}

		patterns := make([]*synhl.Pattern, 0, 1)
		for i, alt := range entry.alternatives() {
			var inside *synhl.Grammar
			if alt.Inside != nil {
				var err error
				inside, err = l.compileDocument(alt.Inside)
				if err != nil {
					return nil, fmt.Errorf("rule %q alternative %d: inside: %w", entry.Name, i, err)
				}
			}
			p, err := synhl.NewPattern(synhl.PatternSpec{
				Source:     alt.Pattern,
				IgnoreCase: alt.IgnoreCase,
				Lookbehind: alt.Lookbehind,
				Greedy:     alt.Greedy,
				Inside:     inside,
				Alias:      alt.Alias,
			})
			if err != nil {
				return nil, fmt.Errorf("rule %q alternative %d: %w", entry.Name, i, err)
			}
			patterns = append(patterns, p)
		}

		rule, err := synhl.NewRule(entry.Name, patterns...)
		if err != nil {
			return nil, err
		}
		g.Set(entry.Name, rule)
	}
	return g, nil
}
