// Package synhl tokenizes source text using a declarative, ordered
// grammar of regular-expression rules, producing a nested stream of
// typed tokens suitable for downstream syntax-highlighting renderers.
//
// Workflow:
//  1. Build or load a Grammar (an ordered collection of named Rules).
//  2. Call Tokenize(text, grammar) to get back a flat []Fragment, where
//     a Fragment is either an unclassified string or a *Token whose
//     Content may itself be a nested []Fragment.
//  3. Compose grammars with Extend and InsertBefore to derive one
//     language's grammar from another without mutating the original.
//
// The package does no file I/O, no rendering, and knows nothing about
// any particular language; it is a pure, headless library.
package synhl
