package synhl

import "errors"

// ErrUnknownGrammar is returned when a composition helper is asked to
// operate on a language id that is not present in the registry.
var ErrUnknownGrammar = errors.New("synhl: unknown grammar id")

// ErrUnknownRule is returned when InsertBefore's before key does not
// name a rule present in the target grammar.
var ErrUnknownRule = errors.New("synhl: unknown rule name")

// ErrListInvariant marks an internal bug: the fragment list grew past
// the length of the input text. Tokenize itself never fails - it aborts
// the current matchGrammar call and keeps whatever tokens it has
// already produced - but onListInvariantViolation, if set, is notified
// with this error so code inside this package can observe what should
// never happen in practice.
var ErrListInvariant = errors.New("synhl: fragment list invariant violated")

// onListInvariantViolation is an optional diagnostic hook invoked from
// the engine's safety valve (runPattern) when the list invariant trips.
// Nil by default; it is unexported, so only this package (its tests
// included) can set it to observe the fault without Tokenize's
// signature having to carry an error nobody else needs to check.
var onListInvariantViolation func(error)
