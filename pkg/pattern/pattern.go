// Package pattern implements declarative structural matching over UAST
// subtrees. A pattern describes an expected tree shape containing wildcard
// holes, optional holes, alternation, and named backreferences; matching a
// pattern against a concrete subtree yields a capture table binding hole
// names to the nodes they matched.
//
// Patterns are stateless and safe to construct once and reuse across
// concurrent match attempts.
package pattern

import "github.com/Sumatoshi-tech/condense/pkg/uast/node"

// Pattern is the closed set of pattern variants. Implementations are
// ExactPattern, AnyPattern, AnyOrNullPattern, BackrefPattern and
// ChoicePattern; matching dispatches exhaustively over these.
type Pattern interface {
	// match attempts to match the pattern against candidate, recording
	// bindings into captures. A nil candidate represents an absent node
	// (e.g. a missing call argument). Returns false on mismatch; captures
	// may then hold partial bindings and must be discarded by the caller.
	match(candidate *node.Node, captures Captures) bool
}

// ExactPattern matches a concrete node with a fixed type, an optional
// fixed token, and positionally matched child patterns. Trailing
// AnyOrNullPattern children may match beyond the candidate's child list,
// standing in for absent nodes.
type ExactPattern struct {
	Type     node.Type
	Token    string
	Children []Pattern
}

// AnyPattern matches exactly one present node of any kind and binds it
// under Name. An empty Name matches without binding.
type AnyPattern struct {
	Name string
}

// AnyOrNullPattern matches one node or the absence of a node, binding
// the name to the matched node or to an empty sequence respectively.
type AnyOrNullPattern struct {
	Name string
}

// BackrefPattern matches only if the candidate is structurally equal to
// the first node already bound under Name in this match attempt. It never
// introduces a new binding; an unbound name fails the match.
type BackrefPattern struct {
	Name string
}

// ChoicePattern matches if any alternative matches, tried in order.
// The first success wins; captures recorded by a failed alternative are
// not visible to later alternatives or to the rest of the pattern.
type ChoicePattern struct {
	Alternatives []Pattern
}

// Exact constructs an ExactPattern without a token constraint.
func Exact(nodeType node.Type, children ...Pattern) *ExactPattern {
	return &ExactPattern{Type: nodeType, Children: children}
}

// ExactToken constructs an ExactPattern matching a leaf with the given token.
func ExactToken(nodeType node.Type, token string) *ExactPattern {
	return &ExactPattern{Type: nodeType, Token: token}
}

// Ident matches an Identifier leaf with the given name.
func Ident(name string) *ExactPattern {
	return ExactToken(node.Identifier, name)
}

// Any constructs an AnyPattern binding under name.
func Any(name string) *AnyPattern {
	return &AnyPattern{Name: name}
}

// AnyOrNull constructs an AnyOrNullPattern binding under name.
func AnyOrNull(name string) *AnyOrNullPattern {
	return &AnyOrNullPattern{Name: name}
}

// Backref constructs a BackrefPattern referring to name.
func Backref(name string) *BackrefPattern {
	return &BackrefPattern{Name: name}
}

// Choice constructs a ChoicePattern over the given alternatives.
func Choice(alternatives ...Pattern) *ChoicePattern {
	return &ChoicePattern{Alternatives: alternatives}
}
