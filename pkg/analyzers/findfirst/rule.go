// Package findfirst implements the find-first rule: a conditional
// expression reimplementing "first matching element or a default" with
// separate existence-check and first-match calls is reducible to a single
// find-or-default call.
//
//	list.Any(p) ? list.First(p) : null  →  list.FirstOrDefault(p)
package findfirst

import (
	"fmt"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/pattern"
	"github.com/Sumatoshi-tech/condense/pkg/rewrite"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// RuleID identifies the find-first rule in diagnostics.
const RuleID = "find-first"

// Capture names used by the rule's pattern.
const (
	captureExpr  = "expr"
	captureParam = "param"
)

// Rule detects conditional expressions reducible to FirstOrDefault calls.
type Rule struct {
	pattern  pattern.Pattern
	severity analyze.Severity
}

// New creates the rule with the given severity. The pattern is built once
// and reused across matches; it is stateless.
func New(severity analyze.Severity) *Rule {
	return &Rule{severity: severity, pattern: newPattern()}
}

// newPattern describes seq.Any(p) ? seq.First(p) : (null|default). The
// backreferences on the receiver and the predicate enforce that both
// calls name the same sequence and the same predicate; the predicate hole
// is optional, and a predicate present in one call but absent in the
// other fails the backreference.
func newPattern() pattern.Pattern {
	return pattern.Exact(node.Conditional,
		pattern.Exact(node.Invocation,
			pattern.Exact(node.MemberAccess,
				pattern.Any(captureExpr),
				pattern.Ident("Any"),
			),
			pattern.AnyOrNull(captureParam),
		),
		pattern.Exact(node.Invocation,
			pattern.Exact(node.MemberAccess,
				pattern.Backref(captureExpr),
				pattern.Ident("First"),
			),
			pattern.Backref(captureParam),
		),
		pattern.Choice(
			pattern.Exact(node.NullLiteral),
			pattern.Exact(node.DefaultExpr, pattern.AnyOrNull("")),
		),
	)
}

// ID implements analyze.Rule.
func (r *Rule) ID() string { return RuleID }

// Description implements analyze.Rule.
func (r *Rule) Description() string {
	return "Any/First pair on the same sequence reduces to FirstOrDefault"
}

// Severity implements analyze.Rule.
func (r *Rule) Severity() analyze.Severity { return r.severity }

// NodeTypes implements analyze.Rule.
func (r *Rule) NodeTypes() []node.Type { return []node.Type{node.Conditional} }

// Check matches the pattern against the conditional expression and, on
// success, proposes the FirstOrDefault rewrite. Non-match is silent.
func (r *Rule) Check(file *analyze.File, candidate *node.Node) *analyze.Result {
	captures, ok := pattern.Match(r.pattern, candidate)
	if !ok {
		return nil
	}

	receiver := captures.Node(captureExpr)

	replacement := node.New(node.Invocation,
		node.New(node.MemberAccess,
			receiver.Clone(),
			node.NewIdentifier("FirstOrDefault"),
		),
	)

	if param := captures.Node(captureParam); param != nil {
		replacement.AddChild(param.Clone())
	}

	newText := rewrite.Render(replacement, file.Source)

	result := &analyze.Result{
		Diagnostic: analyze.Diagnostic{
			RuleID:   RuleID,
			Severity: r.severity,
			Message:  fmt.Sprintf("conditional expression can be rewritten as '%s'", newText),
			Pos:      candidate.Pos,
		},
	}

	if candidate.Pos != nil {
		result.Fix = &analyze.Fix{
			Description: "Replace conditional expression with FirstOrDefault call",
			Edits: []rewrite.Edit{{
				Start:   candidate.Pos.StartOffset,
				End:     candidate.Pos.EndOffset,
				NewText: newText,
			}},
		}
	}

	return result
}
