// Package common holds predicates shared by the rewrite rules, chiefly
// the complexity classifier deciding when a structurally valid candidate
// is too complicated to rewrite usefully.
package common

import "github.com/Sumatoshi-tech/condense/pkg/uast/node"

// Relational and equality operators that read naturally inside a
// conditional expression. Any other binary operator makes the condition
// complex.
var simpleConditionOperators = map[string]bool{
	">": true, ">=": true, "==": true, "!=": true, "<": true, "<=": true,
}

// IsComplexExpression reports whether expr is too complex to embed as a
// value inside a conditional expression: it spans more than one line, or
// is itself a conditional, or is a binary expression. Values placed in a
// conditional should stay simple, or the rewrite trades one complexity
// for another.
func IsComplexExpression(expr *node.Node) bool {
	if expr == nil {
		return true
	}

	if expr.LineCount() > 1 {
		return true
	}

	return expr.HasAnyType(node.Conditional, node.Binary)
}

// IsComplexCondition reports whether expr is too complex to serve as the
// condition of a conditional expression. Literals, identifiers, member
// accesses and calls are simple; parenthesized and prefix-unary
// expressions are as complex as their operand; binary expressions are
// simple only for relational and equality operators. Every kind not
// listed here is complex, including multi-line expressions of any kind.
func IsComplexCondition(expr *node.Node) bool {
	if expr == nil {
		return true
	}

	if expr.LineCount() > 1 {
		return true
	}

	switch expr.Type {
	case node.Literal, node.NullLiteral, node.Identifier, node.MemberAccess, node.Invocation:
		return false
	case node.Parenthesized, node.PrefixUnary:
		if len(expr.Children) == 0 {
			return true
		}

		return IsComplexCondition(expr.Children[0])
	case node.Binary:
		return !simpleConditionOperators[expr.Operator()]
	default:
		return true
	}
}
