// Package ifassign implements the if-assign rule: an if/else statement
// whose branches assign to the same target with the same operator is
// reducible to a single assignment of a conditional expression.
//
//	if (x > 0) { y = 1; } else { y = 2; }  →  y = x > 0 ? 1 : 2;
package ifassign

import (
	"fmt"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/analyzers/common"
	"github.com/Sumatoshi-tech/condense/pkg/rewrite"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// RuleID identifies the if-assign rule in diagnostics.
const RuleID = "if-assign"

const ifKeywordLen = 2

// Rule detects if/else statements reducible to conditional expressions.
type Rule struct {
	severity analyze.Severity
}

// New creates the rule with the given severity.
func New(severity analyze.Severity) *Rule {
	return &Rule{severity: severity}
}

// ID implements analyze.Rule.
func (r *Rule) ID() string { return RuleID }

// Description implements analyze.Rule.
func (r *Rule) Description() string {
	return "if/else assigning the same target reduces to a conditional expression"
}

// Severity implements analyze.Rule.
func (r *Rule) Severity() analyze.Severity { return r.severity }

// NodeTypes implements analyze.Rule.
func (r *Rule) NodeTypes() []node.Type { return []node.Type{node.If} }

// extraction is the tuple pulled out of a matching if/else statement.
// Constructed per visited if-statement, discarded after the verdict.
type extraction struct {
	condition  *node.Node
	target     *node.Node
	trueValue  *node.Node
	falseValue *node.Node
	operator   string
}

// Check extracts the assignment tuple and consults the classifier. A
// failed extraction or a classifier rejection is a silent non-match.
func (r *Rule) Check(file *analyze.File, candidate *node.Node) *analyze.Result {
	ext, ok := extract(candidate)
	if !ok {
		return nil
	}

	if common.IsComplexCondition(ext.condition) ||
		common.IsComplexExpression(ext.trueValue) ||
		common.IsComplexExpression(ext.falseValue) {
		return nil
	}

	replacement := node.New(node.ExprStatement,
		node.NewOperator(node.Assignment, ext.operator,
			ext.target.Clone(),
			node.New(node.Conditional,
				ext.condition.Clone(),
				ext.trueValue.Clone(),
				ext.falseValue.Clone(),
			),
		),
	)

	result := &analyze.Result{
		Diagnostic: analyze.Diagnostic{
			RuleID:   RuleID,
			Severity: r.severity,
			Message: fmt.Sprintf("'if' statement can be rewritten as '%s'",
				rewrite.Render(replacement.Children[0], file.Source)),
			Pos: keywordSpan(candidate),
		},
	}

	if candidate.Pos != nil {
		result.Fix = &analyze.Fix{
			Description: "Replace 'if' statement with conditional expression",
			Edits: []rewrite.Edit{{
				Start:   candidate.Pos.StartOffset,
				End:     candidate.Pos.EndOffset,
				NewText: rewrite.Render(replacement, file.Source),
			}},
		}
	}

	return result
}

// extract pulls the (condition, target, trueValue, falseValue) tuple out
// of an if/else statement. It succeeds only when both branches exist,
// each reduces to exactly one assignment statement, both assignments
// target structurally equal left-hand sides, and both use the same
// assignment operator.
func extract(ifNode *node.Node) (*extraction, bool) {
	const ifChildren = 3 // condition, then-branch, else-branch.

	if ifNode == nil || len(ifNode.Children) != ifChildren {
		return nil, false
	}

	condition := ifNode.Children[0]

	trueAssign, ok := singleAssignment(ifNode.Children[1])
	if !ok {
		return nil, false
	}

	falseAssign, ok := singleAssignment(ifNode.Children[2])
	if !ok {
		return nil, false
	}

	if !node.StructuralEqual(trueAssign.Children[0], falseAssign.Children[0]) {
		return nil, false
	}

	if trueAssign.Operator() != falseAssign.Operator() {
		return nil, false
	}

	return &extraction{
		condition:  condition,
		target:     trueAssign.Children[0],
		trueValue:  trueAssign.Children[1],
		falseValue: falseAssign.Children[1],
		operator:   trueAssign.Operator(),
	}, true
}

// singleAssignment reduces a branch to its sole assignment expression:
// either a block containing exactly one assignment statement, or a bare
// assignment statement. Anything else, including an else-if chain, fails.
func singleAssignment(branch *node.Node) (*node.Node, bool) {
	if branch == nil {
		return nil, false
	}

	if branch.Type == node.Block {
		if len(branch.Children) != 1 {
			return nil, false
		}

		branch = branch.Children[0]
	}

	if branch.Type != node.ExprStatement || len(branch.Children) != 1 {
		return nil, false
	}

	assign := branch.Children[0]
	if assign.Type != node.Assignment || len(assign.Children) != 2 {
		return nil, false
	}

	return assign, true
}

// keywordSpan is the span of the leading 'if' keyword, where the
// diagnostic is anchored.
func keywordSpan(ifNode *node.Node) *node.Positions {
	if ifNode.Pos == nil {
		return nil
	}

	return &node.Positions{
		StartLine:   ifNode.Pos.StartLine,
		StartCol:    ifNode.Pos.StartCol,
		StartOffset: ifNode.Pos.StartOffset,
		EndLine:     ifNode.Pos.StartLine,
		EndCol:      ifNode.Pos.StartCol + ifKeywordLen,
		EndOffset:   ifNode.Pos.StartOffset + ifKeywordLen,
	}
}
