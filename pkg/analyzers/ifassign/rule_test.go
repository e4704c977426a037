package ifassign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/analyzers/ifassign"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

func comparison(op string) *node.Node {
	return node.NewOperator(node.Binary, op,
		node.NewIdentifier("x"),
		node.NewToken(node.Literal, "0"),
	)
}

// assignStmt builds a `target op value;` statement.
func assignStmt(target *node.Node, op string, value *node.Node) *node.Node {
	return node.New(node.ExprStatement,
		node.NewOperator(node.Assignment, op, target, value),
	)
}

// ifAssign builds `if (cond) { y = a; } else { y = b; }`.
func ifAssign(cond, trueValue, falseValue *node.Node) *node.Node {
	return node.New(node.If,
		cond,
		node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", trueValue)),
		node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", falseValue)),
	)
}

func checkIf(t *testing.T, candidate *node.Node) *analyze.Result {
	t.Helper()

	rule := ifassign.New(analyze.SeverityInfo)
	file := &analyze.File{Path: "test.cs", Root: candidate}

	return rule.Check(file, candidate)
}

func TestCheck_SimpleIfElse(t *testing.T) {
	t.Parallel()

	result := checkIf(t, ifAssign(comparison(">"),
		node.NewToken(node.Literal, "1"),
		node.NewToken(node.Literal, "2"),
	))

	require.NotNil(t, result)
	assert.Equal(t, ifassign.RuleID, result.Diagnostic.RuleID)
	assert.Equal(t, analyze.SeverityInfo, result.Diagnostic.Severity)
	assert.Equal(t, "'if' statement can be rewritten as 'y = x > 0 ? 1 : 2'",
		result.Diagnostic.Message)

	// Hand-built trees carry no positions, so no fix is offered.
	assert.Nil(t, result.Fix)
}

func TestCheck_BareStatementBranches(t *testing.T) {
	t.Parallel()

	// Braceless branches: if (x > 0) y = 1; else y = 2;
	candidate := node.New(node.If,
		comparison(">"),
		assignStmt(node.NewIdentifier("y"), "=", node.NewToken(node.Literal, "1")),
		assignStmt(node.NewIdentifier("y"), "=", node.NewToken(node.Literal, "2")),
	)

	assert.NotNil(t, checkIf(t, candidate))
}

func TestCheck_CompoundOperator(t *testing.T) {
	t.Parallel()

	candidate := node.New(node.If,
		comparison(">"),
		node.New(node.Block, assignStmt(node.NewIdentifier("y"), "+=", node.NewToken(node.Literal, "1"))),
		node.New(node.Block, assignStmt(node.NewIdentifier("y"), "+=", node.NewToken(node.Literal, "2"))),
	)

	result := checkIf(t, candidate)
	require.NotNil(t, result)
	assert.Contains(t, result.Diagnostic.Message, "y += x > 0 ? 1 : 2")
}

func TestCheck_FixSpansWholeStatement(t *testing.T) {
	t.Parallel()

	candidate := ifAssign(comparison(">"),
		node.NewToken(node.Literal, "1"),
		node.NewToken(node.Literal, "2"),
	)
	candidate.Pos = &node.Positions{
		StartLine: 1, StartCol: 1, StartOffset: 0,
		EndLine: 1, EndCol: 41, EndOffset: 40,
	}

	result := checkIf(t, candidate)
	require.NotNil(t, result)
	require.NotNil(t, result.Fix)
	require.Len(t, result.Fix.Edits, 1)

	edit := result.Fix.Edits[0]
	assert.Equal(t, uint(0), edit.Start)
	assert.Equal(t, uint(40), edit.End)
	assert.Equal(t, "y = x > 0 ? 1 : 2;", edit.NewText)

	// The diagnostic is anchored on the 'if' keyword.
	require.NotNil(t, result.Diagnostic.Pos)
	assert.Equal(t, uint(0), result.Diagnostic.Pos.StartOffset)
	assert.Equal(t, uint(2), result.Diagnostic.Pos.EndOffset)
	assert.Equal(t, uint(1), result.Diagnostic.Pos.StartLine)
	assert.Equal(t, uint(1), result.Diagnostic.Pos.EndLine)
}

func TestCheck_Negatives(t *testing.T) {
	t.Parallel()

	one := func() *node.Node { return node.NewToken(node.Literal, "1") }
	two := func() *node.Node { return node.NewToken(node.Literal, "2") }

	tests := []struct {
		name      string
		candidate *node.Node
	}{
		{
			name: "no else branch",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", one())),
			),
		},
		{
			name: "different targets",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", one())),
				node.New(node.Block, assignStmt(node.NewIdentifier("z"), "=", two())),
			),
		},
		{
			name: "different operators",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", one())),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "+=", two())),
			),
		},
		{
			name: "multi-statement branch",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block,
					assignStmt(node.NewIdentifier("y"), "=", one()),
					assignStmt(node.NewIdentifier("z"), "=", two()),
				),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", two())),
			),
		},
		{
			name: "else-if chain",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", one())),
				ifAssign(comparison("<"), one(), two()),
			),
		},
		{
			name: "non-assignment branch",
			candidate: node.New(node.If,
				comparison(">"),
				node.New(node.Block, node.New(node.ExprStatement,
					node.New(node.Invocation, node.NewIdentifier("Log")))),
				node.New(node.Block, assignStmt(node.NewIdentifier("y"), "=", two())),
			),
		},
		{
			name:      "complex condition",
			candidate: ifAssign(comparison("&&"), one(), two()),
		},
		{
			name: "conditional value",
			candidate: ifAssign(comparison(">"),
				node.New(node.Conditional, node.NewIdentifier("a"), one(), two()),
				two()),
		},
		{
			name: "binary value",
			candidate: ifAssign(comparison(">"),
				node.NewOperator(node.Binary, "+", node.NewIdentifier("a"), one()),
				two()),
		},
		{
			name: "multi-line value",
			candidate: ifAssign(comparison(">"),
				&node.Node{
					Type: node.Invocation,
					Pos:  &node.Positions{StartLine: 1, EndLine: 3},
					Children: []*node.Node{
						node.NewIdentifier("Build"),
					},
				},
				two()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Nil(t, checkIf(t, tt.candidate))
		})
	}
}

func TestRuleMetadata(t *testing.T) {
	t.Parallel()

	rule := ifassign.New(analyze.SeverityWarning)

	assert.Equal(t, ifassign.RuleID, rule.ID())
	assert.NotEmpty(t, rule.Description())
	assert.Equal(t, analyze.SeverityWarning, rule.Severity())
	assert.Equal(t, []node.Type{node.If}, rule.NodeTypes())
}
