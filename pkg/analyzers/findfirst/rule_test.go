package findfirst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/analyzers/findfirst"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// call builds receiver.method(args...) as a canonical subtree.
func call(receiver *node.Node, method string, args ...*node.Node) *node.Node {
	children := []*node.Node{
		node.New(node.MemberAccess, receiver, node.NewIdentifier(method)),
	}

	return node.New(node.Invocation, append(children, args...)...)
}

func items() *node.Node { return node.NewIdentifier("items") }

func lambda(raw string) *node.Node {
	return &node.Node{Type: node.Lambda, Props: map[string]string{node.PropRaw: raw}}
}

func checkConditional(t *testing.T, candidate *node.Node) *analyze.Result {
	t.Helper()

	rule := findfirst.New(analyze.SeverityInfo)
	file := &analyze.File{Path: "test.cs", Root: candidate}

	return rule.Check(file, candidate)
}

func TestCheck_AnyFirstNull(t *testing.T) {
	t.Parallel()

	pred := "x => x.Active"
	candidate := node.New(node.Conditional,
		call(items(), "Any", lambda(pred)),
		call(items(), "First", lambda(pred)),
		node.New(node.NullLiteral),
	)

	result := checkConditional(t, candidate)
	require.NotNil(t, result)
	assert.Equal(t, findfirst.RuleID, result.Diagnostic.RuleID)
	assert.Equal(t,
		"conditional expression can be rewritten as 'items.FirstOrDefault(x => x.Active)'",
		result.Diagnostic.Message)
	assert.Nil(t, result.Fix)
}

func TestCheck_DefaultFalseArm(t *testing.T) {
	t.Parallel()

	pred := "x => x.Active"

	// Bare `default`.
	bare := node.New(node.Conditional,
		call(items(), "Any", lambda(pred)),
		call(items(), "First", lambda(pred)),
		node.New(node.DefaultExpr),
	)
	assert.NotNil(t, checkConditional(t, bare))

	// `default(Order)`.
	typed := node.New(node.Conditional,
		call(items(), "Any", lambda(pred)),
		call(items(), "First", lambda(pred)),
		node.New(node.DefaultExpr, node.NewIdentifier("Order")),
	)
	assert.NotNil(t, checkConditional(t, typed))
}

func TestCheck_NoPredicate(t *testing.T) {
	t.Parallel()

	candidate := node.New(node.Conditional,
		call(items(), "Any"),
		call(items(), "First"),
		node.New(node.NullLiteral),
	)

	result := checkConditional(t, candidate)
	require.NotNil(t, result)
	assert.Contains(t, result.Diagnostic.Message, "items.FirstOrDefault()")
}

func TestCheck_MemberAccessReceiver(t *testing.T) {
	t.Parallel()

	receiver := func() *node.Node {
		return node.New(node.MemberAccess, node.NewIdentifier("order"), node.NewIdentifier("Lines"))
	}
	pred := "l => l.Qty > 0"

	candidate := node.New(node.Conditional,
		call(receiver(), "Any", lambda(pred)),
		call(receiver(), "First", lambda(pred)),
		node.New(node.NullLiteral),
	)

	result := checkConditional(t, candidate)
	require.NotNil(t, result)
	assert.Contains(t, result.Diagnostic.Message, "order.Lines.FirstOrDefault(l => l.Qty > 0)")
}

func TestCheck_FixReplacesConditionalSpan(t *testing.T) {
	t.Parallel()

	candidate := node.New(node.Conditional,
		call(items(), "Any"),
		call(items(), "First"),
		node.New(node.NullLiteral),
	)
	candidate.Pos = &node.Positions{
		StartLine: 4, StartCol: 12, StartOffset: 90,
		EndLine: 4, EndCol: 55, EndOffset: 133,
	}

	result := checkConditional(t, candidate)
	require.NotNil(t, result)
	require.NotNil(t, result.Fix)
	require.Len(t, result.Fix.Edits, 1)

	edit := result.Fix.Edits[0]
	assert.Equal(t, uint(90), edit.Start)
	assert.Equal(t, uint(133), edit.End)
	assert.Equal(t, "items.FirstOrDefault()", edit.NewText)
}

func TestCheck_Negatives(t *testing.T) {
	t.Parallel()

	pred := "x => x.Active"

	tests := []struct {
		name      string
		candidate *node.Node
	}{
		{
			name: "different predicates",
			candidate: node.New(node.Conditional,
				call(items(), "Any", lambda(pred)),
				call(items(), "First", lambda("x => x.Closed")),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "different receivers",
			candidate: node.New(node.Conditional,
				call(node.NewIdentifier("items"), "Any", lambda(pred)),
				call(node.NewIdentifier("others"), "First", lambda(pred)),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "predicate only on the existence check",
			candidate: node.New(node.Conditional,
				call(items(), "Any", lambda(pred)),
				call(items(), "First"),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "predicate only on the first-match call",
			candidate: node.New(node.Conditional,
				call(items(), "Any"),
				call(items(), "First", lambda(pred)),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "wrong existence method",
			candidate: node.New(node.Conditional,
				call(items(), "Contains", lambda(pred)),
				call(items(), "First", lambda(pred)),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "wrong first-match method",
			candidate: node.New(node.Conditional,
				call(items(), "Any", lambda(pred)),
				call(items(), "Single", lambda(pred)),
				node.New(node.NullLiteral),
			),
		},
		{
			name: "non-default false arm",
			candidate: node.New(node.Conditional,
				call(items(), "Any", lambda(pred)),
				call(items(), "First", lambda(pred)),
				node.NewToken(node.Literal, "0"),
			),
		},
		{
			name: "plain function call receiver arms swapped",
			candidate: node.New(node.Conditional,
				call(items(), "First", lambda(pred)),
				call(items(), "Any", lambda(pred)),
				node.New(node.NullLiteral),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Nil(t, checkConditional(t, tt.candidate))
		})
	}
}

func TestRuleMetadata(t *testing.T) {
	t.Parallel()

	rule := findfirst.New(analyze.SeverityError)

	assert.Equal(t, findfirst.RuleID, rule.ID())
	assert.NotEmpty(t, rule.Description())
	assert.Equal(t, analyze.SeverityError, rule.Severity())
	assert.Equal(t, []node.Type{node.Conditional}, rule.NodeTypes())
}
