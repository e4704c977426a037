package uast

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// Grammar kinds of the tree-sitter C# grammar that lower to canonical
// node types. Everything else passes through with its grammar kind and a
// normalized raw-text property, which keeps backreference equality
// conservative for constructs the rules do not model.
const (
	tsCompilationUnit = "compilation_unit"
	tsIfStatement     = "if_statement"
	tsConditional     = "conditional_expression"
	tsInvocation      = "invocation_expression"
	tsMemberAccess    = "member_access_expression"
	tsAssignment      = "assignment_expression"
	tsBinary          = "binary_expression"
	tsPrefixUnary     = "prefix_unary_expression"
	tsParenthesized   = "parenthesized_expression"
	tsIdentifier      = "identifier"
	tsNullLiteral     = "null_literal"
	tsDefaultExpr     = "default_expression"
	tsLambda          = "lambda_expression"
	tsBlock           = "block"
	tsExprStatement   = "expression_statement"
	tsArgument        = "argument"

	fieldCondition   = "condition"
	fieldConsequence = "consequence"
	fieldAlternative = "alternative"
	fieldFunction    = "function"
	fieldArguments   = "arguments"
	fieldExpression  = "expression"
	fieldName        = "name"
	fieldLeft        = "left"
	fieldRight       = "right"
	fieldOperator    = "operator"
	fieldType        = "type"
)

var literalKinds = map[string]bool{
	"integer_literal":         true,
	"real_literal":            true,
	"string_literal":          true,
	"verbatim_string_literal": true,
	"raw_string_literal":      true,
	"character_literal":       true,
	"boolean_literal":         true,
}

type converter struct {
	source []byte
}

//nolint:cyclop // single dispatch table over grammar kinds.
func (c *converter) convert(ts sitter.Node) *node.Node {
	switch kind := ts.Type(); {
	case kind == tsCompilationUnit:
		return c.withPos(ts, node.New(node.File, c.namedChildren(ts)...))
	case kind == tsIfStatement:
		return c.convertIf(ts)
	case kind == tsConditional:
		return c.convertConditional(ts)
	case kind == tsInvocation:
		return c.convertInvocation(ts)
	case kind == tsMemberAccess:
		return c.convertMemberAccess(ts)
	case kind == tsAssignment:
		return c.convertOperatorNode(ts, node.Assignment)
	case kind == tsBinary:
		return c.convertOperatorNode(ts, node.Binary)
	case kind == tsPrefixUnary:
		return c.convertPrefixUnary(ts)
	case kind == tsParenthesized:
		return c.convertWrapper(ts, node.Parenthesized)
	case kind == tsIdentifier:
		return c.withPos(ts, node.NewToken(node.Identifier, c.text(ts)))
	case kind == tsNullLiteral:
		return c.withPos(ts, node.New(node.NullLiteral))
	case kind == tsDefaultExpr:
		return c.withPos(ts, node.New(node.DefaultExpr, c.namedChildren(ts)...))
	case kind == tsLambda:
		return c.convertOpaque(ts, node.Lambda)
	case kind == tsBlock:
		return c.withPos(ts, node.New(node.Block, c.namedChildren(ts)...))
	case kind == tsExprStatement:
		return c.convertWrapper(ts, node.ExprStatement)
	case literalKinds[kind]:
		return c.withPos(ts, node.NewToken(node.Literal, c.text(ts)))
	default:
		return c.convertGeneric(ts)
	}
}

func (c *converter) convertIf(ts sitter.Node) *node.Node {
	children := compact(
		c.convertField(ts, fieldCondition),
		c.convertField(ts, fieldConsequence),
	)

	if alt := ts.ChildByFieldName(fieldAlternative); !alt.IsNull() {
		children = append(children, c.convert(alt))
	}

	return c.withPos(ts, node.New(node.If, children...))
}

func (c *converter) convertConditional(ts sitter.Node) *node.Node {
	return c.withPos(ts, node.New(node.Conditional, compact(
		c.convertField(ts, fieldCondition),
		c.convertField(ts, fieldConsequence),
		c.convertField(ts, fieldAlternative),
	)...))
}

// convertInvocation flattens the argument list: an Invocation node's
// children are the callee followed by the argument expressions, so an
// absent argument is an absent child rather than an empty wrapper node.
func (c *converter) convertInvocation(ts sitter.Node) *node.Node {
	children := compact(c.convertField(ts, fieldFunction))

	if args := ts.ChildByFieldName(fieldArguments); !args.IsNull() {
		for idx := range args.NamedChildCount() {
			arg := args.NamedChild(idx)
			if expr := c.argumentExpression(arg); expr != nil {
				children = append(children, expr)
			}
		}
	}

	return c.withPos(ts, node.New(node.Invocation, children...))
}

// argumentExpression unwraps an argument node to its expression, skipping
// a leading name-colon for named arguments.
func (c *converter) argumentExpression(arg sitter.Node) *node.Node {
	if arg.Type() != tsArgument {
		return c.convert(arg)
	}

	count := arg.NamedChildCount()
	if count == 0 {
		return nil
	}

	return c.convert(arg.NamedChild(count - 1))
}

func (c *converter) convertMemberAccess(ts sitter.Node) *node.Node {
	return c.withPos(ts, node.New(node.MemberAccess, compact(
		c.convertField(ts, fieldExpression),
		c.convertField(ts, fieldName),
	)...))
}

func (c *converter) convertOperatorNode(ts sitter.Node, nodeType node.Type) *node.Node {
	operator := ""
	if op := ts.ChildByFieldName(fieldOperator); !op.IsNull() {
		operator = c.text(op)
	}

	return c.withPos(ts, node.NewOperator(nodeType, operator, compact(
		c.convertField(ts, fieldLeft),
		c.convertField(ts, fieldRight),
	)...))
}

// convertPrefixUnary extracts the operator token from the span between
// the node start and its operand; the grammar exposes no operator field.
func (c *converter) convertPrefixUnary(ts sitter.Node) *node.Node {
	if ts.NamedChildCount() == 0 {
		return c.convertGeneric(ts)
	}

	operand := ts.NamedChild(0)
	operator := strings.TrimSpace(string(c.source[ts.StartByte():operand.StartByte()]))

	return c.withPos(ts, node.NewOperator(node.PrefixUnary, operator, c.convert(operand)))
}

func (c *converter) convertWrapper(ts sitter.Node, nodeType node.Type) *node.Node {
	if ts.NamedChildCount() == 0 {
		return c.convertGeneric(ts)
	}

	return c.withPos(ts, node.New(nodeType, c.convert(ts.NamedChild(0))))
}

// convertOpaque lowers a construct to a canonical kind whose identity is
// its normalized text, not its child structure. Used for lambdas, where
// equality of two predicates must survive formatting differences without
// the rules modeling parameter lists and bodies.
func (c *converter) convertOpaque(ts sitter.Node, nodeType node.Type) *node.Node {
	n := node.New(nodeType)
	n.Props = map[string]string{node.PropRaw: normalizeRaw(c.text(ts))}

	return c.withPos(ts, n)
}

func (c *converter) convertGeneric(ts sitter.Node) *node.Node {
	if ts.NamedChildCount() == 0 {
		if c.text(ts) == "default" {
			// Bare default literal in target-typed position.
			return c.withPos(ts, node.New(node.DefaultExpr))
		}

		return c.withPos(ts, node.NewToken(node.Type(ts.Type()), c.text(ts)))
	}

	n := node.New(node.Type(ts.Type()), c.namedChildren(ts)...)
	n.Props = map[string]string{node.PropRaw: normalizeRaw(c.text(ts))}

	return c.withPos(ts, n)
}

func (c *converter) convertField(ts sitter.Node, field string) *node.Node {
	child := ts.ChildByFieldName(field)
	if child.IsNull() {
		return nil
	}

	return c.convert(child)
}

func (c *converter) namedChildren(ts sitter.Node) []*node.Node {
	count := ts.NamedChildCount()
	if count == 0 {
		return nil
	}

	children := make([]*node.Node, 0, count)

	for idx := range count {
		if child := c.convert(ts.NamedChild(idx)); child != nil {
			children = append(children, child)
		}
	}

	return children
}

func (c *converter) text(ts sitter.Node) string {
	return string(c.source[ts.StartByte():ts.EndByte()])
}

func (c *converter) withPos(ts sitter.Node, n *node.Node) *node.Node {
	if n == nil {
		return nil
	}

	start, end := ts.StartPoint(), ts.EndPoint()
	n.Pos = &node.Positions{
		StartLine:   uint(start.Row) + 1,
		StartCol:    uint(start.Column) + 1,
		StartOffset: uint(ts.StartByte()),
		EndLine:     uint(end.Row) + 1,
		EndCol:      uint(end.Column) + 1,
		EndOffset:   uint(ts.EndByte()),
	}

	return n
}

// compact drops nil entries produced by absent grammar fields.
func compact(children ...*node.Node) []*node.Node {
	out := make([]*node.Node, 0, len(children))

	for _, child := range children {
		if child != nil {
			out = append(out, child)
		}
	}

	return out
}

// normalizeRaw collapses all whitespace runs to single spaces so that raw
// text comparison ignores purely cosmetic formatting.
func normalizeRaw(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
