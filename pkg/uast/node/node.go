// Package node provides the canonical UAST node structure used by the
// condense rules: an immutable kind-tagged tree with positional metadata,
// plus the traversal and structural-equality operations the rewrite
// engine is built on.
package node

// Canonical node type constants. The parser lowers tree-sitter grammar
// kinds into this closed set; anything it does not recognize keeps its
// grammar kind and is treated conservatively by the rules.
const (
	File          = "File"
	If            = "If"
	Conditional   = "Conditional"
	Invocation    = "Invocation"
	MemberAccess  = "MemberAccess"
	Binary        = "Binary"
	Assignment    = "Assignment"
	PrefixUnary   = "PrefixUnary"
	Parenthesized = "Parenthesized"
	Identifier    = "Identifier"
	Literal       = "Literal"
	NullLiteral   = "NullLiteral"
	DefaultExpr   = "DefaultExpr"
	Lambda        = "Lambda"
	Block         = "Block"
	ExprStatement = "ExprStatement"
)

// Props keys for semantic attributes carried outside the child list.
const (
	// PropOperator carries the operator token of Binary, Assignment and
	// PrefixUnary nodes.
	PropOperator = "operator"

	// PropRaw carries the normalized source text of constructs the parser
	// does not lower to a canonical kind. Structural equality compares it,
	// keeping backreference checks conservative for arbitrary expressions.
	PropRaw = "raw"
)

// Type represents a type label for a node.
type Type string

// Positions represents the byte and line/col offsets for a node.
// Line and column fields are 1-based; StartOffset/EndOffset are byte offsets.
type Positions struct {
	StartLine   uint `json:"start_line,omitempty"`
	StartCol    uint `json:"start_col,omitempty"`
	StartOffset uint `json:"start_offset,omitempty"`
	EndLine     uint `json:"end_line,omitempty"`
	EndCol      uint `json:"end_col,omitempty"`
	EndOffset   uint `json:"end_offset,omitempty"`
}

// Node is the canonical UAST node structure.
//
// Fields:
//
//	Type: node type (e.g., "If", "Identifier").
//	Token: string value for leaf nodes.
//	Pos: source position info; nil for synthesized replacement nodes.
//	Props: additional properties (e.g. the operator token).
//	Children: child nodes (ordered).
//
// Parsed trees are read-only to the analyzers. Replacement subtrees are
// always newly constructed, never in-place edits of a parsed tree.
type Node struct {
	Token    string            `json:"token,omitempty"`
	Type     Type              `json:"type,omitempty"`
	Pos      *Positions        `json:"pos,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// New creates a new Node with the given type and children.
func New(nodeType Type, children ...*Node) *Node {
	return &Node{Type: nodeType, Children: children}
}

// NewToken creates a new leaf Node with type and token.
func NewToken(nodeType Type, token string) *Node {
	return &Node{Type: nodeType, Token: token}
}

// NewIdentifier creates a new Identifier leaf node.
func NewIdentifier(name string) *Node {
	return NewToken(Identifier, name)
}

// NewOperator creates a new Node with an operator property.
func NewOperator(nodeType Type, operator string, children ...*Node) *Node {
	return &Node{
		Type:     nodeType,
		Props:    map[string]string{PropOperator: operator},
		Children: children,
	}
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Operator returns the operator token of the node, or "".
func (n *Node) Operator() string {
	if n == nil || n.Props == nil {
		return ""
	}

	return n.Props[PropOperator]
}

// HasAnyType reports whether the node's type is one of the given types.
func (n *Node) HasAnyType(types ...Type) bool {
	if n == nil {
		return false
	}

	for _, t := range types {
		if n.Type == t {
			return true
		}
	}

	return false
}

// LineCount returns the number of source lines the node spans.
// Synthesized nodes without positions span a single line.
func (n *Node) LineCount() uint {
	if n == nil || n.Pos == nil || n.Pos.EndLine < n.Pos.StartLine {
		return 1
	}

	return n.Pos.EndLine - n.Pos.StartLine + 1
}

// Clone returns a deep copy of the node. Positions are shared (they are
// never mutated); Props and Children are copied.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Token: n.Token,
		Type:  n.Type,
		Pos:   n.Pos,
	}

	if n.Props != nil {
		clone.Props = make(map[string]string, len(n.Props))
		for k, v := range n.Props {
			clone.Props[k] = v
		}
	}

	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

// Walk visits every node in the tree in pre-order, passing the current
// depth. Returning false from the visitor prunes the subtree.
func (n *Node) Walk(visit func(*Node, int) bool) {
	if n == nil {
		return
	}

	n.walk(visit, 0)
}

func (n *Node) walk(visit func(*Node, int) bool, depth int) {
	if !visit(n, depth) {
		return
	}

	for _, child := range n.Children {
		child.walk(visit, depth+1)
	}
}

// Find returns all nodes in the tree (including root) for which
// predicate(node) is true. Traversal is pre-order. Returns nil if n is nil.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var found []*Node

	n.Walk(func(current *Node, _ int) bool {
		if predicate(current) {
			found = append(found, current)
		}

		return true
	})

	return found
}
