package pattern

import "github.com/Sumatoshi-tech/condense/pkg/uast/node"

// Captures is the table of bindings produced by a successful match:
// capture name to the ordered sequence of nodes bound under that name.
// An absent node matched by AnyOrNull is recorded as a nil entry.
type Captures map[string][]*node.Node

// Node returns the first present node bound under name, or nil if the
// name is unbound or bound to an absent node.
func (c Captures) Node(name string) *node.Node {
	seq, ok := c[name]
	if !ok || len(seq) == 0 {
		return nil
	}

	return seq[0]
}

// Bound reports whether name has any binding, including absence.
func (c Captures) Bound(name string) bool {
	_, ok := c[name]

	return ok
}

// bind records a binding for name, enforcing the union rule: every binding
// of the same name within one match attempt must be structurally equal to
// the first one. An empty name matches without binding.
func (c Captures) bind(name string, candidate *node.Node) bool {
	if name == "" {
		return true
	}

	if seq, ok := c[name]; ok {
		first := seq[0]
		if candidate == nil || first == nil {
			if candidate != first {
				return false
			}
		} else if !node.StructuralEqual(candidate, first) {
			return false
		}
	}

	c[name] = append(c[name], candidate)

	return true
}

func (c Captures) clone() Captures {
	cloned := make(Captures, len(c))
	for name, seq := range c {
		cloned[name] = append([]*node.Node(nil), seq...)
	}

	return cloned
}

// Match matches a pattern against a candidate subtree. On success it
// returns the capture table; on failure it returns nil captures, never a
// partially populated table. Children are matched in declared
// left-to-right order, and bindings are visible only to pattern positions
// matched after them.
//
// Match is a pure function over immutable inputs: the same pattern and
// candidate always yield the same result, and concurrent calls over
// different trees share no state.
func Match(p Pattern, candidate *node.Node) (Captures, bool) {
	captures := make(Captures)
	if !p.match(candidate, captures) {
		return nil, false
	}

	return captures, true
}

// Matches reports whether the pattern matches without exposing captures.
func Matches(p Pattern, candidate *node.Node) bool {
	_, ok := Match(p, candidate)

	return ok
}

func (p *ExactPattern) match(candidate *node.Node, captures Captures) bool {
	if candidate == nil || candidate.Type != p.Type {
		return false
	}

	if p.Token != "" && candidate.Token != p.Token {
		return false
	}

	// A candidate child beyond the pattern's shape is a mismatch; a
	// pattern child beyond the candidate's children is matched against
	// absence, which only AnyOrNull (or a backreference bound to absence)
	// tolerates.
	if len(candidate.Children) > len(p.Children) {
		return false
	}

	for i, childPattern := range p.Children {
		var child *node.Node
		if i < len(candidate.Children) {
			child = candidate.Children[i]
		}

		if !childPattern.match(child, captures) {
			return false
		}
	}

	return true
}

func (p *AnyPattern) match(candidate *node.Node, captures Captures) bool {
	if candidate == nil {
		return false
	}

	return captures.bind(p.Name, candidate)
}

func (p *AnyOrNullPattern) match(candidate *node.Node, captures Captures) bool {
	return captures.bind(p.Name, candidate)
}

func (p *BackrefPattern) match(candidate *node.Node, captures Captures) bool {
	seq, ok := captures[p.Name]
	if !ok {
		// A backreference never introduces a binding.
		return false
	}

	first := seq[0]
	if candidate == nil || first == nil {
		return candidate == first
	}

	return node.StructuralEqual(candidate, first)
}

func (p *ChoicePattern) match(candidate *node.Node, captures Captures) bool {
	for _, alternative := range p.Alternatives {
		// Each alternative runs against a scratch table so captures from
		// a failed attempt never leak into the next one.
		scratch := captures.clone()
		if alternative.match(candidate, scratch) {
			for name, seq := range scratch {
				captures[name] = seq
			}

			return true
		}
	}

	return false
}
