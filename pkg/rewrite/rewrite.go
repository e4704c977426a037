// Package rewrite turns replacement subtrees into source edits. Parsed
// nodes keep their byte spans, so a cloned subtree renders by splicing the
// original text; synthesized nodes render from their children. Edits are
// offset ranges against the original file content, applied without
// touching the parsed tree.
package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// ErrOverlappingEdits is returned when two edits cover the same bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces the byte range [Start, End) of the original source with
// NewText.
type Edit struct {
	NewText string
	Start   uint
	End     uint
}

// Apply applies edits to src and returns the rewritten content. Edits may
// be given in any order but must not overlap.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := append([]Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []byte

	cursor := uint(0)

	for _, edit := range sorted {
		if edit.Start < cursor || edit.End < edit.Start || int(edit.End) > len(src) {
			return nil, fmt.Errorf("%w: [%d, %d)", ErrOverlappingEdits, edit.Start, edit.End)
		}

		out = append(out, src[cursor:edit.Start]...)
		out = append(out, edit.NewText...)
		cursor = edit.End
	}

	out = append(out, src[cursor:]...)

	return out, nil
}

// Render produces source text for a node. Nodes carrying a source span
// splice the original text; synthesized replacement nodes are rendered
// from their structure. Indentation and placement of the result are the
// caller's concern.
//
//nolint:cyclop // single dispatch table over canonical kinds.
func Render(n *node.Node, src []byte) string {
	if n == nil {
		return ""
	}

	if n.Pos != nil && n.Pos.EndOffset > n.Pos.StartOffset && int(n.Pos.EndOffset) <= len(src) {
		return string(src[n.Pos.StartOffset:n.Pos.EndOffset])
	}

	switch n.Type {
	case node.Assignment:
		return fmt.Sprintf("%s %s %s",
			Render(child(n, 0), src), n.Operator(), Render(child(n, 1), src))
	case node.Binary:
		return fmt.Sprintf("%s %s %s",
			Render(child(n, 0), src), n.Operator(), Render(child(n, 1), src))
	case node.Conditional:
		return fmt.Sprintf("%s ? %s : %s",
			Render(child(n, 0), src), Render(child(n, 1), src), Render(child(n, 2), src))
	case node.Invocation:
		return renderInvocation(n, src)
	case node.MemberAccess:
		return Render(child(n, 0), src) + "." + Render(child(n, 1), src)
	case node.ExprStatement:
		return Render(child(n, 0), src) + ";"
	case node.Parenthesized:
		return "(" + Render(child(n, 0), src) + ")"
	case node.PrefixUnary:
		return n.Operator() + Render(child(n, 0), src)
	case node.NullLiteral:
		return "null"
	case node.DefaultExpr:
		if len(n.Children) > 0 {
			return "default(" + Render(child(n, 0), src) + ")"
		}

		return "default"
	default:
		if n.Token != "" {
			return n.Token
		}

		return n.Props[node.PropRaw]
	}
}

func renderInvocation(n *node.Node, src []byte) string {
	args := make([]string, 0, len(n.Children))
	for _, arg := range n.Children[1:] {
		args = append(args, Render(arg, src))
	}

	return Render(child(n, 0), src) + "(" + strings.Join(args, ", ") + ")"
}

func child(n *node.Node, i int) *node.Node {
	if i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// Diff computes the character diffs between the original and rewritten
// content, cleaned up for display.
func Diff(before, after []byte) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), false)

	return dmp.DiffCleanupSemantic(diffs)
}

// DiffText renders diffs as a unified patch text.
func DiffText(before, after []byte) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(string(before), string(after))

	return dmp.PatchToText(patches)
}
