package analyze

import (
	"context"

	"github.com/Sumatoshi-tech/condense/pkg/rewrite"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// Runner drives a single traversal pass over a parsed tree, invoking each
// registered rule on the node kinds it declares. Rules are stateless, so
// one Runner may analyze independent files concurrently.
type Runner struct {
	byType map[node.Type][]Rule
	rules  []Rule
}

// NewRunner creates a Runner over the given rules.
func NewRunner(rules ...Rule) *Runner {
	byType := make(map[node.Type][]Rule)

	for _, rule := range rules {
		for _, nodeType := range rule.NodeTypes() {
			byType[nodeType] = append(byType[nodeType], rule)
		}
	}

	return &Runner{byType: byType, rules: rules}
}

// Rules returns the registered rules.
func (r *Runner) Rules() []Rule {
	return r.rules
}

// Run walks the file's tree once in pre-order and collects rule results.
// Cancellation is cooperative at traversal granularity: the context is
// checked between visited nodes and the remainder of the walk abandoned,
// leaving no partial mutation because rules never mutate.
func (r *Runner) Run(ctx context.Context, file *File) ([]Result, error) {
	var results []Result

	var walkErr error

	file.Root.Walk(func(current *node.Node, _ int) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err

			return false
		}

		for _, rule := range r.byType[current.Type] {
			if result := rule.Check(file, current); result != nil {
				result.Diagnostic.Path = file.Path
				results = append(results, *result)
			}
		}

		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return results, nil
}

// FixAt re-validates a previously reported location against the current
// tree and returns the fix if a rule still matches there. A stale
// location — the construct changed or disappeared since the diagnostic
// was computed — yields (nil, false) and no edit.
func (r *Runner) FixAt(file *File, ruleID string, startOffset uint) (*Fix, bool) {
	var found *Fix

	file.Root.Walk(func(current *node.Node, _ int) bool {
		if found != nil || current.Pos == nil {
			return false
		}

		// Prune subtrees that do not contain the offset.
		if startOffset < current.Pos.StartOffset || startOffset >= current.Pos.EndOffset {
			return false
		}

		if current.Pos.StartOffset == startOffset {
			for _, rule := range r.byType[current.Type] {
				if rule.ID() != ruleID {
					continue
				}

				if result := rule.Check(file, current); result != nil && result.Fix != nil {
					found = result.Fix

					return false
				}
			}
		}

		return true
	})

	return found, found != nil
}

// ApplyFixes applies the fixes of the given results to the file content,
// skipping any fix whose edits overlap an already accepted one. It
// returns the rewritten content and the number of fixes applied.
func ApplyFixes(file *File, results []Result) ([]byte, int, error) {
	var edits []rewrite.Edit

	applied := 0

	for _, result := range results {
		if result.Fix == nil {
			continue
		}

		if overlapsAny(edits, result.Fix.Edits) {
			continue
		}

		edits = append(edits, result.Fix.Edits...)
		applied++
	}

	out, err := rewrite.Apply(file.Source, edits)
	if err != nil {
		return nil, 0, err
	}

	return out, applied, nil
}

func overlapsAny(accepted []rewrite.Edit, candidates []rewrite.Edit) bool {
	for _, c := range candidates {
		for _, a := range accepted {
			if c.Start < a.End && a.Start < c.End {
				return true
			}
		}
	}

	return false
}
