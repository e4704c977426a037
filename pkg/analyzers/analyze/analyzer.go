// Package analyze defines the rule contract and the driver that walks a
// parsed tree, dispatches rules by node kind, and collects diagnostics
// with their proposed fixes.
package analyze

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/condense/pkg/rewrite"
	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// Severity is the reported severity of a diagnostic.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ErrUnknownSeverity is returned for severity strings outside the level set.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity converts a configuration string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning, SeverityError:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
	}
}

// File is one parsed source file under analysis.
type File struct {
	Path   string
	Source []byte
	Root   *node.Node
}

// Diagnostic reports one rewrite opportunity.
type Diagnostic struct {
	RuleID   string          `json:"rule_id"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Path     string          `json:"path,omitempty"`
	Pos      *node.Positions `json:"pos,omitempty"`
}

// Fix is the replacement a rule proposes for a diagnostic, expressed as
// offset edits against the file's original content.
type Fix struct {
	Description string
	Edits       []rewrite.Edit
}

// Result pairs a diagnostic with its fix.
type Result struct {
	Diagnostic Diagnostic
	Fix        *Fix
}

// Rule is one rewrite rule. A rule owns its identifier, message, and
// severity as plain instance data; there is no process-wide registry.
// Check must be a pure function of its inputs: it never mutates the tree
// and returns nil when the rule does not apply.
type Rule interface {
	// ID distinguishes the rule in diagnostics, for suppression and filtering.
	ID() string

	// Description is a short human-readable summary of the rule.
	Description() string

	// Severity is the severity this rule instance reports.
	Severity() Severity

	// NodeTypes lists the node kinds the driver dispatches to this rule.
	NodeTypes() []node.Type

	// Check inspects one candidate node. A nil result means the rule does
	// not apply; it is never an error.
	Check(file *File, candidate *node.Node) *Result
}
