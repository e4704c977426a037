// Package uast parses C# source files with tree-sitter and lowers the
// concrete syntax tree into the canonical node model consumed by the
// condense rules.
package uast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexaandru/go-sitter-forest/c_sharp"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/condense/pkg/uast/node"
)

// Sentinel errors for parser operations.
var (
	errLanguageNotAvailable = errors.New("tree-sitter language not available")
	errNoRootNode           = errors.New("no root node produced")
	errPoolType             = errors.New("unexpected type in parser pool")
)

// Language is the tree-sitter language this parser handles.
const Language = "c_sharp"

var extensions = map[string]bool{".cs": true, ".csx": true}

var (
	languageOnce sync.Once
	language     *sitter.Language
)

func getLanguage() *sitter.Language {
	languageOnce.Do(func() {
		defer func() {
			_ = recover() //nolint:errcheck // grammar load panics surface as a nil language.
		}()

		language = sitter.NewLanguage(c_sharp.GetLanguage())
	})

	return language
}

// Parser parses C# sources into canonical UAST trees. It is safe for
// concurrent use; the underlying tree-sitter parsers are pooled.
type Parser struct {
	tsParserPool sync.Pool
}

// NewParser creates a new Parser, loading the tree-sitter grammar.
func NewParser() (*Parser, error) {
	lang := getLanguage()
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", errLanguageNotAvailable, Language)
	}

	return &Parser{
		tsParserPool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}, nil
}

// IsSupported returns true if the given filename has a supported extension.
func (p *Parser) IsSupported(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}

	return extensions[strings.ToLower(filename[idx:])]
}

// Parse parses file content and returns the root of the canonical UAST.
func (p *Parser) Parse(ctx context.Context, content []byte) (*node.Node, error) {
	tsParser, ok := p.tsParserPool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.tsParserPool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	conv := &converter{source: content}

	return conv.convert(root), nil
}
