package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/condense/pkg/uast"
)

// NewParseCommand creates the parse subcommand, which dumps the canonical
// tree of a single source file as JSON. Mostly useful when writing or
// debugging rules.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its canonical tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := uast.NewParser()
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			root, err := parser.Parse(cmd.Context(), content)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(root); err != nil {
				return fmt.Errorf("encode tree: %w", err)
			}

			return nil
		},
	}
}
