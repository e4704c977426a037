package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/rewrite"
)

type fixOptions struct {
	configFile string
	diff       bool
	write      bool
}

// NewFixCommand creates the fix subcommand.
func NewFixCommand() *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply suggested rewrites",
		Long: `Fix re-analyzes the given paths and applies every non-overlapping
suggested rewrite. Without --write or --diff the fixed source is printed
to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (YAML)")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "print unified diffs instead of fixed sources")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite files in place")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *fixOptions) error {
	ctx := cmd.Context()

	eng, err := newEngine(opts.configFile)
	if err != nil {
		return err
	}
	defer eng.shutdown(ctx)

	files, err := eng.collectFiles(args)
	if err != nil {
		return err
	}

	started := time.Now()
	totalApplied := 0
	changedFiles := 0

	for _, path := range files {
		applied, err := fixFile(cmd, eng, path, opts)
		if err != nil {
			return err
		}

		if applied > 0 {
			changedFiles++
		}

		totalApplied += applied
	}

	if opts.write {
		cmd.Printf("%s applied across %s in %s\n",
			english.Plural(totalApplied, "fix", "fixes"),
			english.Plural(changedFiles, "file", ""),
			time.Since(started).Round(time.Millisecond))
	}

	return nil
}

func fixFile(cmd *cobra.Command, eng *engine, path string, opts *fixOptions) (int, error) {
	ctx := cmd.Context()

	file, results, err := eng.analyzeFile(ctx, path)
	if err != nil {
		return 0, err
	}

	if file == nil {
		return 0, nil
	}

	fixed, applied, err := analyze.ApplyFixes(file, results)
	if err != nil {
		return 0, fmt.Errorf("fix %s: %w", path, err)
	}

	if applied == 0 {
		return 0, nil
	}

	eng.metrics.RecordFixes(ctx, int64(applied))

	switch {
	case opts.diff:
		cmd.Print(rewrite.DiffText(file.Source, fixed))
	case opts.write:
		info, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", path, err)
		}

		if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
			return 0, fmt.Errorf("write %s: %w", path, err)
		}

		eng.logger.Logger.InfoContext(ctx, "rewrote file", "path", path, "fixes", applied)
	default:
		cmd.Print(string(fixed))
	}

	return applied, nil
}
