package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/config"
)

type analyzeOptions struct {
	configFile string
	format     string
	noColor    bool
}

// NewAnalyzeCommand creates the analyze subcommand.
func NewAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Report rewrite opportunities without changing files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (YAML)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	ctx := cmd.Context()

	eng, err := newEngine(opts.configFile)
	if err != nil {
		return err
	}
	defer eng.shutdown(ctx)

	format := eng.cfg.Output.Format
	if opts.format != "" {
		format = opts.format
	}

	if opts.noColor || !eng.cfg.Output.Color {
		color.NoColor = true
	}

	files, err := eng.collectFiles(args)
	if err != nil {
		return err
	}

	started := time.Now()

	var diagnostics []analyze.Diagnostic

	analyzed := 0

	for _, path := range files {
		file, results, err := eng.analyzeFile(ctx, path)
		if err != nil {
			return err
		}

		if file == nil {
			continue
		}

		analyzed++

		for _, result := range results {
			diagnostics = append(diagnostics, result.Diagnostic)
		}
	}

	if err := renderDiagnostics(cmd, format, diagnostics); err != nil {
		return err
	}

	if format == config.FormatTable {
		cmd.Printf("%s analyzed, %s found in %s\n",
			english.Plural(analyzed, "file", ""),
			english.Plural(len(diagnostics), "suggestion", ""),
			time.Since(started).Round(time.Millisecond))
	}

	return nil
}

func renderDiagnostics(cmd *cobra.Command, format string, diagnostics []analyze.Diagnostic) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(diagnostics); err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}

		return nil
	case config.FormatYAML:
		out, err := yaml.Marshal(diagnostics)
		if err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}

		cmd.Print(string(out))

		return nil
	default:
		renderTable(cmd, diagnostics)

		return nil
	}
}

func renderTable(cmd *cobra.Command, diagnostics []analyze.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"LOCATION", "SEVERITY", "RULE", "MESSAGE"})

	for _, diag := range diagnostics {
		location := diag.Path
		if diag.Pos != nil {
			location = fmt.Sprintf("%s:%d:%d", diag.Path, diag.Pos.StartLine, diag.Pos.StartCol)
		}

		tw.AppendRow(table.Row{location, colorSeverity(diag.Severity), diag.RuleID, diag.Message})
	}

	tw.Render()
}

func colorSeverity(severity analyze.Severity) string {
	switch severity {
	case analyze.SeverityError:
		return color.New(color.FgRed).Sprint(severity)
	case analyze.SeverityWarning:
		return color.New(color.FgYellow).Sprint(severity)
	case analyze.SeverityInfo:
		return color.New(color.FgCyan).Sprint(severity)
	default:
		return string(severity)
	}
}
