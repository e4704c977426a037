// Package commands implements the condense CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/analyzers/findfirst"
	"github.com/Sumatoshi-tech/condense/pkg/analyzers/ifassign"
	"github.com/Sumatoshi-tech/condense/pkg/config"
	"github.com/Sumatoshi-tech/condense/pkg/observability"
	"github.com/Sumatoshi-tech/condense/pkg/uast"
	"github.com/Sumatoshi-tech/condense/pkg/version"
)

const targetLanguage = "C#"

// skipDirs are directory names never descended into when scanning.
var skipDirs = map[string]bool{
	".git": true, "bin": true, "obj": true, "node_modules": true,
}

// engine bundles the parser, rule runner, and telemetry shared by the
// analyze and fix commands.
type engine struct {
	parser  *uast.Parser
	runner  *analyze.Runner
	metrics *observability.AnalysisMetrics
	logger  *observability.Providers
	cfg     *config.Config
}

func newEngine(configFile string) (*engine, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	providers, err := observability.Init(observability.Config{
		ServiceName:    "condense",
		ServiceVersion: version.Version,
		Environment:    cfg.Observability.Environment,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.Insecure,
		LogLevel:       parseLogLevel(cfg.Logging.Level),
		LogJSON:        cfg.Logging.JSON,
	})
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	parser, err := uast.NewParser()
	if err != nil {
		return nil, err
	}

	return &engine{
		parser:  parser,
		runner:  analyze.NewRunner(buildRules(cfg)...),
		metrics: metrics,
		logger:  &providers,
		cfg:     cfg,
	}, nil
}

func (e *engine) shutdown(ctx context.Context) {
	if err := e.logger.Shutdown(ctx); err != nil {
		e.logger.Logger.WarnContext(ctx, "telemetry shutdown failed", "error", err)
	}
}

// buildRules constructs the enabled rule instances, each owning its
// configured severity.
func buildRules(cfg *config.Config) []analyze.Rule {
	var rules []analyze.Rule

	if cfg.RuleEnabled(ifassign.RuleID) {
		rules = append(rules, ifassign.New(cfg.RuleSeverity(ifassign.RuleID)))
	}

	if cfg.RuleEnabled(findfirst.RuleID) {
		rules = append(rules, findfirst.New(cfg.RuleSeverity(findfirst.RuleID)))
	}

	return rules
}

// collectFiles expands the given paths into the list of candidate source
// files, descending into directories.
func (e *engine) collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)

			continue
		}

		walkErr := filepath.WalkDir(path, func(entryPath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				if skipDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".") && entry.Name() != "." {
					return filepath.SkipDir
				}

				return nil
			}

			if e.parser.IsSupported(entryPath) {
				files = append(files, entryPath)
			}

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", path, walkErr)
		}
	}

	return files, nil
}

// analyzeFile parses one file and runs the rules over it. Files whose
// detected language is not C# are skipped with a nil file.
func (e *engine) analyzeFile(ctx context.Context, path string) (*analyze.File, []analyze.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	if lang := enry.GetLanguage(filepath.Base(path), content); lang != targetLanguage {
		e.logger.Logger.DebugContext(ctx, "skipping file", "path", path, "language", lang)

		return nil, nil, nil
	}

	started := time.Now()

	root, err := e.parser.Parse(ctx, content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	file := &analyze.File{Path: path, Source: content, Root: root}

	results, err := e.runner.Run(ctx, file)
	if err != nil {
		return nil, nil, err
	}

	e.metrics.RecordFile(ctx, time.Since(started))

	for _, result := range results {
		e.metrics.RecordDiagnostic(ctx, result.Diagnostic.RuleID)
	}

	return file, results, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
