package commands //nolint:testpackage // testing internal implementation.

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/condense/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/condense/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestBuildRules(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Rules: map[string]config.RuleConfig{
			"if-assign":  {Enabled: true, Severity: "warning"},
			"find-first": {Enabled: false},
		},
	}

	rules := buildRules(cfg)
	require.Len(t, rules, 1)
	assert.Equal(t, "if-assign", rules[0].ID())
	assert.Equal(t, analyze.SeverityWarning, rules[0].Severity())

	// Unconfigured rules are enabled at info severity.
	rules = buildRules(&config.Config{})
	require.Len(t, rules, 2)
}

func TestCollectFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(relative string) string {
		path := filepath.Join(dir, relative)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("class C {}"), 0o600))

		return path
	}

	keep := write("src/Program.cs")
	write("src/notes.txt")
	write("obj/Generated.cs")
	write(".hidden/Skipped.cs")

	eng, err := newEngine("")
	require.NoError(t, err)

	t.Cleanup(func() { eng.shutdown(context.Background()) })

	files, err := eng.collectFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)

	// Explicit file paths pass through regardless of extension filtering.
	direct := write("src/Other.cs")

	files, err = eng.collectFiles([]string{direct})
	require.NoError(t, err)
	assert.Equal(t, []string{direct}, files)

	_, err = eng.collectFiles([]string{filepath.Join(dir, "absent")})
	assert.Error(t, err)
}

func TestAnalyzeFile_SkipsNonCSharp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main"), 0o600))

	eng, err := newEngine("")
	require.NoError(t, err)

	t.Cleanup(func() { eng.shutdown(context.Background()) })

	file, results, err := eng.analyzeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Nil(t, results)
}

func TestAnalyzeFile_ReportsSuggestions(t *testing.T) {
	t.Parallel()

	source := `class C {
    void M(int x) {
        int y;
        if (x > 0) {
            y = 1;
        } else {
            y = 2;
        }
    }
}`

	dir := t.TempDir()
	path := filepath.Join(dir, "Program.cs")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	eng, err := newEngine("")
	require.NoError(t, err)

	t.Cleanup(func() { eng.shutdown(context.Background()) })

	file, results, err := eng.analyzeFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, file)
	require.Len(t, results, 1)
	assert.Equal(t, "if-assign", results[0].Diagnostic.RuleID)
	assert.Equal(t, path, results[0].Diagnostic.Path)
}
