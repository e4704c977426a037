package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal       = "condense.files.total"
	metricDiagnosticsTotal = "condense.diagnostics.total"
	metricFixesTotal       = "condense.fixes.total"
	metricAnalysisDuration = "condense.analysis.duration.seconds"

	attrRule = "rule"
)

// durationBucketBoundaries covers sub-millisecond single-file checks up
// to minute-scale directory scans.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5, 15, 60}

// AnalysisMetrics holds the OTel instruments for the analysis pipeline.
type AnalysisMetrics struct {
	filesTotal       metric.Int64Counter
	diagnosticsTotal metric.Int64Counter
	fixesTotal       metric.Int64Counter
	analysisDuration metric.Float64Histogram
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Total number of files analyzed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	diagnostics, err := mt.Int64Counter(metricDiagnosticsTotal,
		metric.WithDescription("Total number of diagnostics emitted"),
		metric.WithUnit("{diagnostic}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDiagnosticsTotal, err)
	}

	fixes, err := mt.Int64Counter(metricFixesTotal,
		metric.WithDescription("Total number of fixes applied"),
		metric.WithUnit("{fix}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFixesTotal, err)
	}

	duration, err := mt.Float64Histogram(metricAnalysisDuration,
		metric.WithDescription("Per-file analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAnalysisDuration, err)
	}

	return &AnalysisMetrics{
		filesTotal:       files,
		diagnosticsTotal: diagnostics,
		fixesTotal:       fixes,
		analysisDuration: duration,
	}, nil
}

// RecordFile records one analyzed file and its duration.
func (am *AnalysisMetrics) RecordFile(ctx context.Context, duration time.Duration) {
	am.filesTotal.Add(ctx, 1)
	am.analysisDuration.Record(ctx, duration.Seconds())
}

// RecordDiagnostic records one emitted diagnostic for a rule.
func (am *AnalysisMetrics) RecordDiagnostic(ctx context.Context, ruleID string) {
	am.diagnosticsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrRule, ruleID)))
}

// RecordFixes records applied fixes.
func (am *AnalysisMetrics) RecordFixes(ctx context.Context, count int64) {
	am.fixesTotal.Add(ctx, count)
}
