package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/service/analysis"
)

// FileExporter implements the Exporter interface on the local filesystem.
type FileExporter struct {
	logger  *zap.Logger
	metrics MetricsCollector
}

// NewFileExporter creates a filesystem exporter. The metrics collector may
// be nil when export instrumentation is not wanted.
func NewFileExporter(logger *zap.Logger, metrics MetricsCollector) *FileExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileExporter{
		logger:  logger,
		metrics: metrics,
	}
}

// ExportDataset writes the dataset in the configured encodings. File names
// follow the {prefix}_{timestamp}.{ext} convention.
func (e *FileExporter) ExportDataset(ctx context.Context, dataset *activity.Dataset, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, "EXPORT_INTERRUPTED", "dataset export interrupted")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if dataset == nil || len(dataset.Records) == 0 {
		return nil, errors.ErrEmptyDataset
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to create export directory %s", opts.Directory)).WithCause(err)
	}

	start := time.Now()
	stamp := opts.stamp()
	result := &Result{Records: len(dataset.Records)}

	if opts.format().includesCSV() {
		csvStart := time.Now()
		path := filepath.Join(opts.Directory, fmt.Sprintf("%s_%s.csv", opts.Prefix, stamp))
		if err := writeArtifact(path, func(w io.Writer) error {
			return writeDatasetCSV(w, dataset)
		}); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, File{Kind: "dataset_csv", Path: path})
		e.recordExport(ctx, csvStart, string(FormatCSV), len(dataset.Records))
	}
	if opts.format().includesJSON() {
		jsonStart := time.Now()
		path := filepath.Join(opts.Directory, fmt.Sprintf("%s_%s.json", opts.Prefix, stamp))
		if err := writeArtifact(path, func(w io.Writer) error {
			return writeDatasetJSON(w, dataset)
		}); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, File{Kind: "dataset_json", Path: path})
		e.recordExport(ctx, jsonStart, string(FormatJSON), len(dataset.Records))
	}

	result.Duration = time.Since(start)
	e.logger.Info("dataset exported",
		zap.String("prefix", opts.Prefix),
		zap.String("format", string(opts.format())),
		zap.Int("records", result.Records),
		zap.Int("files", len(result.Files)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// ExportSummaries writes the group, employee and daily summary CSVs.
func (e *FileExporter) ExportSummaries(ctx context.Context, summary *analysis.Summary, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, "EXPORT_INTERRUPTED", "summary export interrupted")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.NewValidationError("MISSING_SUMMARY", "analysis summary is required")
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to create export directory %s", opts.Directory)).WithCause(err)
	}

	start := time.Now()
	stamp := opts.stamp()
	result := &Result{
		Records: len(summary.Groups) + len(summary.Employees) + len(summary.Daily),
	}

	artifacts := []struct {
		kind  string
		write func(io.Writer) error
	}{
		{"group_summary", func(w io.Writer) error { return writeGroupSummaryCSV(w, summary.Groups) }},
		{"employee_summary", func(w io.Writer) error { return writeEmployeeSummaryCSV(w, summary.Employees) }},
		{"daily_summary", func(w io.Writer) error { return writeDailySummaryCSV(w, summary.Daily) }},
	}
	for _, a := range artifacts {
		path := filepath.Join(opts.Directory, fmt.Sprintf("%s_%s_%s.csv", opts.Prefix, stamp, a.kind))
		if err := writeArtifact(path, a.write); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, File{Kind: a.kind, Path: path})
	}

	result.Duration = time.Since(start)
	e.recordExport(ctx, start, "summary_csv", result.Records)
	e.logger.Info("summaries exported",
		zap.String("prefix", opts.Prefix),
		zap.Int("rows", result.Records),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// WriteDataDictionary writes the column documentation artifact.
func (e *FileExporter) WriteDataDictionary(ctx context.Context, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithCode(err, "EXPORT_INTERRUPTED", "data dictionary export interrupted")
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return "", errors.NewIOError(
			fmt.Sprintf("failed to create export directory %s", opts.Directory)).WithCause(err)
	}

	path := filepath.Join(opts.Directory, fmt.Sprintf("data_dictionary_%s.txt", opts.stamp()))
	if err := os.WriteFile(path, []byte(RenderDataDictionary()), 0o644); err != nil {
		return "", errors.NewIOError(fmt.Sprintf("failed to write %s", path)).WithCause(err)
	}
	e.logger.Info("data dictionary written", zap.String("path", path))
	return path, nil
}

// WriteAnalysisReport renders and writes the analysis report.
func (e *FileExporter) WriteAnalysisReport(ctx context.Context, summary *analysis.Summary, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithCode(err, "EXPORT_INTERRUPTED", "analysis report export interrupted")
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	if summary == nil {
		return "", errors.NewValidationError("MISSING_SUMMARY", "analysis summary is required")
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return "", errors.NewIOError(
			fmt.Sprintf("failed to create export directory %s", opts.Directory)).WithCause(err)
	}

	generatedAt := opts.Timestamp
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	path := filepath.Join(opts.Directory, fmt.Sprintf("analysis_report_%s.txt", opts.stamp()))
	if err := os.WriteFile(path, []byte(RenderReport(summary, generatedAt)), 0o644); err != nil {
		return "", errors.NewIOError(fmt.Sprintf("failed to write %s", path)).WithCause(err)
	}
	e.logger.Info("analysis report written", zap.String("path", path))
	return path, nil
}

// ReadDataset loads a previously exported dataset. The encoding is picked
// by file extension. CSV exports carry no run metadata, so RunID, Seed and
// the generation window come back as zero values there.
func (e *FileExporter) ReadDataset(ctx context.Context, path string) (*activity.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, "IMPORT_INTERRUPTED", "dataset load interrupted")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to open %s", path)).WithCause(err)
	}
	defer f.Close()

	var dataset *activity.Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dataset, err = readDatasetJSON(f)
	case ".csv":
		dataset, err = readDatasetCSV(f)
	default:
		return nil, errors.NewValidationError("UNSUPPORTED_FILE",
			fmt.Sprintf("cannot load dataset from %s, expected a .csv or .json file", path))
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(dataset.Records)),
		zap.Bool("labeled", dataset.Labeled),
		zap.Bool("noised", dataset.Noised))
	return dataset, nil
}

func (e *FileExporter) recordExport(ctx context.Context, start time.Time, format string, records int) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordExport(ctx, float64(time.Since(start).Microseconds())/1000, format, int64(records))
}

// writeArtifact creates the file, runs the writer and keeps the first error,
// including the close error that reports a full disk.
func writeArtifact(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to create %s", path)).WithCause(err)
	}
	writeErr := write(f)
	closeErr := f.Close()
	if writeErr != nil {
		return errors.NewIOError(fmt.Sprintf("failed to write %s", path)).WithCause(writeErr)
	}
	if closeErr != nil {
		return errors.NewIOError(fmt.Sprintf("failed to write %s", path)).WithCause(closeErr)
	}
	return nil
}
