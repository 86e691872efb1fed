package export

import (
	"context"
	"fmt"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/service/analysis"
)

// Format selects the dataset file encodings to write.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatBoth Format = "both"
)

// ParseFormat validates a format name from configuration or flags.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatBoth:
		return Format(s), nil
	default:
		return "", errors.NewValidationError("INVALID_FORMAT",
			fmt.Sprintf("export format must be csv, json or both, got %q", s))
	}
}

func (f Format) includesCSV() bool  { return f == FormatCSV || f == FormatBoth }
func (f Format) includesJSON() bool { return f == FormatJSON || f == FormatBoth }

// Exporter writes datasets and their companion artifacts to disk and loads
// previously exported datasets back.
type Exporter interface {
	// ExportDataset writes the dataset under timestamped names derived
	// from the options.
	ExportDataset(ctx context.Context, dataset *activity.Dataset, opts Options) (*Result, error)

	// ExportSummaries writes the group, employee and daily summaries as
	// CSV files next to the dataset.
	ExportSummaries(ctx context.Context, summary *analysis.Summary, opts Options) (*Result, error)

	// WriteDataDictionary writes the column documentation artifact and
	// returns its path.
	WriteDataDictionary(ctx context.Context, opts Options) (string, error)

	// WriteAnalysisReport renders the human-readable report for a summary
	// and returns its path.
	WriteAnalysisReport(ctx context.Context, summary *analysis.Summary, opts Options) (string, error)

	// ReadDataset loads a dataset from a CSV or JSON export.
	ReadDataset(ctx context.Context, path string) (*activity.Dataset, error)
}

// MetricsCollector defines the interface for export metrics collection
type MetricsCollector interface {
	RecordExport(ctx context.Context, durationMS float64, format string, records int64)
}

// Options configures one export call.
type Options struct {
	// Directory receives the files and is created if missing.
	Directory string

	// Prefix starts every dataset and summary filename.
	Prefix string

	// Format picks the dataset encodings. Summary files are always CSV.
	Format Format

	// Timestamp stamps the filenames; the zero value means now. Fixing it
	// lets callers group one run's artifacts under one stamp.
	Timestamp time.Time
}

func (o Options) validate() error {
	if o.Directory == "" {
		return errors.NewValidationError("MISSING_DIRECTORY", "export directory is required")
	}
	if o.Prefix == "" {
		return errors.NewValidationError("MISSING_PREFIX", "export filename prefix is required")
	}
	switch o.Format {
	case FormatCSV, FormatJSON, FormatBoth, "":
	default:
		return errors.NewValidationError("INVALID_FORMAT",
			fmt.Sprintf("export format must be csv, json or both, got %q", o.Format))
	}
	return nil
}

func (o Options) format() Format {
	if o.Format == "" {
		return FormatBoth
	}
	return o.Format
}

func (o Options) stamp() string {
	ts := o.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Format("20060102_150405")
}

// Result lists what one export call produced.
type Result struct {
	Files    []File
	Records  int
	Duration time.Duration
}

// File is one written artifact.
type File struct {
	Kind string
	Path string
}
