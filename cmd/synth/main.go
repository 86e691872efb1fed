package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/infrastructure/config"
	"github.com/threatforge/insider-synth/internal/infrastructure/export"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
	"github.com/threatforge/insider-synth/internal/infrastructure/telemetry"
	"github.com/threatforge/insider-synth/internal/metrics"
	"github.com/threatforge/insider-synth/internal/service/analysis"
	"github.com/threatforge/insider-synth/internal/service/generation"
	"github.com/threatforge/insider-synth/internal/service/labeling"
	"github.com/threatforge/insider-synth/internal/service/noise"
	"github.com/threatforge/insider-synth/internal/service/simulation"
	"github.com/threatforge/insider-synth/internal/service/workforce"
)

// Command-line flags
var (
	configPath     = flag.String("config", config.DefaultPath, "Path to configuration file")
	mode           = flag.String("mode", "generate", "Operation mode: generate, analyze")
	employees      = flag.Int("employees", 0, "Number of employees to simulate (max 10000)")
	days           = flag.Int("days", 0, "Number of days to simulate (max 1000)")
	maliciousRatio = flag.Float64("malicious-ratio", -1, "Fraction of employees in the malicious cohort [0,1]")
	seed           = flag.Int64("seed", 0, "Random seed; 0 derives one from the clock")
	outputDir      = flag.String("output-dir", "", "Directory for exported files")
	outputPrefix   = flag.String("output", "", "Filename prefix for exported files")
	format         = flag.String("format", "", "Dataset export format: csv, json, both")
	input          = flag.String("input", "", "Dataset file to analyze (analyze mode)")
	withNoise      = flag.Bool("noise", false, "Run the noise injection pass and export the noised dataset")
	burnNoiseRate  = flag.Float64("burn-noise-rate", -1, "Per-row burn noise rate [0,1]")
	printNoiseRate = flag.Float64("print-noise-rate", -1, "Per-row print noise rate [0,1]")
	entryNoiseRate = flag.Float64("entry-noise-rate", -1, "Per-row entry-time noise rate [0,1]")
	gaussianNoise  = flag.Bool("gaussian-noise", false, "Use gaussian instead of uniform noise deltas")
	skipAnalysis   = flag.Bool("skip-analysis", false, "Skip summary statistics and the analysis report")
	withLabels     = flag.Bool("labels", false, "Relabel maliciousness per day instead of per employee")
	workers        = flag.Int("workers", 0, "Concurrent employee simulations; 0 means one per CPU")
	metricsAddr    = flag.String("metrics-addr", "", "Listen address for the Prometheus endpoint; empty disables it")
	verbose        = flag.Bool("verbose", false, "Log at debug level")
	quiet          = flag.Bool("quiet", false, "Log errors only")
)

func main() {
	flag.Parse()

	if *verbose && *quiet {
		fmt.Fprintln(os.Stderr, "-verbose and -quiet are mutually exclusive")
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := telemetry.SetupLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed",
			"mode", *mode,
			"error", err,
			"retryable", errors.IsRetryable(err))
		os.Exit(1)
	}
}

// loadConfig layers the file/env configuration, applies the flags the user
// actually set on top, and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "employees":
			cfg.Generation.Employees = *employees
		case "days":
			cfg.Generation.Days = *days
		case "malicious-ratio":
			cfg.Generation.MaliciousRatio = *maliciousRatio
		case "seed":
			cfg.Generation.Seed = *seed
		case "workers":
			cfg.Generation.Workers = *workers
		case "output-dir":
			cfg.Export.OutputDir = *outputDir
		case "output":
			cfg.Export.Prefix = *outputPrefix
		case "format":
			cfg.Export.Format = *format
		case "noise":
			cfg.Noise.Enabled = *withNoise
		case "burn-noise-rate":
			cfg.Noise.BurnRate = *burnNoiseRate
		case "print-noise-rate":
			cfg.Noise.PrintRate = *printNoiseRate
		case "entry-noise-rate":
			cfg.Noise.EntryTimeRate = *entryNoiseRate
		case "gaussian-noise":
			cfg.Noise.Gaussian = *gaussianNoise
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		case "verbose":
			cfg.LogLevel = "debug"
		case "quiet":
			cfg.LogLevel = "error"
		}
	})

	if *mode == "analyze" && *input == "" {
		return nil, fmt.Errorf("analyze mode requires -input")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	otelProvider, err := telemetry.InitializeOpenTelemetry(ctx, &telemetry.Config{
		ServiceName:    "insider-synth",
		ServiceVersion: version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SamplingRate:   cfg.Telemetry.SamplingRate,
		Insecure:       cfg.Telemetry.Insecure,
		ExportTimeout:  30 * time.Second,
		BatchTimeout:   5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	registry, err := metrics.NewRegistry("insider-synth")
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		srv := startMetricsServer(cfg.Metrics.Addr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	exporter := export.NewFileExporter(newZapLogger(cfg.Environment), registry)

	switch *mode {
	case "generate":
		return runGenerate(ctx, cfg, registry, exporter, logger)
	case "analyze":
		return runAnalyze(ctx, cfg, exporter, logger)
	default:
		return fmt.Errorf("unknown mode %q, expected generate or analyze", *mode)
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, registry *metrics.Registry, exporter export.Exporter, logger *slog.Logger) error {
	tracer := telemetry.Tracer("insider-synth/cmd")

	effectiveSeed := cfg.Generation.Seed
	if effectiveSeed == 0 {
		effectiveSeed = time.Now().UnixNano()
	}
	rng := random.New(effectiveSeed)
	logger.Info("starting generation run",
		"employees", cfg.Generation.Employees,
		"days", cfg.Generation.Days,
		"malicious_ratio", cfg.Generation.MaliciousRatio,
		"seed", effectiveSeed)

	ctx, staffSpan := tracer.Start(ctx, "synth.workforce")
	staff, err := workforce.NewService().Generate(ctx, rng.Derive("workforce"),
		cfg.Generation.Employees, cfg.Generation.MaliciousRatio)
	staffSpan.End()
	if err != nil {
		return fmt.Errorf("generating workforce: %w", err)
	}

	geo, err := cfg.Simulation.GeoTables()
	if err != nil {
		return fmt.Errorf("building destination tables: %w", err)
	}
	gen := generation.NewService(
		simulation.NewTravelSimulatorWith(simulation.TravelSettings{
			MinTripDays: cfg.Simulation.MinTripDays,
			MaxTripDays: cfg.Simulation.MaxTripDays,
			Geo:         geo,
		}),
		simulation.PrintSampler{},
		simulation.BurnSampler{},
		simulation.AccessSampler{Hours: simulation.WorkHourBounds{
			MinStartHour: cfg.Simulation.MinWorkHour,
			MaxEndHour:   cfg.Simulation.MaxWorkHour,
			MinDuration:  cfg.Simulation.MinWorkDurationHours,
		}},
		registry,
		logger,
	)

	genStart := time.Now()
	ctx, genSpan := tracer.Start(ctx, "synth.generate")
	dataset, err := gen.Generate(ctx, rng, generation.Request{
		Staff:   staff,
		Days:    cfg.Generation.Days,
		Workers: cfg.Generation.Workers,
	})
	genSpan.End()
	if err != nil {
		return fmt.Errorf("generating dataset: %w", err)
	}
	observeGeneration(time.Since(genStart), dataset)

	if *withLabels {
		ctx, labelSpan := tracer.Start(ctx, "synth.label")
		stats, err := labeling.NewService().Label(ctx, rng.Derive("labels"), dataset)
		labelSpan.End()
		if err != nil {
			return fmt.Errorf("labeling dataset: %w", err)
		}
		observeLabeling(stats)
		registry.RecordFlaggedDays(ctx, "primary", int64(stats.MaliciousFlaggedDays))
		registry.RecordFlaggedDays(ctx, "false_positive", int64(stats.FalsePositiveDays))
		logger.Info("daily labels applied",
			"suspicious_days", stats.SuspiciousDays,
			"false_positive_days", stats.FalsePositiveDays,
			"detection_rate", stats.DetectionRate())
	}

	stamp := time.Now()
	opts := export.Options{
		Directory: cfg.Export.OutputDir,
		Prefix:    cfg.Export.Prefix,
		Format:    export.Format(cfg.Export.Format),
		Timestamp: stamp,
	}

	ctx, exportSpan := tracer.Start(ctx, "synth.export")
	result, err := exporter.ExportDataset(ctx, dataset, opts)
	if err == nil {
		_, err = exporter.WriteDataDictionary(ctx, opts)
	}
	exportSpan.End()
	if err != nil {
		return fmt.Errorf("exporting dataset: %w", err)
	}
	observeExport(result)

	if !*skipAnalysis {
		if err := runSummaries(ctx, tracer, exporter, dataset, opts, logger); err != nil {
			return err
		}
	}

	if cfg.Noise.Enabled {
		ctx, noiseSpan := tracer.Start(ctx, "synth.noise")
		injector := noise.NewService(noise.Params{
			BurnRate:      cfg.Noise.BurnRate,
			PrintRate:     cfg.Noise.PrintRate,
			EntryTimeRate: cfg.Noise.EntryTimeRate,
			Gaussian:      cfg.Noise.Gaussian,
		}, logger)
		stats, err := injector.Inject(ctx, rng.Derive("noise"), dataset)
		noiseSpan.End()
		if err != nil {
			return fmt.Errorf("injecting noise: %w", err)
		}
		observeNoise(stats)
		registry.RecordNoise(ctx, "burn", int64(stats.BurnModifications))
		registry.RecordNoise(ctx, "print", int64(stats.PrintModifications))
		registry.RecordNoise(ctx, "entry_time", int64(stats.EntryTimeModifications))
		registry.RecordNoisedRows(ctx, int64(stats.ModifiedRows))
		logger.Info("noise injected",
			"modified_rows", stats.ModifiedRows,
			"modification_rate", stats.ModificationRate())

		noisedOpts := opts
		noisedOpts.Prefix = opts.Prefix + "_with_noise"
		ctx, reexportSpan := tracer.Start(ctx, "synth.export_noised")
		noisedResult, err := exporter.ExportDataset(ctx, dataset, noisedOpts)
		reexportSpan.End()
		if err != nil {
			return fmt.Errorf("exporting noised dataset: %w", err)
		}
		observeExport(noisedResult)
	}

	logger.Info("generation run complete",
		"run_id", dataset.RunID,
		"records", len(dataset.Records),
		"files", len(result.Files),
		"output_dir", cfg.Export.OutputDir)
	return nil
}

func runAnalyze(ctx context.Context, cfg *config.Config, exporter export.Exporter, logger *slog.Logger) error {
	tracer := telemetry.Tracer("insider-synth/cmd")

	ctx, readSpan := tracer.Start(ctx, "synth.read")
	dataset, err := exporter.ReadDataset(ctx, *input)
	readSpan.End()
	if err != nil {
		return fmt.Errorf("reading dataset %s: %w", *input, err)
	}
	logger.Info("dataset loaded",
		"path", *input,
		"records", len(dataset.Records),
		"employees", dataset.EmployeeCount())

	opts := export.Options{
		Directory: cfg.Export.OutputDir,
		Prefix:    cfg.Export.Prefix,
		Format:    export.Format(cfg.Export.Format),
		Timestamp: time.Now(),
	}
	return runSummaries(ctx, tracer, exporter, dataset, opts, logger)
}

func runSummaries(ctx context.Context, tracer trace.Tracer, exporter export.Exporter, dataset *activity.Dataset, opts export.Options, logger *slog.Logger) error {
	ctx, span := tracer.Start(ctx, "synth.analyze")
	defer span.End()

	summary, err := analysis.NewService(logger).Analyze(ctx, dataset)
	if err != nil {
		return fmt.Errorf("analyzing dataset: %w", err)
	}
	if _, err := exporter.ExportSummaries(ctx, summary, opts); err != nil {
		return fmt.Errorf("exporting summaries: %w", err)
	}
	if _, err := exporter.WriteAnalysisReport(ctx, summary, opts); err != nil {
		return fmt.Errorf("writing analysis report: %w", err)
	}
	return nil
}

func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
	return srv
}

func newZapLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
