package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"
	"urlcheck/internal/checker"
	"urlcheck/internal/config"
	"urlcheck/internal/pipeline"
	"urlcheck/internal/report"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/metrics"
	"urlcheck/pkg/serrors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// checkFlags holds the raw command line values. Flags that were explicitly
// set override the loaded configuration.
type checkFlags struct {
	configPath  string
	file        string
	target      string
	outputFile  string
	reportFile  string
	metricsFile string
	concurrency int
	timeout     time.Duration
	verbose     bool
}

func (f *checkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output-file") {
		cfg.Output.File = f.outputFile
	}
	if changed("report-file") {
		cfg.Output.ReportFile = f.reportFile
	}
	if changed("metrics-file") {
		cfg.Metrics.TextfilePath = f.metricsFile
	}
	if changed("concurrency") {
		cfg.Checker.Concurrency = f.concurrency
	}
	if changed("timeout") {
		cfg.Checker.Timeout = f.timeout
	}
}

// checkCommand constructs the root command. It checks either every valid line
// of --file, appending successes to --output-file, or the single --target,
// printing its outcome.
func checkCommand() *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "urlcheck",
		Short: "Cleans URLs from an input file and verifies their status codes",
		Long: "Cleans URLs from an input file and verifies their status codes. " +
			"Valid URLs answering 200, 300 or 301 are appended to the output file.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			f.apply(cmd, cfg)
			logger.Setup(cfg.Environment, f.verbose)

			if f.file == "" && f.target == "" {
				return serrors.With(serrors.ErrUsage, "no target or file provided")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runCheck(ctx, cmd.OutOrStdout(), cfg, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "config.yml", "Config file path, read when it exists")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "File containing the URLs to clean and verify")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Single URL to verify, printed instead of written to a file")
	cmd.Flags().StringVarP(&f.outputFile, "output-file", "o", config.DefaultOutputFile,
		"Output file where valid URLs and their status are appended")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "n", 1, "Maximum number of requests in flight")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Per-request timeout (0 keeps the HTTP client default)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log failed URLs and outbound requests to stderr")
	cmd.Flags().StringVar(&f.reportFile, "report-file", "", "Write a JSON summary of the run to this file")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write run metrics in Prometheus textfile format")
	cmd.MarkFlagsMutuallyExclusive("file", "target")

	return cmd
}

func runCheck(ctx context.Context, out io.Writer, cfg *config.Config, f checkFlags) error {
	var (
		meter metric.Meter
		reg   *prometheus.Registry
	)
	if cfg.Metrics.TextfilePath != "" {
		reg = prometheus.NewRegistry()
		mp, err := metrics.NewMeterProvider(reg)
		if err != nil {
			return fmt.Errorf("could not set up metrics: %w", err)
		}
		defer func() { _ = mp.Shutdown(context.WithoutCancel(ctx)) }()
		meter = mp.Meter(metrics.MeterName)
	}

	c, err := checker.New(checker.NewHTTPClient(cfg.Checker.Timeout), meter)
	if err != nil {
		return fmt.Errorf("could not create checker: %w", err)
	}
	p := pipeline.New(c, pipeline.NewOptions(cfg))

	started := time.Now()
	var (
		summary    domain.Summary
		outputPath string
	)
	if f.target != "" {
		summary, err = p.CheckTarget(ctx, f.target, pipeline.NewTerminalSink(out))
	} else {
		summary, outputPath, err = p.CheckFile(ctx, f.file, cfg.Output.File)
	}

	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	if interrupted {
		logger.Warn(ctx, "run interrupted, results checked so far were kept",
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed))
	}

	// metrics of a failed run are not written
	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath, reg); err != nil {
			logger.Warn(ctx, "could not write metrics", zap.Error(err))
		}
	}

	if cfg.Output.ReportFile != "" {
		if err := report.WriteFile(cfg.Output.ReportFile, report.Report{
			Summary:    summary,
			OutputFile: outputPath,
			StartedAt:  started,
			Duration:   time.Since(started),
		}); err != nil {
			logger.Warn(ctx, "could not write report", zap.Error(err))
		}
	}

	if f.target == "" {
		_, _ = fmt.Fprintf(out, "It is ready, total of correct URLs: %d\n", summary.Succeeded)
		_, _ = fmt.Fprintf(out, "Total of failed URLs: %d\n", summary.Failed)
		_, _ = fmt.Fprintf(out, "Open file in %s\n", outputPath)
	}

	logger.Info(ctx, "run finished",
		zap.Int("checked", summary.Checked()),
		zap.Int("rejected", summary.Rejected),
		zap.Duration("took", time.Since(started)))

	return err
}
