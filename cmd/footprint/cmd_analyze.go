package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	adapters "github.com/ochairo/footprint/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/footprint/internal/domain-orchestrators"
	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
	"github.com/ochairo/footprint/internal/domain/interfaces/repositories"
	"github.com/ochairo/footprint/internal/external-adapters/gpg"
	"github.com/ochairo/footprint/internal/external-adapters/jsoncache"
	"github.com/ochairo/footprint/internal/external-adapters/metadata"
	"github.com/ochairo/footprint/internal/external-adapters/promfile"
	"github.com/ochairo/footprint/internal/output"
)

type analyzeOptions struct {
	artifact    string
	platform    string
	metadata    string
	noLog       bool
	noCache     bool
	writeReport bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Break a build artifact down by content category",
		Long: `Analyze a build artifact and print its composition breakdown.

Sources are tried in order and the first one with data wins:
  1. build-tool metadata (--metadata)
  2. the artifact itself: APK/AAB/IPA entries or output directory files
  3. the last build section of the editor log, if it belongs to this project
  4. the last breakdown cached for this project

Analysis never fails because a source is missing; with no data at all the
breakdown is empty and marked noData.`,
		Example: `  # Analyze an APK
  footprint analyze --artifact Builds/game.apk --platform android

  # Use packed-size metadata exported by the build and write build_metrics.json
  footprint analyze --artifact Builds/WebGL --platform webgl --metadata Builds/packed.json --write-report

  # Sign the written report
  FOOTPRINT_REPORT_SIGNING_PASSPHRASE=secret footprint analyze --artifact Builds/game.ipa \
    --platform ios --write-report --sign-key ci-key.asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAnalyze(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.artifact, "artifact", "", "build artifact file or directory (required)")
	f.StringVar(&opts.platform, "platform", "", "build target: android, ios, webgl, windows, windows64, osx, linux64 (required)")
	f.StringVar(&opts.metadata, "metadata", "", "packed-size metadata file (.json, .jsonc, .yaml)")
	f.BoolVar(&opts.noLog, "no-log", false, "do not read the editor log")
	f.BoolVar(&opts.noCache, "no-cache", false, "neither read nor update the composition cache")
	f.BoolVar(&opts.writeReport, "write-report", false, "write "+orchestrators.ReportFileName+" to the reports directory")
	f.String("log", "", "editor log path (default is the platform's editor log)")
	f.String("cache", "", "composition cache file (default is <project>/BuildReports/composition_cache.json)")
	f.Int("top", entities.DefaultTopContributors, "number of largest items to list (1-20)")
	f.StringSlice("exclude", nil, "extra exclude pattern for directory walks (repeatable, doublestar syntax)")
	f.String("reports-dir", "", "report directory (default is <project>/BuildReports)")
	f.String("sign-key", "", "armored private key used to sign the written report")
	f.String("metrics-file", "", "write Prometheus textfile metrics to this path")

	bindKey(f, "log", "analysis.editor_log_path")
	bindKey(f, "cache", "cache.path")
	bindKey(f, "top", "analysis.top_contributors")
	bindKey(f, "exclude", "analysis.exclude_patterns")
	bindKey(f, "reports-dir", "report.dir")
	bindKey(f, "sign-key", "report.signing_key_path")
	bindKey(f, "metrics-file", "report.metrics_file")

	_ = cmd.MarkFlagRequired("artifact")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func (a *app) runAnalyze(ctx context.Context, opts analyzeOptions) error {
	platform := entities.ParsePlatform(opts.platform)
	if !platform.IsKnown() {
		a.logger.Warn("Unknown platform, the artifact itself will not be inspected", interfaces.F("platform", opts.platform))
	}

	location, err := entities.NewBuildArtifactLocation(opts.artifact, platform)
	if err != nil {
		return err
	}

	req := orchestrators.AnalysisRequest{
		Location: location,
		Metadata: a.loadMetadata(opts.metadata),
		Project:  entities.NewProject(a.cfg.ProjectRoot()),
	}

	analyzer, locator := a.newAnalyzer(opts)

	if !opts.writeReport {
		breakdown := analyzer.Analyze(ctx, req)
		if err := a.writeMetrics(func(e *promfile.Exporter) { e.Observe(platform, breakdown) }); err != nil {
			return err
		}
		return a.formatter.PrintBreakdown(breakdown)
	}

	// Layer 1: report collaborators
	var signer gateways.ReportSigner
	if a.cfg.Report.SigningKeyPath != "" {
		s, err := gpg.NewSignerFromFile(a.cfg.Report.SigningKeyPath, a.cfg.Report.SigningPassphrase)
		if err != nil {
			return fmt.Errorf("failed to load signing key: %w", err)
		}
		a.logger.Debug("Loaded signing key", interfaces.F("fingerprint", s.Fingerprint()))
		signer = s
	}

	// Layer 2: orchestrator
	orchestrator := orchestrators.NewReportOrchestrator(
		analyzer,
		locator,
		jsoncache.NewReportFile(),
		adapters.NewReportChecksum(),
		signer,
		a.logger,
		orchestrators.ReportOrchestratorConfig{ReportsDir: a.cfg.ReportsDir()},
	)

	result, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}
	if err := a.writeMetrics(func(e *promfile.Exporter) { e.ObserveReport(result.Report) }); err != nil {
		return err
	}

	if a.formatter.Format != output.FormatTable {
		return a.formatter.Print(result.Report)
	}
	if err := a.formatter.PrintBreakdown(result.Report.Composition); err != nil {
		return err
	}
	a.formatter.PrintInfo("\n" + result.GetSummary())
	return nil
}

// writeMetrics exports gauges to the configured metrics file, if any
func (a *app) writeMetrics(observe func(*promfile.Exporter)) error {
	path := a.cfg.Report.MetricsFile
	if path == "" {
		return nil
	}

	exporter := promfile.NewExporter()
	observe(exporter)
	if err := exporter.WriteFile(path); err != nil {
		return err
	}
	a.logger.Debug("Wrote composition metrics", interfaces.F("path", path))
	return nil
}

// newAnalyzer wires the data sources. The locator is returned for report descriptions.
func (a *app) newAnalyzer(opts analyzeOptions) (*orchestrators.CompositionAnalyzer, *adapters.ArtifactLocator) {
	exclude, invalid := adapters.NewExcludeFilter(a.cfg.Analysis.ExcludePatterns...)
	for _, p := range invalid {
		a.logger.Warn("Ignoring invalid exclude pattern", interfaces.F("pattern", p))
	}

	locator := adapters.NewArtifactLocator()
	scanner := adapters.NewContainerScanner(
		locator,
		adapters.NewZipInspector(),
		adapters.NewFileSystemWalker(a.logger),
		exclude,
		a.logger,
	)

	var miner gateways.LogMiner
	logPath := ""
	if !opts.noLog {
		miner = adapters.NewEditorLogMiner(a.cfg.Analysis.LogWindowLines, a.logger)
		logPath = a.cfg.Analysis.EditorLogPath
		if logPath == "" {
			logPath = adapters.DefaultEditorLogPath()
		}
	}

	var cache repositories.CompositionCache
	if a.cfg.Cache.Enabled && !opts.noCache {
		cache = jsoncache.NewFileCache(a.cfg.CachePath(), a.logger)
	}

	analyzer := orchestrators.NewCompositionAnalyzer(
		adapters.NewPackedMetadataReader(exclude),
		scanner,
		miner,
		cache,
		a.logger,
		orchestrators.CompositionAnalyzerConfig{
			TopContributors: a.cfg.Analysis.TopContributors,
			EditorLogPath:   logPath,
		},
	)
	return analyzer, locator
}

// loadMetadata parses the metadata file; an unreadable file counts as no metadata
func (a *app) loadMetadata(path string) entities.MetadataSource {
	if path == "" {
		return entities.NoMetadata{}
	}

	items, err := metadata.NewParser().ParseFile(path)
	if err != nil {
		a.logger.Warn("Ignoring unreadable build metadata", interfaces.F("path", path), interfaces.Err(err))
		return entities.NoMetadata{}
	}
	return entities.ResolveMetadata(items)
}
