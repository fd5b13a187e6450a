package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
	"github.com/ochairo/footprint/internal/domain/services"
)

// ReportFileName is the name of the written build report
const ReportFileName = "build_metrics.json"

// ArtifactDescriber reports the packaging type and shipped size of an artifact
type ArtifactDescriber interface {
	Describe(location entities.BuildArtifactLocation) (entities.ArtifactInfo, uint64, error)
}

// ReportWriter persists a finished build report
type ReportWriter interface {
	WriteReport(path string, report *entities.BuildReport) error
}

// ReportChecksummer writes a checksum file next to a finished report
type ReportChecksummer interface {
	WriteChecksum(ctx context.Context, path string) (checksumPath string, err error)
}

// ReportOrchestratorConfig holds configuration for the report workflow
type ReportOrchestratorConfig struct {
	ReportsDir string
}

// ReportOrchestrator analyzes an artifact and writes the build report envelope
type ReportOrchestrator struct {
	analyzer   *CompositionAnalyzer
	describer  ArtifactDescriber
	writer     ReportWriter
	checksum   ReportChecksummer
	signer     gateways.ReportSigner
	reportsDir string
	logger     interfaces.Logger
	now        func() time.Time
}

// NewReportOrchestrator creates a new report orchestrator.
// checksum and signer may be nil to skip the checksum file and the signature.
func NewReportOrchestrator(
	analyzer *CompositionAnalyzer,
	describer ArtifactDescriber,
	writer ReportWriter,
	checksum ReportChecksummer,
	signer gateways.ReportSigner,
	logger interfaces.Logger,
	config ReportOrchestratorConfig,
) *ReportOrchestrator {
	reportsDir := config.ReportsDir
	if reportsDir == "" {
		reportsDir = "BuildReports"
	}

	return &ReportOrchestrator{
		analyzer:   analyzer,
		describer:  describer,
		writer:     writer,
		checksum:   checksum,
		signer:     signer,
		reportsDir: reportsDir,
		logger:     interfaces.OrNoOp(logger),
		now:        time.Now,
	}
}

// ReportResult contains the result of a report run
type ReportResult struct {
	Report           *entities.BuildReport
	ReportPath       string
	ChecksumPath     string
	SignaturePath    string
	AnalysisDuration time.Duration
	TotalDuration    time.Duration
}

// Run analyzes the artifact, writes the report, then its checksum and signature when configured
func (o *ReportOrchestrator) Run(ctx context.Context, req AnalysisRequest) (*ReportResult, error) {
	startTime := time.Now()
	result := &ReportResult{}

	// Step 1: composition
	breakdown := o.analyzer.Analyze(ctx, req)
	result.AnalysisDuration = time.Since(startTime)

	// Step 2: packaging type and output size
	info, outputSize, err := o.describer.Describe(req.Location)
	if err != nil {
		o.logger.Warn("Failed to describe build artifact", interfaces.F("path", req.Location.Path), interfaces.Err(err))
		info = entities.ArtifactInfo{Type: entities.ArtifactFolder}
	}

	// Step 3: envelope
	result.Report = services.NewBuildReport(req.Location, req.Project, info, outputSize, breakdown, o.now())

	// Step 4: persist
	result.ReportPath = filepath.Join(o.reportsDir, ReportFileName)
	if err := o.writer.WriteReport(result.ReportPath, result.Report); err != nil {
		return result, fmt.Errorf("failed to write report: %w", err)
	}

	// Step 5: checksum file
	if o.checksum != nil {
		sumPath, err := o.checksum.WriteChecksum(ctx, result.ReportPath)
		if err != nil {
			return result, fmt.Errorf("failed to write report checksum: %w", err)
		}
		result.ChecksumPath = sumPath
	}

	// Step 6: detached signature
	if o.signer != nil {
		sigPath, err := o.signer.SignFile(ctx, result.ReportPath)
		if err != nil {
			return result, fmt.Errorf("failed to sign report: %w", err)
		}
		result.SignaturePath = sigPath
	}

	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetSummary returns a human-readable summary of the report run
func (r *ReportResult) GetSummary() string {
	if r.Report == nil {
		return "No report produced"
	}

	composition := r.Report.Composition
	summary := fmt.Sprintf(`Report written: %s
Platform: %s
Artifact: %s
Output size: %s
Composition: %s from %s`,
		r.ReportPath,
		r.Report.Platform,
		r.Report.Artifact.Type,
		humanize.IBytes(r.Report.OutputSizeBytes),
		humanize.IBytes(composition.TotalSize()),
		composition.Source,
	)

	if composition.FromCache {
		summary += " (cached)"
	}
	if r.ChecksumPath != "" {
		summary += fmt.Sprintf("\nChecksum: %s", r.ChecksumPath)
	}
	if r.SignaturePath != "" {
		summary += fmt.Sprintf("\nSignature: %s", r.SignaturePath)
	}

	return summary
}
