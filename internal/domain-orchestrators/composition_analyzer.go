// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
	"github.com/ochairo/footprint/internal/domain/interfaces/repositories"
	"github.com/ochairo/footprint/internal/domain/services"
)

// AnalysisRequest is one artifact to analyze
type AnalysisRequest struct {
	Location entities.BuildArtifactLocation
	Metadata entities.MetadataSource
	Project  entities.Project
}

// CompositionAnalyzerConfig holds configuration for the analyzer
type CompositionAnalyzerConfig struct {
	TopContributors int
	EditorLogPath   string
}

// CompositionAnalyzer picks the best available data source for an artifact and builds its breakdown.
// Sources are tried in order: structured metadata, the artifact itself, the editor log, the cache.
// A source that fails or yields nothing hands over to the next one.
type CompositionAnalyzer struct {
	metadata gateways.MetadataReader
	scanner  gateways.ArtifactScanner
	miner    gateways.LogMiner
	cache    repositories.CompositionCache
	builder  *services.BreakdownBuilder
	logPath  string
	logger   interfaces.Logger
}

// NewCompositionAnalyzer creates a new analyzer. Any source may be nil to disable it.
func NewCompositionAnalyzer(
	metadata gateways.MetadataReader,
	scanner gateways.ArtifactScanner,
	miner gateways.LogMiner,
	cache repositories.CompositionCache,
	logger interfaces.Logger,
	config CompositionAnalyzerConfig,
) *CompositionAnalyzer {
	return &CompositionAnalyzer{
		metadata: metadata,
		scanner:  scanner,
		miner:    miner,
		cache:    cache,
		builder:  services.NewBreakdownBuilder(config.TopContributors),
		logPath:  config.EditorLogPath,
		logger:   interfaces.OrNoOp(logger),
	}
}

// Analyze always returns a breakdown; when no source has data it is the empty NoData breakdown
func (a *CompositionAnalyzer) Analyze(ctx context.Context, req AnalysisRequest) *entities.CompositionBreakdown {
	platform := req.Location.Platform

	// Step 1: structured metadata
	if a.metadata != nil && req.Metadata != nil {
		if records := a.metadata.Read(req.Metadata); len(records) > 0 {
			return a.live(req.Project, entities.SourceStructuredMetadata, platform, records, services.Classify)
		}
		a.logger.Debug("Structured metadata has no usable items")
	}

	// Step 2: the container or output directory
	if a.scanner != nil {
		result, err := a.scanner.Scan(ctx, req.Location)
		switch {
		case err != nil:
			a.logScanFailure(req.Location, err)
		case len(result.Records) == 0:
			a.logger.Info("Build artifact has no files", interfaces.F("path", req.Location.Path))
		default:
			return a.live(req.Project, result.Source, platform, result.Records, services.ForPlatform(platform))
		}
	}

	// Step 3: the shared editor log
	if a.miner != nil && a.logPath != "" {
		if records, ok := a.miner.Mine(ctx, a.logPath, req.Project); ok && len(records) > 0 {
			return a.live(req.Project, entities.SourceLogMined, platform, records, services.Classify)
		}
	}

	// Step 4: the last successful breakdown of this project
	if a.cache != nil && req.Project.Identity != "" {
		if cached, ok := a.cache.Load(req.Project.Identity); ok && cached != nil {
			cached.FromCache = true
			cached.Source = entities.SourceCached
			a.logger.Info("Using cached composition breakdown", interfaces.F("project", req.Project.Identity))
			return cached
		}
	}

	a.logger.Warn("No composition data available", interfaces.F("path", req.Location.Path))
	return entities.NewEmptyBreakdown()
}

// live builds a breakdown from fresh records and stores it as the project's latest
func (a *CompositionAnalyzer) live(
	project entities.Project,
	source entities.SourceKind,
	platform entities.Platform,
	records []entities.AssetRecord,
	classify services.FileClassifier,
) *entities.CompositionBreakdown {
	deduped := services.Dedupe(records)
	breakdown := a.builder.Build(source, platform, deduped, classify)

	a.logger.Info("Built composition breakdown",
		interfaces.F("source", source),
		interfaces.F("records", len(records)),
		interfaces.F("unique", len(deduped)),
		interfaces.F("total_size", breakdown.TotalSize()))

	if a.cache != nil && project.Identity != "" {
		a.cache.Save(project.Identity, breakdown)
	}
	return breakdown
}

func (a *CompositionAnalyzer) logScanFailure(location entities.BuildArtifactLocation, err error) {
	fields := []interfaces.Field{
		interfaces.F("path", location.Path),
		interfaces.F("platform", location.Platform),
		interfaces.Err(err),
	}
	switch {
	case errors.Is(err, entities.ErrUnsupportedPlatform):
		a.logger.Info("No container rules for platform", fields...)
	case errors.Is(err, entities.ErrArchiveUnreadable):
		a.logger.Warn("Build container is unreadable", fields...)
	default:
		a.logger.Warn("Failed to scan build artifact", fields...)
	}
}
