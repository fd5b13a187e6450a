package gateways

import (
	"context"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
)

// ContainerScanner reads the build artifact itself: zip containers entry by entry,
// output directories file by file.
type ContainerScanner struct {
	locator   *ArtifactLocator
	inspector gateways.ArchiveInspector
	walker    gateways.DirectoryWalker
	exclude   *ExcludeFilter
	logger    interfaces.Logger
}

// NewContainerScanner creates a scanner from its collaborators
func NewContainerScanner(
	locator *ArtifactLocator,
	inspector gateways.ArchiveInspector,
	walker gateways.DirectoryWalker,
	exclude *ExcludeFilter,
	logger interfaces.Logger,
) *ContainerScanner {
	if locator == nil {
		locator = NewArtifactLocator()
	}
	if exclude == nil {
		exclude, _ = NewExcludeFilter()
	}
	return &ContainerScanner{
		locator:   locator,
		inspector: inspector,
		walker:    walker,
		exclude:   exclude,
		logger:    interfaces.OrNoOp(logger),
	}
}

// Scan resolves location per platform and lists what it holds
func (s *ContainerScanner) Scan(ctx context.Context, location entities.BuildArtifactLocation) (*gateways.ScanResult, error) {
	resolved, err := s.locator.Resolve(location)
	if err != nil {
		return nil, err
	}

	result := &gateways.ScanResult{Platform: location.Platform}

	switch resolved.Kind {
	case ResolvedContainer:
		entries, err := s.inspector.Inspect(ctx, resolved.Path)
		if err != nil {
			return nil, err
		}
		result.Source = entities.SourceContainer
		result.Records = make([]entities.AssetRecord, 0, len(entries))
		for _, e := range entries {
			result.Records = append(result.Records, entities.AssetRecord{LogicalPath: e.Path, Size: e.CompressedSize})
		}

	case ResolvedDirectory:
		files, err := s.walker.Walk(ctx, resolved.Path, s.exclude.Excluded)
		if err != nil {
			return nil, err
		}
		result.Source = entities.SourceDirectory
		result.Records = make([]entities.AssetRecord, 0, len(files))
		for _, f := range files {
			result.Records = append(result.Records, entities.AssetRecord{LogicalPath: f.RelativePath, Size: f.Size})
		}
	}

	s.logger.Debug("Scanned build artifact",
		interfaces.F("path", resolved.Path),
		interfaces.F("source", result.Source),
		interfaces.F("records", len(result.Records)))

	return result, nil
}
