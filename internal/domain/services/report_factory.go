package services

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// NewBuildReport wraps a breakdown into the envelope handed to reporting collaborators.
// For Android, WebGL and Xcode exports a parsed build-output total replaces outputSize.
func NewBuildReport(
	location entities.BuildArtifactLocation,
	project entities.Project,
	artifact entities.ArtifactInfo,
	outputSize uint64,
	breakdown *entities.CompositionBreakdown,
	now time.Time,
) *entities.BuildReport {
	if breakdown == nil {
		breakdown = entities.NewEmptyBreakdown()
	}

	if total := breakdown.TotalSize(); total > 0 && prefersParsedTotal(location.Platform, artifact, breakdown) {
		outputSize = total
	}

	return &entities.BuildReport{
		Project:         filepath.Base(project.Root),
		ProjectIdentity: project.Identity,
		Platform:        location.Platform,
		BuildGUID:       uuid.NewString(),
		Timestamp:       now.UTC(),
		OutputPath:      location.Path,
		OutputSizeBytes: outputSize,
		Artifact:        artifact,
		Composition:     breakdown,
	}
}

func prefersParsedTotal(platform entities.Platform, artifact entities.ArtifactInfo, b *entities.CompositionBreakdown) bool {
	if b.FromCache || (b.Source != entities.SourceContainer && b.Source != entities.SourceDirectory) {
		return false
	}
	switch platform {
	case entities.PlatformAndroid, entities.PlatformWebGL:
		return true
	case entities.PlatformIOS:
		return artifact.Type == entities.ArtifactXcode
	}
	return false
}
