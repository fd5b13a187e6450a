package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func parsedBreakdown(source entities.SourceKind, size uint64) *entities.CompositionBreakdown {
	b := &entities.CompositionBreakdown{Source: source, TopContributors: []entities.AssetRecord{}}
	b.Files.Add(entities.FilePlugins, size)
	return b
}

func TestNewBuildReport_Envelope(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))
	project := entities.Project{Root: "/work/MyGame", Identity: "p-abc"}
	location := entities.BuildArtifactLocation{Kind: entities.KindFile, Path: "/out/game.exe", Platform: entities.PlatformWindows64}

	report := NewBuildReport(location, project, entities.ArtifactInfo{Type: entities.ArtifactEXE}, 4096,
		parsedBreakdown(entities.SourceDirectory, 1024), now)

	assert.Equal(t, "MyGame", report.Project)
	assert.Equal(t, entities.ProjectIdentity("p-abc"), report.ProjectIdentity)
	assert.Equal(t, time.UTC, report.Timestamp.Location())
	assert.True(t, now.Equal(report.Timestamp))
	assert.Equal(t, uint64(4096), report.OutputSizeBytes, "standalone keeps the measured output size")
	_, err := uuid.Parse(report.BuildGUID)
	require.NoError(t, err)
}

func TestNewBuildReport_OutputSizePreference(t *testing.T) {
	tests := []struct {
		name     string
		platform entities.Platform
		artifact entities.ArtifactType
		source   entities.SourceKind
		cached   bool
		want     uint64
	}{
		{"android container", entities.PlatformAndroid, entities.ArtifactAPK, entities.SourceContainer, false, 700},
		{"webgl directory", entities.PlatformWebGL, entities.ArtifactWebGL, entities.SourceDirectory, false, 700},
		{"xcode export", entities.PlatformIOS, entities.ArtifactXcode, entities.SourceDirectory, false, 700},
		{"ipa keeps file size", entities.PlatformIOS, entities.ArtifactIPA, entities.SourceContainer, false, 9000},
		{"metadata source", entities.PlatformAndroid, entities.ArtifactAPK, entities.SourceStructuredMetadata, false, 9000},
		{"cached", entities.PlatformAndroid, entities.ArtifactAPK, entities.SourceContainer, true, 9000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := parsedBreakdown(tt.source, 700)
			b.FromCache = tt.cached
			location := entities.BuildArtifactLocation{Path: "/out/x", Platform: tt.platform}

			report := NewBuildReport(location, entities.Project{Root: "/p"}, entities.ArtifactInfo{Type: tt.artifact}, 9000, b, time.Now())

			assert.Equal(t, tt.want, report.OutputSizeBytes)
		})
	}
}

func TestNewBuildReport_NilBreakdown(t *testing.T) {
	report := NewBuildReport(entities.BuildArtifactLocation{Platform: entities.PlatformAndroid}, entities.Project{},
		entities.ArtifactInfo{Type: entities.ArtifactAPK}, 10, nil, time.Now())

	require.NotNil(t, report.Composition)
	assert.True(t, report.Composition.NoData)
	assert.Equal(t, uint64(10), report.OutputSizeBytes)
}
