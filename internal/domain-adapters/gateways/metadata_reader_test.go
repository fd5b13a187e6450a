package gateways

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func TestPackedMetadataReader_Read(t *testing.T) {
	filter, _ := NewExcludeFilter()
	reader := NewPackedMetadataReader(filter)

	records := reader.Read(entities.StructuredMetadata{Items: []entities.PackedItem{
		{SourcePath: "/Users/dev/Game/Assets/Tex/hero.png", PackedSize: 400_000},
		{SourcePath: "Assets/Audio/theme.ogg", PackedSize: 300_000},
		{SourcePath: "", PackedSize: 1},
		{SourcePath: "   ", PackedSize: 1},
		{SourcePath: "Temp/StagingArea/x.bin", PackedSize: 5},
		{SourcePath: "Assets/Tex/hero.png", PackedSize: 150_000},
	}})

	require.Len(t, records, 3)
	assert.Equal(t, entities.AssetRecord{LogicalPath: "Assets/Tex/hero.png", Size: 400_000}, records[0])
	assert.Equal(t, "Assets/Audio/theme.ogg", records[1].LogicalPath)
	assert.Equal(t, "Assets/Tex/hero.png", records[2].LogicalPath, "duplicates are left to deduplication")
}

func TestPackedMetadataReader_NoMetadata(t *testing.T) {
	reader := NewPackedMetadataReader(nil)

	assert.Empty(t, reader.Read(entities.NoMetadata{}))
	assert.Empty(t, reader.Read(entities.ResolveMetadata(nil)))
	assert.Empty(t, reader.Read(nil))
}
