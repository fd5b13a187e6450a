package gateways

import (
	"strings"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/services"
)

// PackedMetadataReader turns build-tool packed-size metadata into records
type PackedMetadataReader struct {
	exclude *ExcludeFilter
}

// NewPackedMetadataReader creates a reader that drops items matching exclude
func NewPackedMetadataReader(exclude *ExcludeFilter) *PackedMetadataReader {
	return &PackedMetadataReader{exclude: exclude}
}

// Read returns one record per usable item. NoMetadata yields nothing.
func (r *PackedMetadataReader) Read(metadata entities.MetadataSource) []entities.AssetRecord {
	sm, ok := metadata.(entities.StructuredMetadata)
	if !ok {
		return nil
	}

	records := make([]entities.AssetRecord, 0, len(sm.Items))
	for _, item := range sm.Items {
		if strings.TrimSpace(item.SourcePath) == "" {
			continue
		}
		logical := services.CleanLogicalPath(item.SourcePath)
		if logical == "" || r.exclude.Excluded(logical) {
			continue
		}
		records = append(records, entities.AssetRecord{LogicalPath: logical, Size: item.PackedSize})
	}
	return records
}
