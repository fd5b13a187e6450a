package entities

// PackedItem is one build-tool supplied record of an item's packed size
type PackedItem struct {
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`
	PackedSize uint64 `json:"packedSize" yaml:"packedSize"`
}

// MetadataSource is the structured metadata available for an analysis.
// It is either StructuredMetadata or NoMetadata.
type MetadataSource interface {
	metadataSource()
}

// StructuredMetadata carries per-item packed sizes from the build tool
type StructuredMetadata struct {
	Items []PackedItem
}

// NoMetadata means the build tool supplied nothing
type NoMetadata struct{}

func (StructuredMetadata) metadataSource() {}
func (NoMetadata) metadataSource()         {}

// ResolveMetadata picks the variant for items once, at the input boundary
func ResolveMetadata(items []PackedItem) MetadataSource {
	if len(items) == 0 {
		return NoMetadata{}
	}
	return StructuredMetadata{Items: items}
}
