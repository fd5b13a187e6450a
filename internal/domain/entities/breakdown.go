package entities

// DefaultTopContributors is the number of largest records kept in a breakdown
const DefaultTopContributors = 20

// AssetRecord is one observed item and its size.
// LogicalPath identifies the underlying asset regardless of how many variants a source reports.
type AssetRecord struct {
	LogicalPath string `json:"path" yaml:"path"`
	Size        uint64 `json:"size" yaml:"size"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
}

// SourceKind names the data source that produced a breakdown
type SourceKind string

// Data sources, in priority order
const (
	SourceStructuredMetadata SourceKind = "structuredMetadata"
	SourceContainer          SourceKind = "container"
	SourceDirectory          SourceKind = "directory"
	SourceLogMined           SourceKind = "logMined"
	SourceCached             SourceKind = "cached"
	SourceNone               SourceKind = "none"
)

// AssetBreakdown is the project-source media taxonomy of a breakdown
type AssetBreakdown struct {
	Buckets    AssetBuckets `json:"buckets"`
	TotalSize  uint64       `json:"totalSize"`
	TotalCount uint32       `json:"totalCount"`
}

// CompositionBreakdown is the categorized size report for one artifact
type CompositionBreakdown struct {
	Files           FileBuckets     `json:"files"`
	OtherDetail     *OtherBuckets   `json:"otherDetail,omitempty"`
	Assets          *AssetBreakdown `json:"assets,omitempty"`
	TopContributors []AssetRecord   `json:"topContributors"`
	Source          SourceKind      `json:"source"`
	FromCache       bool            `json:"fromCache"`
	NoData          bool            `json:"noData"`
}

// NewEmptyBreakdown returns the terminal no-data breakdown: every bucket zero
func NewEmptyBreakdown() *CompositionBreakdown {
	return &CompositionBreakdown{
		TopContributors: []AssetRecord{},
		Source:          SourceNone,
		NoData:          true,
	}
}

// TotalSize is the sum of every file bucket
func (b *CompositionBreakdown) TotalSize() uint64 {
	return b.Files.TotalSize()
}

// HasAssets reports whether the asset taxonomy carries any item
func (b *CompositionBreakdown) HasAssets() bool {
	return b.Assets != nil && b.Assets.TotalCount > 0
}
