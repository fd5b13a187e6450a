package services

import (
	"sort"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// BreakdownBuilder accumulates classified records into a CompositionBreakdown
type BreakdownBuilder struct {
	topN int
}

// NewBreakdownBuilder creates a builder keeping topN contributors (DefaultTopContributors when <= 0)
func NewBreakdownBuilder(topN int) *BreakdownBuilder {
	if topN <= 0 || topN > entities.DefaultTopContributors {
		topN = entities.DefaultTopContributors
	}
	return &BreakdownBuilder{topN: topN}
}

// Build classifies every record exactly once and accumulates it into the file taxonomy.
// Records under the editable-source root also feed the asset taxonomy.
// Records are expected to be deduplicated already.
func (b *BreakdownBuilder) Build(
	source entities.SourceKind,
	platform entities.Platform,
	records []entities.AssetRecord,
	classify FileClassifier,
) *entities.CompositionBreakdown {
	if classify == nil {
		classify = Classify
	}

	breakdown := &entities.CompositionBreakdown{Source: source}
	var other entities.OtherBuckets
	var assets entities.AssetBreakdown

	classified := make([]entities.AssetRecord, 0, len(records))
	for _, r := range records {
		fc := classify(r.LogicalPath)
		breakdown.Files.Add(fc, r.Size)

		if fc == entities.FileOther {
			other.Add(ClassifyOther(platform, r.LogicalPath), r.Size)
		}

		r.Category = fc.String()
		if IsEditableSource(r.LogicalPath) {
			ac := ClassifyAsset(r.LogicalPath)
			assets.Buckets.Add(ac, r.Size)
			assets.TotalSize += r.Size
			assets.TotalCount++
			r.Category = ac.String()
		}
		classified = append(classified, r)
	}

	if breakdown.Files.Get(entities.FileOther).Count > 0 {
		breakdown.OtherDetail = &other
	}
	if assets.TotalCount > 0 {
		breakdown.Assets = &assets
	}
	breakdown.TopContributors = b.top(classified)
	breakdown.NoData = len(records) == 0

	return breakdown
}

// top returns the largest records, size descending then path ascending
func (b *BreakdownBuilder) top(records []entities.AssetRecord) []entities.AssetRecord {
	sorted := make([]entities.AssetRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].LogicalPath < sorted[j].LogicalPath
	})
	if len(sorted) > b.topN {
		sorted = sorted[:b.topN]
	}
	return sorted
}
