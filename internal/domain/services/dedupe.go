package services

import "github.com/ochairo/footprint/internal/domain/entities"

// Dedupe collapses records sharing a logical path into the single largest one.
// A source may report the same asset several times (original import, compressed variant,
// mip levels); summing them would overstate its footprint.
// Output keeps first-seen path order; on equal sizes the first record wins.
func Dedupe(records []entities.AssetRecord) []entities.AssetRecord {
	if len(records) == 0 {
		return []entities.AssetRecord{}
	}

	index := make(map[string]int, len(records))
	out := make([]entities.AssetRecord, 0, len(records))

	for _, r := range records {
		i, seen := index[r.LogicalPath]
		if !seen {
			index[r.LogicalPath] = len(out)
			out = append(out, r)
			continue
		}
		if r.Size > out[i].Size {
			out[i] = r
		}
	}

	return out
}
