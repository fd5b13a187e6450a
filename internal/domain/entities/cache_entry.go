package entities

import "time"

// CompositionCacheEntry is the persisted last successful breakdown of a project
type CompositionCacheEntry struct {
	ProjectIdentity ProjectIdentity       `json:"projectIdentity"`
	Breakdown       *CompositionBreakdown `json:"breakdown"`
	CapturedAt      time.Time             `json:"capturedAt"`
}
