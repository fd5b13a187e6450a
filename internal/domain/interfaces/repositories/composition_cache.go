// Package repositories defines interfaces for data access layers.
package repositories

import "github.com/ochairo/footprint/internal/domain/entities"

// CompositionCache persists the last successful breakdown of a project
type CompositionCache interface {
	// Save overwrites the stored entry. Failures are logged, never returned.
	Save(identity entities.ProjectIdentity, breakdown *entities.CompositionBreakdown)

	// Load returns the stored breakdown when it belongs to identity
	Load(identity entities.ProjectIdentity) (*entities.CompositionBreakdown, bool)
}
