// Package gateways defines the contracts of the composition data sources.
package gateways

import (
	"context"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// ArchiveEntry is one file inside a zip-based container
type ArchiveEntry struct {
	Path           string
	CompressedSize uint64
}

// WalkedFile is one file found under a directory root
type WalkedFile struct {
	RelativePath string
	Size         uint64
}

// ExcludePredicate reports whether a relative path must be left out of a walk
type ExcludePredicate func(relativePath string) bool

// ArchiveInspector lists the entries of a zip-based container
type ArchiveInspector interface {
	// Inspect returns every non-directory entry with its compressed size.
	// Fails with entities.ErrArchiveUnreadable when the container cannot be opened.
	Inspect(ctx context.Context, path string) ([]ArchiveEntry, error)
}

// DirectoryWalker lists files under a root
type DirectoryWalker interface {
	Walk(ctx context.Context, root string, exclude ExcludePredicate) ([]WalkedFile, error)
}

// MetadataReader turns build-tool metadata into records.
// An empty result means the source produced nothing.
type MetadataReader interface {
	Read(metadata entities.MetadataSource) []entities.AssetRecord
}

// ScanResult is what the container-or-directory source observed
type ScanResult struct {
	Source   entities.SourceKind
	Platform entities.Platform
	Records  []entities.AssetRecord
}

// ArtifactScanner inspects the artifact itself with platform-specific rules
type ArtifactScanner interface {
	Scan(ctx context.Context, location entities.BuildArtifactLocation) (*ScanResult, error)
}

// LogMiner recovers records from a shared build log.
// The boolean is false when no section for this project could be proven.
type LogMiner interface {
	Mine(ctx context.Context, logPath string, project entities.Project) ([]entities.AssetRecord, bool)
}

// ReportSigner produces a detached signature for a finished report
type ReportSigner interface {
	SignFile(ctx context.Context, path string) (signaturePath string, err error)
}
