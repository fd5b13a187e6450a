// Package gateways implements the composition data sources.
package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
)

// ZipInspector lists the entries of zip-based containers (APK, AAB, IPA)
type ZipInspector struct{}

// NewZipInspector creates a new zip inspector
func NewZipInspector() *ZipInspector {
	return &ZipInspector{}
}

// Inspect returns every file entry of the container with its compressed size
func (z *ZipInspector) Inspect(_ context.Context, path string) ([]gateways.ArchiveEntry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w: %v", path, entities.ErrArchiveUnreadable, err)
	}
	defer func() { _ = r.Close() }()

	entries := make([]gateways.ArchiveEntry, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		entries = append(entries, gateways.ArchiveEntry{
			Path:           f.Name,
			CompressedSize: f.CompressedSize64,
		})
	}

	return entries, nil
}
