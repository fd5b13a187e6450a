// Package entities defines core domain models and data structures.
package entities

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactKind says whether a build artifact is a single file or a directory tree
type ArtifactKind int

const (
	// KindFile is a single packaged file (apk, aab, ipa, exe)
	KindFile ArtifactKind = iota
	// KindDirectory is an output directory or app bundle
	KindDirectory
)

func (k ArtifactKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// BuildArtifactLocation identifies the build output to inspect
type BuildArtifactLocation struct {
	Kind     ArtifactKind
	Path     string
	Platform Platform
}

// NewBuildArtifactLocation stats path once and records whether it is a file or a directory
func NewBuildArtifactLocation(path string, platform Platform) (BuildArtifactLocation, error) {
	if path == "" {
		return BuildArtifactLocation{}, fmt.Errorf("artifact path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return BuildArtifactLocation{}, fmt.Errorf("failed to stat artifact %s: %w", path, err)
	}

	kind := KindFile
	if info.IsDir() {
		kind = KindDirectory
	}

	return BuildArtifactLocation{
		Kind:     kind,
		Path:     filepath.Clean(path),
		Platform: platform,
	}, nil
}

// Extension returns the lower-case extension of the artifact path, including the dot
func (l BuildArtifactLocation) Extension() string {
	return lowerExt(l.Path)
}
