package gateways

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// ResolvedKind says how a resolved source is read
type ResolvedKind int

const (
	// ResolvedContainer is a zip-based package file
	ResolvedContainer ResolvedKind = iota
	// ResolvedDirectory is a directory tree to walk
	ResolvedDirectory
)

// ResolvedSource is the concrete thing to read for a build artifact
type ResolvedSource struct {
	Kind ResolvedKind
	Path string
}

var packageExtensions = []string{".apk", ".aab", ".ipa"}

// ArtifactLocator maps a build artifact location to the container or directory holding its content
type ArtifactLocator struct{}

// NewArtifactLocator creates a new artifact locator
func NewArtifactLocator() *ArtifactLocator {
	return &ArtifactLocator{}
}

// Resolve applies the platform's packaging rules to location
func (l *ArtifactLocator) Resolve(location entities.BuildArtifactLocation) (ResolvedSource, error) {
	p := location.Platform
	switch {
	case p == entities.PlatformAndroid:
		return l.resolveAndroid(location)
	case p == entities.PlatformIOS:
		return l.resolveIOS(location)
	case p == entities.PlatformWebGL:
		if location.Kind != entities.KindDirectory {
			return ResolvedSource{}, fmt.Errorf("webgl output %s is not a directory: %w", location.Path, entities.ErrSourceUnavailable)
		}
		return ResolvedSource{Kind: ResolvedDirectory, Path: location.Path}, nil
	case p.IsStandalone():
		return l.resolveStandalone(location)
	}
	return ResolvedSource{}, fmt.Errorf("platform %q: %w", p, entities.ErrUnsupportedPlatform)
}

func (l *ArtifactLocator) resolveAndroid(location entities.BuildArtifactLocation) (ResolvedSource, error) {
	if location.Kind == entities.KindFile {
		switch location.Extension() {
		case ".apk", ".aab":
			return ResolvedSource{Kind: ResolvedContainer, Path: location.Path}, nil
		}
		return ResolvedSource{}, fmt.Errorf("android output %s is not an apk or aab: %w", location.Path, entities.ErrSourceUnavailable)
	}

	// an output directory holding the package, otherwise an exported Gradle project
	if pkg, _, err := largestPackage(location.Path, ".apk", ".aab"); err == nil && pkg != "" {
		return ResolvedSource{Kind: ResolvedContainer, Path: pkg}, nil
	}
	return ResolvedSource{Kind: ResolvedDirectory, Path: location.Path}, nil
}

func (l *ArtifactLocator) resolveIOS(location entities.BuildArtifactLocation) (ResolvedSource, error) {
	if location.Kind == entities.KindDirectory {
		return ResolvedSource{Kind: ResolvedDirectory, Path: location.Path}, nil
	}
	if location.Extension() == ".ipa" {
		return ResolvedSource{Kind: ResolvedContainer, Path: location.Path}, nil
	}
	return ResolvedSource{}, fmt.Errorf("ios output %s is not an ipa: %w", location.Path, entities.ErrSourceUnavailable)
}

// resolveStandalone finds the player data directory: <exe>_Data next to an executable,
// Contents/Resources/Data (or Contents/Data) inside a macOS bundle, or the directory itself.
func (l *ArtifactLocator) resolveStandalone(location entities.BuildArtifactLocation) (ResolvedSource, error) {
	var candidates []string
	switch {
	case location.Kind == entities.KindFile:
		dir := filepath.Dir(location.Path)
		name := strings.TrimSuffix(filepath.Base(location.Path), filepath.Ext(location.Path))
		candidates = []string{filepath.Join(dir, name+"_Data")}
	case location.Extension() == ".app":
		candidates = []string{
			filepath.Join(location.Path, "Contents", "Resources", "Data"),
			filepath.Join(location.Path, "Contents", "Data"),
		}
	default:
		candidates = []string{location.Path}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return ResolvedSource{Kind: ResolvedDirectory, Path: c}, nil
		}
	}
	return ResolvedSource{}, fmt.Errorf("no player data directory for %s: %w", location.Path, entities.ErrSourceUnavailable)
}

// Describe reports the packaging type of location and the size of the shipped output:
// the file size, the largest package inside a directory, or the directory total.
func (l *ArtifactLocator) Describe(location entities.BuildArtifactLocation) (entities.ArtifactInfo, uint64, error) {
	if location.Kind == entities.KindFile {
		info, err := os.Stat(location.Path)
		if err != nil {
			return entities.ArtifactInfo{}, 0, fmt.Errorf("failed to stat artifact: %w", err)
		}
		return artifactInfoForFile(location.Path, location.Platform), uint64(info.Size()), nil //nolint:gosec // file sizes are non-negative
	}

	pkg, pkgSize, err := largestPackage(location.Path, packageExtensions...)
	if err != nil {
		return entities.ArtifactInfo{}, 0, err
	}
	if pkg != "" {
		info := artifactInfoForFile(pkg, location.Platform)
		info.PackagePath = pkg
		return info, pkgSize, nil
	}

	info := entities.ArtifactInfo{Type: entities.ArtifactFolder}
	switch {
	case location.Extension() == ".app":
		info = entities.ArtifactInfo{Type: entities.ArtifactApp, Extension: ".app"}
	case location.Platform == entities.PlatformWebGL:
		info.Type = entities.ArtifactWebGL
	case location.Platform == entities.PlatformIOS:
		info.Type = entities.ArtifactXcode
	}

	total, err := directorySize(location.Path)
	if err != nil {
		return entities.ArtifactInfo{}, 0, err
	}
	return info, total, nil
}

func artifactInfoForFile(path string, platform entities.Platform) entities.ArtifactInfo {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".apk":
		return entities.ArtifactInfo{Type: entities.ArtifactAPK, Extension: ext}
	case ".aab":
		return entities.ArtifactInfo{Type: entities.ArtifactAAB, Extension: ext}
	case ".ipa":
		return entities.ArtifactInfo{Type: entities.ArtifactIPA, Extension: ext}
	case ".exe":
		return entities.ArtifactInfo{Type: entities.ArtifactEXE, Extension: ext}
	case ".app":
		return entities.ArtifactInfo{Type: entities.ArtifactApp, Extension: ext}
	}
	switch platform {
	case entities.PlatformWebGL:
		return entities.ArtifactInfo{Type: entities.ArtifactWebGL}
	case entities.PlatformIOS:
		return entities.ArtifactInfo{Type: entities.ArtifactXcode}
	}
	return entities.ArtifactInfo{Type: entities.ArtifactFile, Extension: ext}
}

// largestPackage searches dir recursively for the largest file with one of exts
func largestPackage(dir string, exts ...string) (string, uint64, error) {
	var best string
	var bestSize uint64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() || !hasExt(path, exts) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if size := uint64(info.Size()); best == "" || size > bestSize { //nolint:gosec // file sizes are non-negative
			best, bestSize = path, size
		}
		return nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to search %s: %w", dir, err)
	}

	return best, bestSize, nil
}

func directorySize(dir string) (uint64, error) {
	var total uint64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size()) //nolint:gosec // file sizes are non-negative
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to size %s: %w", dir, err)
	}
	return total, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
