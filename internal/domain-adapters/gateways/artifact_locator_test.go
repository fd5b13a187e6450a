package gateways

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func location(t *testing.T, path string, platform entities.Platform) entities.BuildArtifactLocation {
	t.Helper()
	loc, err := entities.NewBuildArtifactLocation(path, platform)
	require.NoError(t, err)
	return loc
}

func TestArtifactLocator_Resolve(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"android/game.apk":                            10,
		"android/game-small.aab":                      5,
		"gradle/unityLibrary/build.txt":               1,
		"ios/game.ipa":                                10,
		"ios/xcode/Data/level0":                       1,
		"webgl/Build/game.wasm":                       1,
		"win/Game.exe":                                1,
		"win/Game_Data/level0":                        1,
		"mac/Game.app/Contents/Resources/Data/level0": 1,
		"linux/notes.txt":                             1,
	})

	tests := []struct {
		name     string
		path     string
		platform entities.Platform
		kind     ResolvedKind
		want     string
	}{
		{"apk file", "android/game.apk", entities.PlatformAndroid, ResolvedContainer, "android/game.apk"},
		{"android dir picks largest package", "android", entities.PlatformAndroid, ResolvedContainer, "android/game.apk"},
		{"gradle export", "gradle", entities.PlatformAndroid, ResolvedDirectory, "gradle"},
		{"ipa", "ios/game.ipa", entities.PlatformIOS, ResolvedContainer, "ios/game.ipa"},
		{"xcode export", "ios/xcode", entities.PlatformIOS, ResolvedDirectory, "ios/xcode"},
		{"webgl", "webgl", entities.PlatformWebGL, ResolvedDirectory, "webgl"},
		{"windows exe", "win/Game.exe", entities.PlatformWindows64, ResolvedDirectory, "win/Game_Data"},
		{"mac bundle", "mac/Game.app", entities.PlatformOSX, ResolvedDirectory, "mac/Game.app/Contents/Resources/Data"},
		{"linux dir", "linux", entities.PlatformLinux64, ResolvedDirectory, "linux"},
	}

	locator := NewArtifactLocator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locator.Resolve(location(t, filepath.Join(root, tt.path), tt.platform))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got.Path)
		})
	}
}

func TestArtifactLocator_ResolveFailures(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{"orphan.exe": 1, "game.zip": 1, "index.html": 1})
	locator := NewArtifactLocator()

	_, err := locator.Resolve(location(t, filepath.Join(root, "orphan.exe"), entities.PlatformWindows))
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable, "missing _Data directory")

	_, err = locator.Resolve(location(t, filepath.Join(root, "game.zip"), entities.PlatformAndroid))
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable)

	_, err = locator.Resolve(location(t, filepath.Join(root, "index.html"), entities.PlatformWebGL))
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable)

	_, err = locator.Resolve(location(t, root, entities.PlatformUnknown))
	assert.ErrorIs(t, err, entities.ErrUnsupportedPlatform)
	assert.ErrorIs(t, err, entities.ErrSourceUnavailable)
}

func TestArtifactLocator_Describe(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"out/a.apk":        100,
		"out/b.aab":        300,
		"web/Build/x.wasm": 40,
		"web/index.html":   2,
		"xcode/main.m":     7,
		"Game.exe":         9,
		"game.x86_64":      11,
	})
	locator := NewArtifactLocator()

	info, size, err := locator.Describe(location(t, filepath.Join(root, "out"), entities.PlatformAndroid))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactAAB, info.Type)
	assert.Equal(t, filepath.Join(root, "out", "b.aab"), info.PackagePath)
	assert.Equal(t, uint64(300), size)

	info, size, err = locator.Describe(location(t, filepath.Join(root, "web"), entities.PlatformWebGL))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactWebGL, info.Type)
	assert.Equal(t, uint64(42), size)

	info, _, err = locator.Describe(location(t, filepath.Join(root, "xcode"), entities.PlatformIOS))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactXcode, info.Type)

	info, size, err = locator.Describe(location(t, filepath.Join(root, "Game.exe"), entities.PlatformWindows64))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactInfo{Type: entities.ArtifactEXE, Extension: ".exe"}, info)
	assert.Equal(t, uint64(9), size)

	info, _, err = locator.Describe(location(t, filepath.Join(root, "game.x86_64"), entities.PlatformLinux64))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactFile, info.Type)
	assert.Equal(t, ".x86_64", info.Extension)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o750))
	info, size, err = locator.Describe(location(t, filepath.Join(root, "empty"), entities.PlatformLinux64))
	require.NoError(t, err)
	assert.Equal(t, entities.ArtifactFolder, info.Type)
	assert.Equal(t, uint64(0), size)
}
