package gateways

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
)

type failingInspector struct{ calls int }

func (f *failingInspector) Inspect(_ context.Context, _ string) ([]gateways.ArchiveEntry, error) {
	f.calls++
	return nil, fmt.Errorf("inspect: %w", entities.ErrArchiveUnreadable)
}

func newScanner() *ContainerScanner {
	return NewContainerScanner(nil, NewZipInspector(), NewFileSystemWalker(nil), nil, nil)
}

func TestContainerScanner_APK(t *testing.T) {
	apk := filepath.Join(t.TempDir(), "game.apk")
	writeStoredZip(t, apk, map[string]int{
		"lib/arm64-v8a/libgame.so":         2_000_000,
		"classes1.dex":                     1_000_000,
		"assets/bin/Data/resources.assets": 500_000,
	})

	result, err := newScanner().Scan(context.Background(), location(t, apk, entities.PlatformAndroid))
	require.NoError(t, err)

	assert.Equal(t, entities.SourceContainer, result.Source)
	assert.Equal(t, entities.PlatformAndroid, result.Platform)
	require.Len(t, result.Records, 3)

	var total uint64
	for _, r := range result.Records {
		total += r.Size
	}
	assert.Equal(t, uint64(3_500_000), total)
}

func TestContainerScanner_WebGLDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"Build/game.wasm.br": 300,
		"Build/game.data.br": 200,
		"Temp/scratch":       99,
	})

	result, err := newScanner().Scan(context.Background(), location(t, root, entities.PlatformWebGL))
	require.NoError(t, err)

	assert.Equal(t, entities.SourceDirectory, result.Source)
	paths := make([]string, 0, len(result.Records))
	for _, r := range result.Records {
		paths = append(paths, r.LogicalPath)
	}
	sort.Strings(paths)
	assert.Equal(t, []string{"Build/game.data.br", "Build/game.wasm.br"}, paths)
}

func TestContainerScanner_InspectorFailure(t *testing.T) {
	apk := filepath.Join(t.TempDir(), "game.apk")
	writeFiles(t, filepath.Dir(apk), map[string]int{"game.apk": 3})
	inspector := &failingInspector{}
	scanner := NewContainerScanner(nil, inspector, NewFileSystemWalker(nil), nil, nil)

	_, err := scanner.Scan(context.Background(), location(t, apk, entities.PlatformAndroid))

	assert.ErrorIs(t, err, entities.ErrArchiveUnreadable)
	assert.Equal(t, 1, inspector.calls)
}

func TestContainerScanner_UnknownPlatform(t *testing.T) {
	_, err := newScanner().Scan(context.Background(), location(t, t.TempDir(), entities.PlatformUnknown))

	assert.ErrorIs(t, err, entities.ErrUnsupportedPlatform)
}
