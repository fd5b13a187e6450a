package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func TestParser_PackedAssetsJSONC(t *testing.T) {
	data := []byte(`{
  // emitted by the build pipeline
  "packedAssets": [
    {
      "path": "sharedassets0.assets",
      "contents": [
        {"sourceAssetPath": "Assets/Tex/hero.png", "packedSize": 400000},
        {"sourceAssetPath": "Assets/Tex/hero.png", "packedSize": 150000},
      ],
    },
    {"path": "level0", "contents": [{"sourceAssetPath": "Assets/Audio/theme.ogg", "packedSize": 300000}]},
  ],
}`)

	items, err := NewParser().Parse(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []entities.PackedItem{
		{SourcePath: "Assets/Tex/hero.png", PackedSize: 400_000},
		{SourcePath: "Assets/Tex/hero.png", PackedSize: 150_000},
		{SourcePath: "Assets/Audio/theme.ogg", PackedSize: 300_000},
	}, items)
}

func TestParser_LegacyFilesJSON(t *testing.T) {
	items, err := NewParser().Parse([]byte(`{"files":[{"path":"Assets/a.png","size":12}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/a.png", PackedSize: 12}}, items)
}

func TestParser_BareArray(t *testing.T) {
	items, err := NewParser().Parse([]byte(`[{"sourcePath":"Assets/b.ogg","packedSize":7}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/b.ogg", PackedSize: 7}}, items)

	items, err = NewParser().Parse([]byte("- sourcePath: Assets/c.fbx\n  packedSize: 99\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/c.fbx", PackedSize: 99}}, items)
}

func TestParser_YAMLDocument(t *testing.T) {
	data := []byte(`packedAssets:
  - path: sharedassets0.assets
    contents:
      - sourceAssetPath: Assets/Tex/hero.png
        packedSize: 400000
      - sourceAssetPath: Assets/Legacy/old.wav
        packedSize: 5
`)

	items, err := NewParser().Parse(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Assets/Tex/hero.png", items[0].SourcePath)
	assert.Equal(t, uint64(5), items[1].PackedSize)
}

func TestParser_BothShapesPrefersPackedAssets(t *testing.T) {
	data := []byte(`{
  "packedAssets": [
    {"path": "sharedassets0.assets", "contents": [{"sourceAssetPath": "Assets/Tex/hero.png", "packedSize": 400000}]}
  ],
  "files": [{"path": "sharedassets0.assets", "size": 400000}]
}`)

	items, err := NewParser().Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/Tex/hero.png", PackedSize: 400_000}}, items)

	var total uint64
	for _, it := range items {
		total += it.PackedSize
	}
	assert.Equal(t, uint64(400_000), total)

	yamlItems, err := NewParser().Parse([]byte(`packedAssets:
  - path: level0
    contents:
      - sourceAssetPath: Assets/Audio/theme.ogg
        packedSize: 300
files:
  - path: level0
    size: 300
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/Audio/theme.ogg", PackedSize: 300}}, yamlItems)
}

func TestParser_EmptyPackedAssetsFallsBackToFiles(t *testing.T) {
	data := []byte(`{"packedAssets": [{"path": "level0", "contents": []}], "files": [{"path": "Assets/a.png", "size": 12}]}`)

	items, err := NewParser().Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []entities.PackedItem{{SourcePath: "Assets/a.png", PackedSize: 12}}, items)
}

func TestParser_EmptyAndInvalid(t *testing.T) {
	p := NewParser()

	items, err := p.Parse([]byte("  // nothing\n"), FormatJSON)
	assert.NoError(t, err)
	assert.Empty(t, items)

	items, err = p.Parse(nil, FormatYAML)
	assert.NoError(t, err)
	assert.Empty(t, items)

	_, err = p.Parse([]byte(`{"files": [`), FormatJSON)
	assert.ErrorContains(t, err, "failed to parse JSON")

	_, err = p.Parse([]byte(`[{"sourcePath":"a","packedSize":-1}]`), FormatJSON)
	assert.Error(t, err)

	_, err = p.Parse([]byte("files: [\n"), FormatYAML)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files:\n  - path: Assets/a.png\n    size: 3\n"), 0o600))

	items, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = NewParser().ParseFile(filepath.Join(dir, "packed.txt"))
	assert.ErrorContains(t, err, "unsupported metadata file")

	_, err = NewParser().ParseFile(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("x/Build.JSONC")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatForPath("x/report.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}
