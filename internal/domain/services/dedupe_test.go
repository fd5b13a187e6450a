package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func TestDedupe_KeepsLargestPerPath(t *testing.T) {
	records := []entities.AssetRecord{
		{LogicalPath: "Assets/Tex/hero.png", Size: 150_000},
		{LogicalPath: "Assets/Audio/theme.ogg", Size: 90_000},
		{LogicalPath: "Assets/Tex/hero.png", Size: 400_000},
		{LogicalPath: "Assets/Tex/hero.png", Size: 20_000},
	}

	got := Dedupe(records)

	require.Len(t, got, 2)
	assert.Equal(t, "Assets/Tex/hero.png", got[0].LogicalPath)
	assert.Equal(t, uint64(400_000), got[0].Size)
	assert.Equal(t, "Assets/Audio/theme.ogg", got[1].LogicalPath)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.NotNil(t, Dedupe(nil))
}

func TestDedupe_TieKeepsFirst(t *testing.T) {
	records := []entities.AssetRecord{
		{LogicalPath: "a", Size: 10, Category: "first"},
		{LogicalPath: "a", Size: 10, Category: "second"},
	}

	got := Dedupe(records)

	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Category)
}

func TestDedupe_Idempotent(t *testing.T) {
	inputs := [][]entities.AssetRecord{
		{},
		{{LogicalPath: "x", Size: 1}},
		{{LogicalPath: "x", Size: 1}, {LogicalPath: "y", Size: 5}, {LogicalPath: "x", Size: 3}},
		{{LogicalPath: "", Size: 7}, {LogicalPath: "", Size: 2}, {LogicalPath: "z", Size: 0}},
	}

	for _, in := range inputs {
		once := Dedupe(in)
		assert.Equal(t, once, Dedupe(once))
	}
}

func TestDedupe_SizeIsGroupMaximum(t *testing.T) {
	records := []entities.AssetRecord{
		{LogicalPath: "a", Size: 3}, {LogicalPath: "b", Size: 8}, {LogicalPath: "a", Size: 9},
		{LogicalPath: "b", Size: 2}, {LogicalPath: "c", Size: 1}, {LogicalPath: "a", Size: 4},
	}

	maxByPath := map[string]uint64{}
	for _, r := range records {
		if r.Size > maxByPath[r.LogicalPath] {
			maxByPath[r.LogicalPath] = r.Size
		}
	}

	got := Dedupe(records)

	require.Len(t, got, len(maxByPath))
	for _, r := range got {
		assert.Equal(t, maxByPath[r.LogicalPath], r.Size, r.LogicalPath)
	}
}
