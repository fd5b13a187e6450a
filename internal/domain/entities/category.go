package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileCategory is a bucket of the built-artifact taxonomy
type FileCategory int

// File categories, in report order
const (
	FileScripts FileCategory = iota
	FileResources
	FileStreamingAssets
	FilePlugins
	FileScenes
	FileShaders
	FileOther

	fileCategoryCount
)

var fileCategoryNames = [fileCategoryCount]string{
	"scripts",
	"resources",
	"streamingAssets",
	"plugins",
	"scenes",
	"shaders",
	"other",
}

func (c FileCategory) String() string {
	if c < 0 || c >= fileCategoryCount {
		return fileCategoryNames[FileOther]
	}
	return fileCategoryNames[c]
}

// FileCategories lists every file category in report order
func FileCategories() []FileCategory {
	out := make([]FileCategory, 0, fileCategoryCount)
	for c := FileCategory(0); c < fileCategoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// AssetCategory is a bucket of the project-source media taxonomy
type AssetCategory int

// Asset categories, in report order
const (
	AssetTextures AssetCategory = iota
	AssetAudio
	AssetModels
	AssetAnimations
	AssetPrefabs
	AssetScenes
	AssetScripts
	AssetShaders
	AssetMaterials
	AssetFonts
	AssetVideos
	AssetOther

	assetCategoryCount
)

var assetCategoryNames = [assetCategoryCount]string{
	"textures",
	"audio",
	"models",
	"animations",
	"prefabs",
	"scenes",
	"scripts",
	"shaders",
	"materials",
	"fonts",
	"videos",
	"otherAssets",
}

func (c AssetCategory) String() string {
	if c < 0 || c >= assetCategoryCount {
		return assetCategoryNames[AssetOther]
	}
	return assetCategoryNames[c]
}

// AssetCategories lists every asset category in report order
func AssetCategories() []AssetCategory {
	out := make([]AssetCategory, 0, assetCategoryCount)
	for c := AssetCategory(0); c < assetCategoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// OtherSubcategory refines the FileOther bucket
type OtherSubcategory int

// Other subcategories, in report order
const (
	OtherSpriteAtlases OtherSubcategory = iota
	OtherTextures
	OtherMeshes
	OtherAudio
	OtherAssetBundles
	OtherEngineRuntime
	OtherFonts

	OtherIOSAssetCatalogs
	OtherIOSAppResources
	OtherIOSSystem

	OtherAndroidAddressables
	OtherAndroidEngineData
	OtherAndroidResources
	OtherAndroidCode
	OtherAndroidSystem

	OtherWebGLData
	OtherWebGLWasm
	OtherWebGLJS

	OtherUnclassified

	otherSubcategoryCount
)

var otherSubcategoryNames = [otherSubcategoryCount]string{
	"spriteAtlases",
	"textures",
	"meshes",
	"audio",
	"assetBundles",
	"engineRuntime",
	"fonts",
	"iosAssetCatalogs",
	"iosAppResources",
	"iosSystem",
	"androidAddressables",
	"androidEngineData",
	"androidResources",
	"androidCode",
	"androidSystem",
	"webglData",
	"webglWasm",
	"webglJs",
	"other",
}

func (c OtherSubcategory) String() string {
	if c < 0 || c >= otherSubcategoryCount {
		return otherSubcategoryNames[OtherUnclassified]
	}
	return otherSubcategoryNames[c]
}

// CategoryBucket accumulates the size and item count of one category.
// Buckets only grow during a pass.
type CategoryBucket struct {
	Size  uint64 `json:"size" yaml:"size"`
	Count uint32 `json:"count" yaml:"count"`
}

// Add accumulates one item of the given size
func (b *CategoryBucket) Add(size uint64) {
	b.Size += size
	b.Count++
}

// FileBuckets holds one bucket per FileCategory
type FileBuckets [fileCategoryCount]CategoryBucket

// Add accumulates size into the bucket for c
func (b *FileBuckets) Add(c FileCategory, size uint64) {
	if c < 0 || c >= fileCategoryCount {
		c = FileOther
	}
	b[c].Add(size)
}

// Get returns the bucket for c
func (b *FileBuckets) Get(c FileCategory) CategoryBucket {
	if c < 0 || c >= fileCategoryCount {
		c = FileOther
	}
	return b[c]
}

// TotalSize sums every bucket
func (b *FileBuckets) TotalSize() uint64 {
	return sumSizes(b[:])
}

// TotalCount sums every bucket's item count
func (b *FileBuckets) TotalCount() uint64 {
	return sumCounts(b[:])
}

// MarshalJSON writes buckets as an object keyed by category name, in report order
func (b FileBuckets) MarshalJSON() ([]byte, error) {
	return marshalBuckets(fileCategoryNames[:], b[:])
}

// UnmarshalJSON reads buckets keyed by category name; unknown keys are ignored
func (b *FileBuckets) UnmarshalJSON(data []byte) error {
	return unmarshalBuckets(data, fileCategoryNames[:], b[:])
}

// AssetBuckets holds one bucket per AssetCategory
type AssetBuckets [assetCategoryCount]CategoryBucket

// Add accumulates size into the bucket for c
func (b *AssetBuckets) Add(c AssetCategory, size uint64) {
	if c < 0 || c >= assetCategoryCount {
		c = AssetOther
	}
	b[c].Add(size)
}

// Get returns the bucket for c
func (b *AssetBuckets) Get(c AssetCategory) CategoryBucket {
	if c < 0 || c >= assetCategoryCount {
		c = AssetOther
	}
	return b[c]
}

// TotalSize sums every bucket
func (b *AssetBuckets) TotalSize() uint64 {
	return sumSizes(b[:])
}

// MarshalJSON writes buckets as an object keyed by category name, in report order
func (b AssetBuckets) MarshalJSON() ([]byte, error) {
	return marshalBuckets(assetCategoryNames[:], b[:])
}

// UnmarshalJSON reads buckets keyed by category name; unknown keys are ignored
func (b *AssetBuckets) UnmarshalJSON(data []byte) error {
	return unmarshalBuckets(data, assetCategoryNames[:], b[:])
}

// OtherBuckets holds one bucket per OtherSubcategory
type OtherBuckets [otherSubcategoryCount]CategoryBucket

// Add accumulates size into the bucket for c
func (b *OtherBuckets) Add(c OtherSubcategory, size uint64) {
	if c < 0 || c >= otherSubcategoryCount {
		c = OtherUnclassified
	}
	b[c].Add(size)
}

// Get returns the bucket for c
func (b *OtherBuckets) Get(c OtherSubcategory) CategoryBucket {
	if c < 0 || c >= otherSubcategoryCount {
		c = OtherUnclassified
	}
	return b[c]
}

// TotalSize sums every bucket
func (b *OtherBuckets) TotalSize() uint64 {
	return sumSizes(b[:])
}

// MarshalJSON writes buckets as an object keyed by subcategory name, in report order
func (b OtherBuckets) MarshalJSON() ([]byte, error) {
	return marshalBuckets(otherSubcategoryNames[:], b[:])
}

// UnmarshalJSON reads buckets keyed by subcategory name; unknown keys are ignored
func (b *OtherBuckets) UnmarshalJSON(data []byte) error {
	return unmarshalBuckets(data, otherSubcategoryNames[:], b[:])
}

func sumSizes(buckets []CategoryBucket) uint64 {
	var total uint64
	for _, b := range buckets {
		total += b.Size
	}
	return total
}

func sumCounts(buckets []CategoryBucket) uint64 {
	var total uint64
	for _, b := range buckets {
		total += uint64(b.Count)
	}
	return total
}

func marshalBuckets(names []string, buckets []CategoryBucket) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(buckets[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalBuckets(data []byte, names []string, buckets []CategoryBucket) error {
	var raw map[string]CategoryBucket
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode buckets: %w", err)
	}
	for i, name := range names {
		buckets[i] = raw[name]
	}
	return nil
}
