// Package metadata parses build-tool packed-size reports into packed items.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// Format is the encoding of a metadata file
type Format int

const (
	// FormatJSON covers .json and .jsonc; comments and trailing commas are allowed
	FormatJSON Format = iota
	// FormatYAML covers .yml and .yaml
	FormatYAML
)

// FormatForPath picks the format from the file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unsupported metadata file %s: expected .json, .jsonc, .yml or .yaml", path)
}

// packedContent is one source asset inside a packed file
type packedContent struct {
	SourceAssetPath string `json:"sourceAssetPath" yaml:"sourceAssetPath"`
	PackedSize      uint64 `json:"packedSize" yaml:"packedSize"`
}

// packedAsset is one packed output file and the source assets it holds
type packedAsset struct {
	Path     string          `json:"path" yaml:"path"`
	Contents []packedContent `json:"contents" yaml:"contents"`
}

// legacyFile is the older flat per-file listing
type legacyFile struct {
	Path string `json:"path" yaml:"path"`
	Size uint64 `json:"size" yaml:"size"`
}

// metadataDocument represents the raw report structure; either list may be present
type metadataDocument struct {
	PackedAssets []packedAsset `json:"packedAssets" yaml:"packedAssets"`
	Files        []legacyFile  `json:"files" yaml:"files"`
}

// Parser reads packed-size metadata files
type Parser struct{}

// NewParser creates a new metadata parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses a metadata file, choosing the format from its extension
func (p *Parser) ParseFile(filePath string) ([]entities.PackedItem, error) {
	format, err := FormatForPath(filePath)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G304: filePath is the metadata file named on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data, format)
}

// Parse decodes data. An empty document yields no items.
func (p *Parser) Parse(data []byte, format Format) ([]entities.PackedItem, error) {
	switch format {
	case FormatJSON:
		return p.parseJSON(data)
	case FormatYAML:
		return p.parseYAML(data)
	}
	return nil, fmt.Errorf("unknown metadata format %d", format)
}

func (p *Parser) parseJSON(data []byte) ([]entities.PackedItem, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return nil, nil
	}

	if stripped[0] == '[' {
		var items []entities.PackedItem
		if err := json.Unmarshal(stripped, &items); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return items, nil
	}

	var doc metadataDocument
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return convertDocument(doc), nil
}

func (p *Parser) parseYAML(data []byte) ([]entities.PackedItem, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var items []entities.PackedItem
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return items, nil
	}

	var doc metadataDocument
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return convertDocument(doc), nil
}

// convertDocument takes the packed-assets listing when present and the legacy file list otherwise
func convertDocument(doc metadataDocument) []entities.PackedItem {
	var items []entities.PackedItem
	for _, asset := range doc.PackedAssets {
		for _, c := range asset.Contents {
			items = append(items, entities.PackedItem{SourcePath: c.SourceAssetPath, PackedSize: c.PackedSize})
		}
	}
	if len(items) > 0 {
		return items
	}

	items = make([]entities.PackedItem, 0, len(doc.Files))
	for _, f := range doc.Files {
		items = append(items, entities.PackedItem{SourcePath: f.Path, PackedSize: f.Size})
	}
	return items
}
