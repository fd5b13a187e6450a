// Package jsoncache persists composition breakdowns and build reports as JSON files.
package jsoncache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
)

// DefaultCacheFile is the cache location relative to the project root
const DefaultCacheFile = "BuildReports/composition_cache.json"

// FileCache keeps the last successful breakdown of one project in a single JSON file.
// The file stores the owning project identity; entries of other projects are never served.
type FileCache struct {
	path   string
	logger interfaces.Logger
	now    func() time.Time
}

// NewFileCache creates a cache backed by path
func NewFileCache(path string, logger interfaces.Logger) *FileCache {
	return &FileCache{
		path:   path,
		logger: interfaces.OrNoOp(logger),
		now:    time.Now,
	}
}

// DefaultPath returns the cache file path for a project root
func DefaultPath(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(DefaultCacheFile))
}

// Path returns the backing file
func (c *FileCache) Path() string {
	return c.path
}

// Save overwrites the cache entry. Failures are logged and otherwise ignored.
func (c *FileCache) Save(identity entities.ProjectIdentity, breakdown *entities.CompositionBreakdown) {
	if breakdown == nil {
		return
	}
	entry := entities.CompositionCacheEntry{
		ProjectIdentity: identity,
		Breakdown:       breakdown,
		CapturedAt:      c.now().UTC(),
	}
	if err := writeJSONAtomic(c.path, entry); err != nil {
		c.logger.Warn("Failed to save composition cache", interfaces.F("path", c.path), interfaces.Err(err))
		return
	}
	c.logger.Debug("Saved composition cache", interfaces.F("path", c.path), interfaces.F("project", identity))
}

// Load returns the stored breakdown when it belongs to identity
func (c *FileCache) Load(identity entities.ProjectIdentity) (*entities.CompositionBreakdown, bool) {
	entry, err := c.read()
	if err != nil {
		if errors.Is(err, entities.ErrSourceUnavailable) {
			c.logger.Warn("No composition cache", interfaces.F("path", c.path))
		} else {
			c.logger.Warn("Unreadable composition cache", interfaces.F("path", c.path), interfaces.Err(err))
		}
		return nil, false
	}

	if entry.ProjectIdentity != identity {
		c.logger.Warn("Foreign composition cache",
			interfaces.F("path", c.path),
			interfaces.F("cached_project", entry.ProjectIdentity),
			interfaces.F("project", identity),
			interfaces.Err(entities.ErrProjectMismatch))
		return nil, false
	}

	return entry.Breakdown, true
}

// Entry returns the raw stored entry regardless of its owner
func (c *FileCache) Entry() (*entities.CompositionCacheEntry, error) {
	return c.read()
}

// Clear removes the cache file; a missing file is not an error
func (c *FileCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	return nil
}

func (c *FileCache) read() (*entities.CompositionCacheEntry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cache %s: %w", c.path, entities.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cache %s is empty: %w", c.path, entities.ErrSourceUnavailable)
	}

	var entry entities.CompositionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache: %w", err)
	}
	if entry.Breakdown == nil {
		return nil, fmt.Errorf("cache %s has no breakdown: %w", c.path, entities.ErrSourceUnavailable)
	}
	return &entry, nil
}

// writeJSONAtomic writes v as indented JSON via a temp file and rename
func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
