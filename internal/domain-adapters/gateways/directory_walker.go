package gateways

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
	"github.com/ochairo/footprint/internal/domain/interfaces/gateways"
)

// FileSystemWalker lists files under a directory root
type FileSystemWalker struct {
	logger interfaces.Logger
}

// NewFileSystemWalker creates a new walker
func NewFileSystemWalker(logger interfaces.Logger) *FileSystemWalker {
	return &FileSystemWalker{logger: interfaces.OrNoOp(logger)}
}

// Walk returns every regular file under root with its '/'-separated relative path
func (w *FileSystemWalker) Walk(_ context.Context, root string, exclude gateways.ExcludePredicate) ([]gateways.WalkedFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory %s: %w", root, entities.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, entities.ErrSourceUnavailable)
	}

	var files []gateways.WalkedFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("Skipping unreadable path", interfaces.F("path", path), interfaces.Err(err))
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if exclude != nil && exclude(rel) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, gateways.WalkedFile{RelativePath: rel, Size: uint64(fi.Size())}) //nolint:gosec // file sizes are non-negative
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
