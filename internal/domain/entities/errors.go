package entities

import (
	"errors"
	"fmt"
)

// Source errors. None of them is fatal to an analysis; every one triggers fallthrough.
var (
	// ErrSourceUnavailable means a source had nothing to read (absent metadata, missing directory)
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrArchiveUnreadable means a container could not be opened as a zip structure
	ErrArchiveUnreadable = fmt.Errorf("archive unreadable: %w", ErrSourceUnavailable)

	// ErrProjectMismatch means log or cache data belongs to another project
	ErrProjectMismatch = errors.New("project mismatch")

	// ErrUnsupportedPlatform means no container rules exist for the platform
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform: %w", ErrSourceUnavailable)
)
