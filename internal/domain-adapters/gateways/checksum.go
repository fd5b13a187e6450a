package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumSuffix is appended to a report path to name its checksum file
const ChecksumSuffix = ".sha256"

// ReportChecksum writes and checks sha256sum-compatible checksum files for reports
type ReportChecksum struct{}

// NewReportChecksum creates a new report checksum gateway
func NewReportChecksum() *ReportChecksum {
	return &ReportChecksum{}
}

// WriteChecksum writes "<hex>  <name>" next to path and returns the checksum file path
func (c *ReportChecksum) WriteChecksum(_ context.Context, path string) (string, error) {
	sum, err := CalculateChecksum(path)
	if err != nil {
		return "", err
	}

	sumPath := path + ChecksumSuffix
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	//nolint:gosec // G306: checksums are public
	if err := os.WriteFile(sumPath, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("failed to write checksum: %w", err)
	}
	return sumPath, nil
}

// VerifyChecksum checks path against the first field of the checksum file at sumPath
func (c *ReportChecksum) VerifyChecksum(_ context.Context, path, sumPath string) error {
	//nolint:gosec // G304: sumPath is user-provided for checksum verification
	data, err := os.ReadFile(sumPath)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	// Parse checksum file (format: "hash  filename")
	parts := strings.Fields(string(data))
	if len(parts) < 1 {
		return fmt.Errorf("invalid checksum file format")
	}
	expectedSum := strings.ToLower(parts[0])

	actualSum, err := CalculateChecksum(path)
	if err != nil {
		return err
	}

	if actualSum != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum calculates the SHA256 checksum of a file
func CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
