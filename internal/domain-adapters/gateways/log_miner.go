package gateways

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
)

const (
	// usedAssetsHeader opens the per-build asset listing in the editor log
	usedAssetsHeader = "Used Assets and files from the Resources folder"

	// DefaultLogWindowLines is how far above the header the project root must appear
	DefaultLogWindowLines = 1000

	maxLogLineBytes = 1024 * 1024
)

var logUnits = map[string]float64{
	"b":     1,
	"bytes": 1,
	"kb":    1024,
	"mb":    1024 * 1024,
	"gb":    1024 * 1024 * 1024,
}

// EditorLogMiner recovers asset sizes from the last build section of the shared editor log.
// The log is shared by every project on the machine, so a section is only used when
// the lines just before it mention this project's root.
type EditorLogMiner struct {
	window int
	logger interfaces.Logger
}

// NewEditorLogMiner creates a miner checking window lines above the header (DefaultLogWindowLines when <= 0)
func NewEditorLogMiner(window int, logger interfaces.Logger) *EditorLogMiner {
	if window <= 0 {
		window = DefaultLogWindowLines
	}
	return &EditorLogMiner{window: window, logger: interfaces.OrNoOp(logger)}
}

// Mine returns the editable-source records of the last build section.
// It returns false when the log is missing, has no section, or the section belongs to another project.
func (m *EditorLogMiner) Mine(_ context.Context, logPath string, project entities.Project) ([]entities.AssetRecord, bool) {
	if logPath == "" {
		return nil, false
	}

	lines, err := readLines(logPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Editor log not found", interfaces.F("path", logPath))
		} else {
			m.logger.Warn("Failed to read editor log", interfaces.F("path", logPath), interfaces.Err(err))
		}
		return nil, false
	}

	header := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], usedAssetsHeader) {
			header = i
			break
		}
	}
	if header < 0 {
		m.logger.Info("No asset section in editor log, incremental builds do not write one", interfaces.F("path", logPath))
		return nil, false
	}

	if !m.sectionBelongsTo(lines, header, project) {
		m.logger.Warn("Editor log section belongs to a different project",
			interfaces.F("path", logPath),
			interfaces.F("project", project.Root),
			interfaces.Err(entities.ErrProjectMismatch))
		return nil, false
	}

	records := make([]entities.AssetRecord, 0)
	for _, line := range lines[header+1:] {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "---") {
			break
		}
		if !strings.Contains(line, entities.EditableSourceDir+"/") || strings.Contains(line, "Built-in") {
			continue
		}
		if r, ok := parseAssetLine(line); ok {
			records = append(records, r)
		}
	}

	m.logger.Info("Collected assets from editor log", interfaces.F("count", len(records)))
	return records, true
}

// sectionBelongsTo looks for the project root in the window lines above header
func (m *EditorLogMiner) sectionBelongsTo(lines []string, header int, project entities.Project) bool {
	tokens := project.MarkerTokens()
	if len(tokens) == 0 {
		return false
	}

	start := header - m.window
	if start < 0 {
		start = 0
	}
	for i := header - 1; i >= start; i-- {
		for _, token := range tokens {
			if mentionsPath(lines[i], token) {
				return true
			}
		}
	}
	return false
}

// mentionsPath reports whether line contains token as a whole path, so that "/work/Game"
// is not found inside "/work/Game2" or "/old/work/Game".
func mentionsPath(line, token string) bool {
	for from := 0; from <= len(line)-len(token); {
		i := strings.Index(line[from:], token)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(token)
		if (start == 0 || !isPathByte(line[start-1])) && (end == len(line) || endsPath(line[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isPathByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte(`/\._-`, c) >= 0 || c >= 0x80
}

func endsPath(c byte) bool {
	return strings.IndexByte("/\\\"' \t\r", c) >= 0
}

// parseAssetLine reads "<value> <unit> <pct>% Assets/<path>"; the path may contain spaces
func parseAssetLine(line string) (entities.AssetRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return entities.AssetRecord{}, false
	}

	pathAt := -1
	for i, f := range fields {
		if strings.HasPrefix(f, entities.EditableSourceDir+"/") {
			pathAt = i
			break
		}
	}
	if pathAt < 2 {
		return entities.AssetRecord{}, false
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value < 0 {
		return entities.AssetRecord{}, false
	}
	multiplier, ok := logUnits[strings.ToLower(fields[1])]
	if !ok {
		return entities.AssetRecord{}, false
	}

	return entities.AssetRecord{
		LogicalPath: strings.Join(fields[pathAt:], " "),
		Size:        uint64(value * multiplier),
	}, true
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// DefaultEditorLogPath returns where the editor writes its log on this machine, or "" when unknown
func DefaultEditorLogPath() string {
	home, _ := os.UserHomeDir()
	return editorLogPath(runtime.GOOS, home, os.Getenv("LOCALAPPDATA"))
}

func editorLogPath(goos, home, localAppData string) string {
	switch goos {
	case "darwin":
		if home != "" {
			return filepath.Join(home, "Library", "Logs", "Unity", "Editor.log")
		}
	case "windows":
		if localAppData != "" {
			return filepath.Join(localAppData, "Unity", "Editor", "Editor.log")
		}
	case "linux":
		if home != "" {
			return filepath.Join(home, ".config", "unity3d", "Editor.log")
		}
	}
	return ""
}
