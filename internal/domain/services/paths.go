package services

import (
	"path/filepath"
	"strings"

	"github.com/ochairo/footprint/internal/domain/entities"
)

const editableSourcePrefix = entities.EditableSourceDir + "/"

// normalizePath lower-cases path, converts separators to '/' and adds a leading '/'
// so that directory markers can be matched as whole segments.
func normalizePath(path string) string {
	p := strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
	return "/" + strings.TrimPrefix(p, "/")
}

// hasSegment reports whether the normalized path passes through directory dir
func hasSegment(norm, dir string) bool {
	return strings.Contains(norm, "/"+dir+"/")
}

// baseName returns the last element of a normalized path
func baseName(norm string) string {
	if i := strings.LastIndexByte(norm, '/'); i >= 0 {
		return norm[i+1:]
	}
	return norm
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsEditableSource reports whether a logical path lies under the project's editable-source root.
// Only a leading "Assets/" qualifies, case-sensitively, so packaged "assets/bin/Data" paths and
// nested folders such as "StreamingAssets/Assets" never do.
func IsEditableSource(path string) bool {
	return strings.HasPrefix(strings.ReplaceAll(path, `\`, "/"), editableSourcePrefix)
}

// EditableSourcePath reduces an absolute path inside a project to its "Assets/..." form.
// Relative paths and paths outside the editable-source root are returned with separators normalized.
func EditableSourcePath(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	if strings.HasPrefix(p, editableSourcePrefix) || !isAbsolute(p) {
		return p
	}
	if i := strings.Index(p, "/"+editableSourcePrefix); i >= 0 {
		return p[i+1:]
	}
	return p
}

// buildOutputMarkers locate the shipping part of an absolute build-intermediate path.
// Each entry keeps the text from offset on.
var buildOutputMarkers = []struct {
	marker string
	offset int
}{
	{"/src/main/", len("/src/main/")},
	{"/assets/", 1},
	{"/jniLibs/", 1},
	{"/bin/Data/", len("/bin/Data/")},
	{"/libs/", 1},
}

// CleanLogicalPath turns a path reported by a build tool into a stable logical path.
// Editable-source paths become "Assets/..."; absolute intermediate paths are cut at the first
// known build-output marker, or reduced to their last three segments.
func CleanLogicalPath(path string) string {
	if path == "" {
		return ""
	}
	p := EditableSourcePath(path)
	if IsEditableSource(p) || !isAbsolute(p) {
		return p
	}

	lower := strings.ToLower(p)
	for _, m := range buildOutputMarkers {
		if i := strings.Index(lower, strings.ToLower(m.marker)); i >= 0 {
			return p[i+m.offset:]
		}
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) > 3 {
		return strings.Join(segments[len(segments)-3:], "/")
	}
	return strings.TrimPrefix(p, "/")
}

func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return true
	}
	// Windows drive letter, e.g. C:/Builds
	return len(p) > 2 && p[1] == ':' && p[2] == '/'
}
