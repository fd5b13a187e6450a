package entities

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// EditableSourceDir is the project-relative directory holding user-editable assets
const EditableSourceDir = "Assets"

// ProjectIdentity marks which project produced a cache entry or log section.
// It is a stable label, not a security boundary.
type ProjectIdentity string

// IdentityForRoot derives the identity of the project rooted at root.
// The root is cleaned and made absolute so that equivalent spellings agree.
func IdentityForRoot(root string) ProjectIdentity {
	clean := normalizeRoot(root)
	sum := blake3.Sum256([]byte(clean))
	return ProjectIdentity("p-" + hex.EncodeToString(sum[:16]))
}

// Project is the project an analysis runs for
type Project struct {
	Root     string
	Identity ProjectIdentity
}

// NewProject builds a Project from its root directory
func NewProject(root string) Project {
	return Project{
		Root:     normalizeRoot(root),
		Identity: IdentityForRoot(root),
	}
}

// MarkerTokens returns the strings whose presence in a log proves it mentions this project:
// the root itself and its editable-source directory, in both separator styles.
func (p Project) MarkerTokens() []string {
	if p.Root == "" {
		return nil
	}
	slashRoot := filepath.ToSlash(p.Root)
	tokens := []string{
		slashRoot + "/" + EditableSourceDir,
		slashRoot,
	}
	if back := strings.ReplaceAll(slashRoot, "/", `\`); back != slashRoot {
		tokens = append(tokens, back+`\`+EditableSourceDir, back)
	}
	return tokens
}

func normalizeRoot(root string) string {
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Clean(root)
}
