package gateways

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludePatterns leave build intermediates and nested packages out of directory walks.
// Patterns are matched against lower-cased, '/'-separated relative paths.
var DefaultExcludePatterns = []string{
	"**/il2cppbackup/**",
	"**/il2cppoutput/**",
	"**/*_backupthisfolder_*/**",
	"**/*_burstdebuginformation_*/**",
	"**/symbols/**",
	"**/temp/**",
	"**/*.apk",
	"**/*.aab",
	"**/*.ipa",
}

// ExcludeFilter decides which relative paths a walk or metadata read skips
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter creates a filter from the default patterns plus extra ones.
// Invalid extra patterns are dropped and returned so the caller can report them.
func NewExcludeFilter(extra ...string) (*ExcludeFilter, []string) {
	patterns := make([]string, 0, len(DefaultExcludePatterns)+len(extra))
	patterns = append(patterns, DefaultExcludePatterns...)

	var invalid []string
	for _, p := range extra {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			invalid = append(invalid, p)
			continue
		}
		patterns = append(patterns, p)
	}

	return &ExcludeFilter{patterns: patterns}, invalid
}

// Excluded reports whether relativePath matches any pattern
func (f *ExcludeFilter) Excluded(relativePath string) bool {
	if f == nil {
		return false
	}
	p := strings.ToLower(strings.ReplaceAll(relativePath, `\`, "/"))
	p = strings.TrimPrefix(p, "/")
	for _, pattern := range f.patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// Patterns returns the active patterns
func (f *ExcludeFilter) Patterns() []string {
	out := make([]string, len(f.patterns))
	copy(out, f.patterns)
	return out
}
