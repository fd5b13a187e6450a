package entities

import (
	"path/filepath"
	"strings"
)

// Platform is the build target that produced an artifact
type Platform string

// Supported build targets
const (
	PlatformAndroid   Platform = "android"
	PlatformIOS       Platform = "ios"
	PlatformWebGL     Platform = "webgl"
	PlatformWindows   Platform = "windows"
	PlatformWindows64 Platform = "windows64"
	PlatformOSX       Platform = "osx"
	PlatformLinux64   Platform = "linux64"
	PlatformUnknown   Platform = "unknown"
)

// platformAliases maps engine and CLI spellings to a Platform
var platformAliases = map[string]Platform{
	"android":             PlatformAndroid,
	"ios":                 PlatformIOS,
	"iphone":              PlatformIOS,
	"webgl":               PlatformWebGL,
	"web":                 PlatformWebGL,
	"windows":             PlatformWindows,
	"win":                 PlatformWindows,
	"standalonewindows":   PlatformWindows,
	"windows64":           PlatformWindows64,
	"win64":               PlatformWindows64,
	"standalonewindows64": PlatformWindows64,
	"osx":                 PlatformOSX,
	"macos":               PlatformOSX,
	"darwin":              PlatformOSX,
	"standaloneosx":       PlatformOSX,
	"linux":               PlatformLinux64,
	"linux64":             PlatformLinux64,
	"standalonelinux64":   PlatformLinux64,
}

// ParsePlatform normalizes a platform identifier. Unrecognized values map to PlatformUnknown.
func ParsePlatform(s string) Platform {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	if p, ok := platformAliases[key]; ok {
		return p
	}
	return PlatformUnknown
}

// IsStandalone reports whether the platform is a desktop player build
func (p Platform) IsStandalone() bool {
	switch p {
	case PlatformWindows, PlatformWindows64, PlatformOSX, PlatformLinux64:
		return true
	}
	return false
}

// IsKnown reports whether the analyzer has container rules for the platform
func (p Platform) IsKnown() bool {
	return p != PlatformUnknown && p != ""
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
