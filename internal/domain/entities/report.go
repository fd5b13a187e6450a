package entities

import "time"

// ArtifactType is the packaging form of a build output
type ArtifactType string

// Artifact types
const (
	ArtifactAPK    ArtifactType = "apk"
	ArtifactAAB    ArtifactType = "aab"
	ArtifactIPA    ArtifactType = "ipa"
	ArtifactEXE    ArtifactType = "exe"
	ArtifactApp    ArtifactType = "app"
	ArtifactWebGL  ArtifactType = "webgl"
	ArtifactXcode  ArtifactType = "xcode"
	ArtifactFolder ArtifactType = "folder"
	ArtifactFile   ArtifactType = "file"
)

// ArtifactInfo describes the packaging of a build output
type ArtifactInfo struct {
	Type      ArtifactType `json:"type"`
	Extension string       `json:"extension,omitempty"`
	// PackagePath is the package file found inside a directory output, if any
	PackagePath string `json:"packagePath,omitempty"`
}

// BuildReport is the envelope handed to reporting and upload collaborators
type BuildReport struct {
	Project         string                `json:"project"`
	ProjectIdentity ProjectIdentity       `json:"projectIdentity"`
	Platform        Platform              `json:"platform"`
	BuildGUID       string                `json:"buildGuid"`
	Timestamp       time.Time             `json:"timestamp"`
	OutputPath      string                `json:"outputPath"`
	OutputSizeBytes uint64                `json:"outputSizeBytes"`
	Artifact        ArtifactInfo          `json:"artifact"`
	Composition     *CompositionBreakdown `json:"composition"`
}
