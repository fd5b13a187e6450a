package jsoncache

import "github.com/ochairo/footprint/internal/domain/entities"

// ReportFile writes build reports as indented JSON
type ReportFile struct{}

// NewReportFile creates a new report writer
func NewReportFile() *ReportFile {
	return &ReportFile{}
}

// WriteReport replaces path with the encoded report
func (r *ReportFile) WriteReport(path string, report *entities.BuildReport) error {
	return writeJSONAtomic(path, report)
}
