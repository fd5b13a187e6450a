// Package promfile writes composition breakdowns as Prometheus textfile-collector metrics.
package promfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// Exporter holds the gauges of one breakdown on a private registry
type Exporter struct {
	registry *prometheus.Registry

	fileBytes  *prometheus.GaugeVec
	fileItems  *prometheus.GaugeVec
	otherBytes *prometheus.GaugeVec
	assetBytes *prometheus.GaugeVec
	totalBytes *prometheus.GaugeVec
	outputSize *prometheus.GaugeVec
	fromCache  *prometheus.GaugeVec
	noData     *prometheus.GaugeVec
}

// NewExporter creates and registers all footprint metrics
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Exporter{
		registry: reg,
		fileBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_file_category_bytes",
				Help: "Bytes per built-file category",
			},
			[]string{"platform", "category"},
		),
		fileItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_file_category_items",
				Help: "Items per built-file category",
			},
			[]string{"platform", "category"},
		),
		otherBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_other_kind_bytes",
				Help: "Bytes per kind inside the other category",
			},
			[]string{"platform", "kind"},
		),
		assetBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_asset_category_bytes",
				Help: "Bytes per project asset category",
			},
			[]string{"platform", "category"},
		),
		totalBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_composition_bytes",
				Help: "Total bytes of the composition breakdown",
			},
			[]string{"platform", "source"},
		),
		outputSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_output_size_bytes",
				Help: "Shipped size of the build output",
			},
			[]string{"platform", "artifact"},
		),
		fromCache: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_composition_from_cache",
				Help: "1 when the breakdown was served from the cache",
			},
			[]string{"platform"},
		),
		noData: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "footprint_composition_no_data",
				Help: "1 when no source had composition data",
			},
			[]string{"platform"},
		),
	}
}

// Registry exposes the gatherer holding the exported metrics
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe sets every gauge from a breakdown. Empty other and asset buckets are not exported.
func (e *Exporter) Observe(platform entities.Platform, b *entities.CompositionBreakdown) {
	if b == nil {
		b = entities.NewEmptyBreakdown()
	}
	p := string(platform)

	for _, c := range entities.FileCategories() {
		bucket := b.Files.Get(c)
		e.fileBytes.WithLabelValues(p, c.String()).Set(float64(bucket.Size))
		e.fileItems.WithLabelValues(p, c.String()).Set(float64(bucket.Count))
	}

	if b.OtherDetail != nil {
		for i := range b.OtherDetail {
			kind := entities.OtherSubcategory(i)
			if bucket := b.OtherDetail.Get(kind); bucket.Count > 0 {
				e.otherBytes.WithLabelValues(p, kind.String()).Set(float64(bucket.Size))
			}
		}
	}

	if b.Assets != nil {
		for _, c := range entities.AssetCategories() {
			if bucket := b.Assets.Buckets.Get(c); bucket.Count > 0 {
				e.assetBytes.WithLabelValues(p, c.String()).Set(float64(bucket.Size))
			}
		}
	}

	e.totalBytes.WithLabelValues(p, string(b.Source)).Set(float64(b.TotalSize()))
	e.fromCache.WithLabelValues(p).Set(boolGauge(b.FromCache))
	e.noData.WithLabelValues(p).Set(boolGauge(b.NoData))
}

// ObserveReport sets the breakdown gauges and the output size of a report
func (e *Exporter) ObserveReport(report *entities.BuildReport) {
	e.Observe(report.Platform, report.Composition)
	e.outputSize.WithLabelValues(string(report.Platform), string(report.Artifact.Type)).Set(float64(report.OutputSizeBytes))
}

// WriteFile writes the metrics in text exposition format, replacing path atomically
func (e *Exporter) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
