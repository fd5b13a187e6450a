// Package output renders composition breakdowns and reports for the footprint CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// Format represents the output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", s)
	}
}

// Formatter formats output in various formats
type Formatter struct {
	Format Format
	Quiet  bool
	Writer io.Writer
}

// NewFormatter creates a new formatter writing to stdout
func NewFormatter(format Format, quiet bool) *Formatter {
	return &Formatter{
		Format: format,
		Quiet:  quiet,
		Writer: os.Stdout,
	}
}

// Print outputs data as JSON or YAML; table mode falls back to JSON
func (f *Formatter) Print(data interface{}) error {
	if f.Quiet {
		return nil
	}

	if f.Format == FormatYAML {
		return f.printYAML(data)
	}
	return f.printJSON(data)
}

func (f *Formatter) printJSON(data interface{}) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML goes through JSON so custom JSON marshalers (ordered bucket objects) are honored
func (f *Formatter) printYAML(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("failed to convert output to yaml: %w", err)
	}
	clearStyle(&node)

	encoder := yaml.NewEncoder(f.Writer)
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(&node)
}

// clearStyle drops the flow style the JSON input gave every node
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// TableData represents tabular data for table output
type TableData struct {
	Headers []string
	Rows    [][]string
}

// PrintTable prints formatted table output
func (f *Formatter) PrintTable(data TableData) {
	if f.Quiet {
		return
	}

	table := tablewriter.NewWriter(f.Writer)
	if len(data.Headers) > 0 {
		table.SetHeader(data.Headers)
	}

	// Configure table style
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(data.Rows)
	table.Render()
}

// PrintInfo prints a plain line
func (f *Formatter) PrintInfo(message string) {
	if f.Quiet {
		return
	}
	_, _ = fmt.Fprintln(f.Writer, message)
}

// PrintBreakdown renders a breakdown: sections of tables in table mode, the document otherwise
func (f *Formatter) PrintBreakdown(b *entities.CompositionBreakdown) error {
	if f.Format != FormatTable {
		return f.Print(b)
	}
	if f.Quiet {
		return nil
	}

	source := string(b.Source)
	if b.FromCache {
		source += " (from cache)"
	}
	f.PrintInfo(fmt.Sprintf("Source: %s", source))

	if b.NoData {
		f.PrintInfo("No composition data available")
		return nil
	}

	total := b.TotalSize()
	f.PrintInfo(fmt.Sprintf("Total: %s in %d items\n", humanize.IBytes(total), b.Files.TotalCount()))
	f.PrintTable(FileBucketsTable(b.Files, total))

	if b.OtherDetail != nil && b.OtherDetail.TotalSize() > 0 {
		f.PrintInfo("\nOther, by kind:")
		f.PrintTable(OtherBucketsTable(*b.OtherDetail))
	}

	if b.HasAssets() {
		f.PrintInfo(fmt.Sprintf("\nProject assets: %s in %d items", humanize.IBytes(b.Assets.TotalSize), b.Assets.TotalCount))
		f.PrintTable(AssetBucketsTable(b.Assets.Buckets, b.Assets.TotalSize))
	}

	if len(b.TopContributors) > 0 {
		f.PrintInfo("\nLargest items:")
		f.PrintTable(TopContributorsTable(b.TopContributors))
	}
	return nil
}

// FileBucketsTable lists every file category, empty ones included
func FileBucketsTable(buckets entities.FileBuckets, total uint64) TableData {
	data := TableData{Headers: []string{"Category", "Size", "Items", "Share"}}
	for _, c := range entities.FileCategories() {
		bucket := buckets.Get(c)
		data.Rows = append(data.Rows, bucketRow(c.String(), bucket, total))
	}
	return data
}

// OtherBucketsTable lists only the non-empty subcategories of "other"
func OtherBucketsTable(buckets entities.OtherBuckets) TableData {
	total := buckets.TotalSize()
	data := TableData{Headers: []string{"Kind", "Size", "Items", "Share"}}
	for i := range buckets {
		c := entities.OtherSubcategory(i)
		bucket := buckets.Get(c)
		if bucket.Count == 0 {
			continue
		}
		data.Rows = append(data.Rows, bucketRow(c.String(), bucket, total))
	}
	return data
}

// AssetBucketsTable lists only the non-empty asset categories
func AssetBucketsTable(buckets entities.AssetBuckets, total uint64) TableData {
	data := TableData{Headers: []string{"Asset type", "Size", "Items", "Share"}}
	for _, c := range entities.AssetCategories() {
		bucket := buckets.Get(c)
		if bucket.Count == 0 {
			continue
		}
		data.Rows = append(data.Rows, bucketRow(c.String(), bucket, total))
	}
	return data
}

// TopContributorsTable lists the largest records, ranked
func TopContributorsTable(records []entities.AssetRecord) TableData {
	data := TableData{Headers: []string{"#", "Path", "Size", "Category"}}
	for i, r := range records {
		data.Rows = append(data.Rows, []string{
			fmt.Sprintf("%d", i+1),
			r.LogicalPath,
			humanize.IBytes(r.Size),
			r.Category,
		})
	}
	return data
}

func bucketRow(name string, bucket entities.CategoryBucket, total uint64) []string {
	return []string{
		name,
		humanize.IBytes(bucket.Size),
		humanize.Comma(int64(bucket.Count)),
		Percent(bucket.Size, total),
	}
}

// Percent formats part/total with one decimal; a zero total gives "0.0%"
func Percent(part, total uint64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
