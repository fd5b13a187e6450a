package main

import (
	"github.com/spf13/cobra"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/services"
	"github.com/ochairo/footprint/internal/output"
)

// classification is how one path is bucketed
type classification struct {
	Path      string `json:"path"`
	Category  string `json:"category"`
	OtherKind string `json:"otherKind,omitempty"`
	AssetType string `json:"assetType,omitempty"`
}

func newClassifyCmd(a *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "classify <path>...",
		Short: "Show which categories paths fall into",
		Long: `Classify paths with the rules used for the given platform.

Paths are as they appear inside an artifact (for example lib/arm64-v8a/libil2cpp.so)
or as project-relative asset paths (for example Assets/Textures/hero.png).
Without --platform the platform-independent rules are used.`,
		Example: `  footprint classify --platform android classes.dex assets/bin/Data/level0
  footprint classify Assets/Audio/theme.ogg -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runClassify(entities.ParsePlatform(platform), args)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "build target whose container rules apply")
	return cmd
}

func (a *app) runClassify(platform entities.Platform, paths []string) error {
	classify := services.ForPlatform(platform)

	results := make([]classification, 0, len(paths))
	for _, p := range paths {
		c := classify(p)
		r := classification{Path: p, Category: c.String()}
		if c == entities.FileOther {
			r.OtherKind = services.ClassifyOther(platform, p).String()
		}
		if logical := services.CleanLogicalPath(p); services.IsEditableSource(logical) {
			r.AssetType = services.ClassifyAsset(logical).String()
		}
		results = append(results, r)
	}

	if a.formatter.Format != output.FormatTable {
		return a.formatter.Print(results)
	}

	data := output.TableData{Headers: []string{"Path", "Category", "Other kind", "Asset type"}}
	for _, r := range results {
		data.Rows = append(data.Rows, []string{r.Path, r.Category, dash(r.OtherKind), dash(r.AssetType)})
	}
	a.formatter.PrintTable(data)
	if !platform.IsKnown() {
		a.formatter.PrintInfo("\n(platform-independent rules)")
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
