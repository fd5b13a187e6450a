package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/external-adapters/jsoncache"
	"github.com/ochairo/footprint/internal/output"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the composition cache",
	}

	cmd.PersistentFlags().String("cache", "", "composition cache file (default is <project>/BuildReports/composition_cache.json)")
	bindKey(cmd.PersistentFlags(), "cache", "cache.path")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the cached breakdown and the project it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.runCacheShow()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the composition cache file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cache := jsoncache.NewFileCache(a.cfg.CachePath(), a.logger)
			if err := cache.Clear(); err != nil {
				return err
			}
			a.formatter.PrintInfo(fmt.Sprintf("Cleared %s", cache.Path()))
			return nil
		},
	})

	return cmd
}

func (a *app) runCacheShow() error {
	cache := jsoncache.NewFileCache(a.cfg.CachePath(), a.logger)

	entry, err := cache.Entry()
	if errors.Is(err, entities.ErrSourceUnavailable) {
		a.formatter.PrintInfo(fmt.Sprintf("No composition cache at %s", cache.Path()))
		return nil
	}
	if err != nil {
		return err
	}

	if a.formatter.Format != output.FormatTable {
		return a.formatter.Print(entry)
	}

	owner := "another project"
	if entry.ProjectIdentity == entities.IdentityForRoot(a.cfg.ProjectRoot()) {
		owner = "this project"
	}

	a.formatter.PrintInfo(fmt.Sprintf("Cache: %s", cache.Path()))
	a.formatter.PrintInfo(fmt.Sprintf("Project: %s (%s)", entry.ProjectIdentity, owner))
	a.formatter.PrintInfo(fmt.Sprintf("Captured: %s\n", humanize.Time(entry.CapturedAt)))
	return a.formatter.PrintBreakdown(entry.Breakdown)
}
