package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/soypat/pumpsdf/asset"
	"github.com/soypat/pumpsdf/export"
	"github.com/soypat/pumpsdf/internal/logger"
	"github.com/soypat/pumpsdf/internal/watch"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/view"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever the dimension table or the stud asset changes",
	Long: "Watch rebuilds the configured selection each time the TOML dimension table or the\n" +
		"external stud asset is saved. With --export the selection is exported after each rebuild.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("export", false, "export after every rebuild")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	if cfg.Table == "" {
		return errors.New("watch needs a dimension table file, set --table")
	}
	table, err := cfg.DimensionTable()
	if err != nil {
		return err
	}
	acfg, err := cfg.Assembly()
	if err != nil {
		return err
	}
	var ex *export.Exporter
	if on, _ := cmd.Flags().GetBool("export"); on {
		opts, err := cfg.ExportOptions()
		if err != nil {
			return err
		}
		if ex, err = export.New(table, opts, log); err != nil {
			return err
		}
	}

	loader := asset.NewLoader(log)
	surface := view.NewSurface(table, view.WithAssetDir(cfg.AssetDir), view.WithLoader(loader), view.WithLogger(log))
	assetPath := table.Studs.Asset
	if !filepath.IsAbs(assetPath) {
		assetPath = filepath.Join(cfg.AssetDir, assetPath)
	}
	w, err := watch.New(cfg.Table, assetPath)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	last := time.Now()
	rebuild := func() {
		now := time.Now()
		f, err := surface.Frame(acfg, now.Sub(last).Seconds())
		last = now
		if err != nil {
			log.Error("rebuild failed", "error", err)
			return
		}
		nodes, solids := f.Root.Count()
		log.Info("built", "root", f.Root.Name, "nodes", nodes, "solids", solids, "rebuilt", f.Rebuilt)
		for _, warn := range f.Warnings {
			log.Warn("frame warning", "error", warn)
		}
		if ex != nil {
			if _, err := ex.Export(ctx, acfg); err != nil {
				log.Error("export failed", "error", err)
			}
		}
	}
	rebuild()
	log.Info("watching", "table", cfg.Table, "asset", assetPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if ok {
				log.Warn("watch error", "error", err)
			}
		case file, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if file == filepath.Clean(assetPath) {
				loader.Forget(file)
				surface.SetTable(table)
				rebuild()
				continue
			}
			next, err := reload(cfg.Table, log)
			if err != nil {
				continue
			}
			table = next
			surface.SetTable(table)
			if ex != nil {
				opts, _ := cfg.ExportOptions()
				if nex, err := export.New(table, opts, log); err == nil {
					ex = nex
				}
			}
			rebuild()
		}
	}
}

// reload reads and validates the table, keeping the caller's copy on
// failure.
func reload(path string, log *logger.Logger) (part.Table, error) {
	t, err := part.LoadTableFile(path)
	if err == nil {
		err = t.Validate()
	}
	if err != nil {
		log.Error("table rejected, keeping previous", "path", path, "error", err)
	}
	return t, err
}

