package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export [selection...]",
	Short: "Write scene JSON, meshes and drawings",
	Long: "Export writes the configured selection, the selections given as arguments, or every\n" +
		"selection with --all, followed by manifest.yaml. Any write failure aborts the run.",
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Bool("all", false, "export every selection")
	f.StringP("dir", "o", "out", "output directory")
	f.String("formats", "json,stl", "comma separated formats: "+formatList()+" or all")
	f.Int("cells", 64, "mesh cells along the longest side")
	f.String("mesher", export.MesherOctree, "octree or sdfx")
	for key, flag := range map[string]string{
		"export.dir":     "dir",
		"export.formats": "formats",
		"export.cells":   "cells",
		"export.mesher":  "mesher",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	rootCmd.AddCommand(exportCmd)
}

func formatList() string {
	var s string
	for i, f := range export.Formats() {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	table, err := cfg.DimensionTable()
	if err != nil {
		return err
	}
	acfg, err := cfg.Assembly()
	if err != nil {
		return err
	}
	opts, err := cfg.ExportOptions()
	if err != nil {
		return err
	}
	ex, err := export.New(table, opts, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var m *export.Manifest
	if all, _ := cmd.Flags().GetBool("all"); all {
		m, err = ex.ExportAll(ctx, acfg)
	} else if len(args) == 0 {
		m, err = ex.Export(ctx, acfg)
	} else {
		sels := make([]assembly.Selection, 0, len(args))
		for _, a := range args {
			sel, err := assembly.ParseSelection(a)
			if err != nil {
				return err
			}
			sels = append(sels, sel)
		}
		m, err = ex.ExportSelections(ctx, acfg, sels...)
	}
	if err != nil {
		return err
	}
	files := 0
	for _, e := range m.Entries {
		files += len(e.Files)
		for _, w := range e.Warnings {
			log.Warn("incomplete selection", "selection", e.Selection, "error", w)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files for %d selections to %s\n", files, len(m.Entries), opts.Dir)
	return nil
}
