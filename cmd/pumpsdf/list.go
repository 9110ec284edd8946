package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/soypat/pumpsdf/assembly"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List selections, or the placements of the configured selection",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("placements", false, "list the placed parts of the selection with their positions")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()
	if placements, _ := cmd.Flags().GetBool("placements"); !placements {
		fmt.Fprintln(w, "SELECTION\tVIEW")
		for _, sel := range assembly.Selections() {
			view := "part"
			switch sel.View {
			case assembly.ViewAssembly:
				view = "assembly"
			case assembly.ViewCartridge:
				view = "cartridge"
			}
			fmt.Fprintf(w, "%s\t%s\n", sel, view)
		}
		return nil
	}

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
	node, err := assembly.Select(table, acfg)
	if node == nil {
		return err
	}
	if err != nil {
		log.Warn("incomplete selection", "error", err)
	}
	fmt.Fprintln(w, "PART\tKIND\tAXIAL\tRADIAL")
	for i, p := range node.Placements {
		pos := node.Position(i)
		fmt.Fprintf(w, "%s\t%s\t%.4g\t(%.4g, %.4g)\n", p.Name(), p.Kind, pos.Y, pos.X, pos.Z)
	}
	return nil
}
