package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/soypat/pumpsdf/assembly"
	"github.com/soypat/pumpsdf/internal/d3"
	"github.com/soypat/pumpsdf/scene"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [selection]",
	Short: "Print the node tree of a selection",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Int("depth", 3, "deepest level printed")
	inspectCmd.Flags().Bool("solids", false, "print solids under their node")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	if len(args) == 1 {
		cfg.Selection = args[0]
	}
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
	depth, _ := cmd.Flags().GetInt("depth")
	solids, _ := cmd.Flags().GetBool("solids")
	tree := node.Tree()
	nodes, nsolids := tree.Count()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d parts, %d nodes, %d solids\n", tree.Name, len(node.Parts), nodes, nsolids)
	printTree(out, tree, depth, solids)
	return nil
}

func printTree(w io.Writer, root *scene.PartNode, maxDepth int, solids bool) {
	depth := map[*scene.PartNode]int{root: 0}
	root.Walk(func(n *scene.PartNode, world d3.Transform) bool {
		d := depth[n]
		for _, c := range n.Children {
			depth[c] = d + 1
		}
		pad := strings.Repeat("  ", d)
		p := world.Transform(r3.Vec{})
		fmt.Fprintf(w, "%s%s at (%.4g, %.4g, %.4g)", pad, n.Name, p.X, p.Y, p.Z)
		if n.Spin.Rate != 0 {
			fmt.Fprintf(w, " spin %g rad/s", n.Spin.Rate)
		}
		if n.Asset != nil {
			fmt.Fprintf(w, " asset %s", n.Asset.Path)
		}
		fmt.Fprintln(w)
		if solids {
			for _, s := range n.Solids {
				fmt.Fprintf(w, "%s  - %s %s", pad, s.Name, s.Primitive.Type)
				if s.Primitive.Cut != nil {
					fmt.Fprint(w, " (cut)")
				}
				if !s.Meshable() {
					fmt.Fprint(w, " (not meshed)")
				}
				fmt.Fprintln(w)
			}
		}
		return d < maxDepth
	})
}
