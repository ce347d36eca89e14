package main

import (
	"fmt"

	"github.com/aretw0/morph/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file|-]",
	Short: "Export the transition tree visualization",
	Long:  `Compiles a document and outputs a Mermaid diagram (graph TD) of its transition tree.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		data, err := document(cmd, eng, args)
		if err != nil {
			return err
		}

		tree, err := eng.Inspect(data)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if focus, _ := cmd.Flags().GetString("focus"); focus != "" {
			overlay = &graph.GraphOverlay{FocusNode: focus}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tree, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("name", "", "Graph a stored document instead of a file")
	graphCmd.Flags().String("focus", "", "Highlight the entries that animate this node")
}
