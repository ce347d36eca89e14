package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the transition kinds a document may use",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		kinds := eng.Kinds()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(kinds)
		}

		for _, k := range kinds {
			fmt.Fprintf(out, "%-12s %s\n%-12s fields: %s\n", k.Name, k.Description, "", strings.Join(k.Schema.Keys(), ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
	kindsCmd.Flags().Bool("json", false, "Print kinds with their schema as JSON")
}
