package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check a document for problems",
	Long: `Compiles a document and reports every problem by its path in the document,
plus warnings such as unused nodes or empty containers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		data, err := document(cmd, eng, args)
		if err != nil {
			return err
		}

		report, err := eng.Validate(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range report.Problems {
			fmt.Fprintf(out, "error: %s: %s\n", p.Key, p.Reason)
		}
		for _, w := range report.Warnings {
			fmt.Fprintln(out, w)
		}
		if !report.Valid {
			return fmt.Errorf("validation failed: %d problems", len(report.Problems))
		}
		fmt.Fprintln(out, "Document is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("name", "", "Validate a stored document instead of a file")
}
