package main

import (
	"fmt"

	"github.com/aretw0/morph/internal/cli"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <name> <file|->",
	Short: "Validate a document and store it under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		data, err := cli.ReadDocument(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if err := eng.Save(cmd.Context(), args[0], data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved '%s'\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		names, err := eng.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		return eng.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(saveCmd, listCmd, deleteCmd)
}
