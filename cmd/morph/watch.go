package main

import (
	"github.com/aretw0/morph/internal/cli"
	"github.com/aretw0/morph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [name...]",
	Short: "Resample documents whenever they change",
	Long: `Samples the documents in --dir, then samples each one again every time its
file is written. With names, only those documents are watched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, logger, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		req, err := sampleRequest(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		render, err := renderer(format)
		if err != nil {
			return err
		}

		if format != "json" {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		logger.Info("Starting Watcher", "path", options(cmd).Dir)
		return cli.RunWatch(sigCtx, eng, cli.WatchOptions{
			Names:   args,
			Request: req,
			Out:     cmd.OutOrStdout(),
			Render:  render,
			Logger:  logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSampleFlags(watchCmd)
}
