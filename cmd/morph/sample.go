package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/internal/presentation/tui"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [file|-]",
	Short: "Sweep a document and print every frame",
	Long: `Compiles a transition document and sweeps it from its start edge to its end
edge, printing the value of every property that changes at each frame.`,
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
		req, err := sampleRequest(cmd)
		if err != nil {
			return err
		}

		s, err := eng.Sample(cmd.Context(), data, req)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		render, err := renderer(format)
		if err != nil {
			return err
		}
		out, err := render(s)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	addSampleFlags(sampleCmd)
	sampleCmd.Flags().String("name", "", "Sample a stored document instead of a file")
}

func addSampleFlags(cmd *cobra.Command) {
	cmd.Flags().String("direction", "", "Override the direction: 'insertion' or 'removal'")
	cmd.Flags().Int("frames", 0, "Override the number of frames")
	cmd.Flags().String("format", "table", "Output format: 'table', 'markdown' or 'json'")
}

func sampleRequest(cmd *cobra.Command) (morph.SampleRequest, error) {
	var req morph.SampleRequest
	if d, _ := cmd.Flags().GetString("direction"); d != "" {
		dir, err := progress.ParseDirection(d)
		if err != nil {
			return req, err
		}
		req.Direction = dir
	}
	req.Frames, _ = cmd.Flags().GetInt("frames")
	return req, nil
}

// renderer returns the sample formatter for format. The table format is
// styled with glamour when stdout is a terminal and plain markdown otherwise.
func renderer(format string) (func(*morph.Sample) (string, error), error) {
	switch format {
	case "json":
		return func(s *morph.Sample) (string, error) {
			data, err := json.MarshalIndent(s, "", "  ")
			return string(data) + "\n", err
		}, nil
	case "markdown":
		return func(s *morph.Sample) (string, error) {
			return tui.SampleMarkdown(s), nil
		}, nil
	case "table":
		if !tui.IsTerminal(os.Stdout) {
			return renderer("markdown")
		}
		md := tui.NewRenderer(tui.Width(os.Stdout))
		return func(s *morph.Sample) (string, error) {
			return md(tui.SampleMarkdown(s))
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
