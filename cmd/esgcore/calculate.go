package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/esgcopilot/esgcore/pkg/surface"
)

func newCalculateCmd(g *globalOpts) *cobra.Command {
	var (
		file      string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the carbon footprint of a submission",
		Long:  `Runs only the emissions calculator and prints Scope 1, 2 and 3 totals with line items.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd.Context(), cmd.OutOrStdout(), g, file, outputFmt)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission document, YAML or JSON (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runCalculate(ctx context.Context, w io.Writer, g *globalOpts, file, outputFmt string) error {
	if outputFmt != surface.FormatText && outputFmt != surface.FormatJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	engine, err := e.newEngine()
	if err != nil {
		return err
	}
	s, err := e.loadSubmission(file)
	if err != nil {
		return err
	}

	report := engine.Calculate(s)
	if outputFmt == surface.FormatJSON {
		return surface.WriteJSON(w, report)
	}
	return (&surface.TerminalRenderer{}).RenderReport(w, report)
}
