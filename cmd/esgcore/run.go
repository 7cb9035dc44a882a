package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/surface"
)

func newRunCmd(g *globalOpts) *cobra.Command {
	var (
		file            string
		outputFmt       string
		metricsTextfile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate, score and build a roadmap for a submission",
		Long: `Runs the full pipeline on a submission document: carbon footprint,
ESG score and the prioritised improvement roadmap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), cmd.OutOrStdout(), g, runOpts{
				file:            file,
				outputFmt:       outputFmt,
				metricsTextfile: metricsTextfile,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission document, YAML or JSON (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json, record or markdown")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics for this run to a textfile")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

type runOpts struct {
	file            string
	outputFmt       string
	metricsTextfile string
}

func runRun(ctx context.Context, w io.Writer, g *globalOpts, opts runOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	var (
		reg     *prometheus.Registry
		engOpts []pipeline.Option
	)
	if opts.metricsTextfile != "" {
		reg = prometheus.NewRegistry()
		engOpts = append(engOpts, pipeline.WithMetrics(pipeline.NewMetrics(reg)))
	}

	engine, err := e.newEngine(engOpts...)
	if err != nil {
		return err
	}

	s, err := e.loadSubmission(opts.file)
	if err != nil {
		return err
	}

	result, err := engine.Run(s)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	for _, msg := range result.CO2.Warnings {
		e.logger.Warn("calculation fallback", zap.String("detail", msg))
	}
	e.logger.Info("run complete",
		zap.String("run_id", result.RunID),
		zap.Float64("total_tonnes", result.CO2.TotalTonnes()),
		zap.Float64("esg_score_total", result.ESG.Total),
		zap.String("esg_rating", result.ESG.Rating),
	)

	if err := renderer.Render(w, result); err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(opts.metricsTextfile, reg); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
		e.logger.Debug("wrote metrics textfile", zap.String("path", opts.metricsTextfile))
	}
	return nil
}
