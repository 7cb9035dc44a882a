package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/esgcopilot/esgcore/pkg/submission"
	"github.com/esgcopilot/esgcore/pkg/surface"
)

var errNotReady = errors.New("submission is not ready for report generation")

func newCheckCmd(g *globalOpts) *cobra.Command {
	var (
		file      string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that a submission is complete and valid",
		Long: `Reports per-section completeness and blocking issues. Exits non-zero
when the submission has blocking issues or out-of-range answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), file, outputFmt)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission document, YAML or JSON (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

type checkReport struct {
	submission.Completeness
	ValidationError string `json:"validation_error,omitempty"`
}

func runCheck(w io.Writer, file, outputFmt string) error {
	s, err := submission.Load(file)
	if err != nil {
		return err
	}

	report := checkReport{Completeness: s.Completeness()}
	verr := s.Validate()
	if verr != nil {
		report.ValidationError = verr.Error()
	}

	switch outputFmt {
	case surface.FormatJSON:
		if err := surface.WriteJSON(w, report); err != nil {
			return err
		}
	case surface.FormatText:
		(&surface.TerminalRenderer{}).RenderCompleteness(w, report.Completeness)
		if verr != nil {
			fmt.Fprintf(w, "Validation: %v\n", verr)
		}
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}

	if !report.IsComplete || verr != nil {
		return errNotReady
	}
	return nil
}
