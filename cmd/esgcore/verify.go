package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esgcopilot/esgcore/internal/calibration"
	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/surface"
)

var errCalibration = errors.New("calibration failed")

func newVerifyCmd(g *globalOpts) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the calculator against DEFRA 2023 and IEA 2023 reference values",
		Long: `Runs the calibration suite against the active reference tables. Exits
non-zero when any check falls outside its tolerance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), cmd.OutOrStdout(), g, outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	return cmd
}

func runVerify(ctx context.Context, w io.Writer, g *globalOpts, outputFmt string) error {
	if outputFmt != surface.FormatText && outputFmt != surface.FormatJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	result := calibration.Run(emissions.New(e.tables))
	if outputFmt == surface.FormatJSON {
		if err := surface.WriteJSON(w, result); err != nil {
			return err
		}
	} else {
		renderCalibration(w, e.tables.Version, result)
	}

	if !result.Passed() {
		return fmt.Errorf("%w: %d check(s) outside tolerance", errCalibration, result.Failures)
	}
	return nil
}

func renderCalibration(w io.Writer, version string, r calibration.Result) {
	pass, fail := "\033[92m✓\033[0m", "\033[91m✗\033[0m"
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		pass, fail = "✓", "✗"
	}

	rule := strings.Repeat("─", 60)
	fmt.Fprintf(w, "Calculation verification, reference tables %s\n", version)

	section := ""
	for _, c := range r.Checks {
		if c.Section != section {
			section = c.Section
			fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, section, rule)
		}
		icon := pass
		if !c.Passed() {
			icon = fail
		}
		fmt.Fprintf(w, "  %s %s\n", icon, c.Name)
		fmt.Fprintf(w, "       got=%.4f  expected=%.4f  diff=%.4f (%.2f%%)\n",
			c.Got, c.Expected, math.Abs(c.Got-c.Expected), c.DiffPct())
		if c.Source != "" {
			fmt.Fprintf(w, "       source: %s\n", c.Source)
		}
		if c.Note != "" {
			fmt.Fprintf(w, "       note: %s\n", c.Note)
		}
	}

	fmt.Fprintln(w)
	if r.Passed() {
		fmt.Fprintf(w, "  %s All %d checks passed.\n", pass, len(r.Checks))
	} else {
		fmt.Fprintf(w, "  %s %d of %d checks failed. Review the emission factors.\n", fail, r.Failures, len(r.Checks))
	}
}
