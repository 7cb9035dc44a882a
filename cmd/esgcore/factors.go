package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/esgcopilot/esgcore/internal/refstore"
	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/surface"
)

func newFactorsCmd(g *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect and export the emission-factor reference tables",
	}
	cmd.AddCommand(newFactorsShowCmd(g), newFactorsExportCmd(g))
	return cmd
}

func newFactorsShowCmd(g *globalOpts) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active reference tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFactorsShow(cmd.Context(), cmd.OutOrStdout(), g, outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "yaml", "Output format: yaml or json")
	return cmd
}

func runFactorsShow(ctx context.Context, w io.Writer, g *globalOpts, outputFmt string) error {
	if outputFmt != "yaml" && outputFmt != surface.FormatJSON {
		return fmt.Errorf("unknown output format %q (want yaml or json)", outputFmt)
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	if outputFmt == surface.FormatJSON {
		return surface.WriteJSON(w, e.tables)
	}
	data, err := refdata.Marshal(e.tables)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newFactorsExportCmd(g *globalOpts) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active reference tables to a file, S3 or GCS",
		Long: `Exports the active reference tables as an editable document. The destination
may be a local path, s3://bucket/key or gs://bucket/key. A .json key writes JSON,
anything else YAML. Exported documents can be loaded again with --factors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFactorsExport(cmd.Context(), cmd.OutOrStdout(), g, dest)
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "Destination path or URI (required)")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}

func runFactorsExport(ctx context.Context, w io.Writer, g *globalOpts, dest string) error {
	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	loc, err := refstore.ParseURI(dest)
	if err != nil {
		return err
	}

	data, err := encodeTables(e.tables, loc.Key)
	if err != nil {
		return err
	}
	if err := refstore.Write(ctx, dest, data, s3Config(e.cfg)); err != nil {
		return fmt.Errorf("exporting reference tables: %w", err)
	}

	e.logger.Info("exported reference tables", zap.String("dest", loc.String()), zap.String("version", e.tables.Version))
	fmt.Fprintf(w, "Exported reference tables %s to %s\n", e.tables.Version, loc)
	return nil
}

func encodeTables(t *refdata.Tables, key string) ([]byte, error) {
	if strings.EqualFold(path.Ext(key), ".json") {
		var sb strings.Builder
		if err := surface.WriteJSON(&sb, t); err != nil {
			return nil, err
		}
		return []byte(sb.String()), nil
	}
	return refdata.Marshal(t)
}
