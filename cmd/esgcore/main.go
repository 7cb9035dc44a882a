// Package main provides the esgcore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:   "esgcore",
		Short: "Carbon footprint, ESG scoring and improvement roadmaps for SMEs",
		Long: `esgcore converts a company's annual activity data into a GHG Protocol
carbon footprint, scores it on Environmental, Social and Governance criteria,
and proposes a prioritised twelve month improvement roadmap.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to config file (default: search for .esgcore/config.yaml)")
	pf.StringVar(&g.factors, "factors", "", "Reference tables: path, s3://bucket/key or gs://bucket/key (default: embedded)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(
		newRunCmd(g),
		newCalculateCmd(g),
		newCheckCmd(g),
		newFactorsCmd(g),
		newVerifyCmd(g),
	)
	return rootCmd
}
