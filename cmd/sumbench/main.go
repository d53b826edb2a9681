// sumbench times a family of integer summation variants that differ only in
// loop shape, checks they agree, and prints the elapsed time of each.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/combinebench/bench"
	"github.com/colorfulnotion/combinebench/combine"
	log "github.com/colorfulnotion/combinebench/log"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type runOptions struct {
	title    string
	size     int
	cycles   int
	variants []string
	format   string
	chart    string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		logLevel string
		debug    string
		noColor  bool
	)

	rootCmd := &cobra.Command{
		Use:           "sumbench",
		Short:         "Benchmark micro-optimized integer summation variants",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := log.ParseLevel(logLevel); err != nil {
				return err
			}
			log.InitLogger(logLevel, !noColor)
			log.EnableModules(debug)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, crit)")
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "Modules to enable debug output for (timing_mod,bench_mod)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured log levels")

	rootCmd.AddCommand(newRunCmd(), newVariantsCmd(), newVersionCmd())
	return rootCmd
}

func newRunCmd() *cobra.Command {
	defaults := bench.DefaultConfig()
	opts := runOptions{
		title:    defaults.Title,
		size:     defaults.Size,
		cycles:   defaults.Cycles,
		variants: combine.Names(defaults.Variants),
		format:   "text",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run every selected variant and report elapsed times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.OutOrStdout(), opts)
		},
	}
	runCmd.Flags().StringVar(&opts.title, "title", opts.title, "Report title")
	runCmd.Flags().IntVarP(&opts.size, "size", "n", opts.size, "Number of elements (0..n-1) to sum")
	runCmd.Flags().IntVarP(&opts.cycles, "cycles", "c", opts.cycles, "Number of timed cycles; more than one also reports averages")
	runCmd.Flags().StringSliceVar(&opts.variants, "variants", opts.variants, "Comma separated variants to run, in order")
	runCmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (text, json)")
	runCmd.Flags().StringVar(&opts.chart, "chart", "", "Also render an HTML bar chart to this file")
	return runCmd
}

func runBench(out io.Writer, opts runOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("invalid --format %q: must be text or json", opts.format)
	}
	variants, err := combine.Select(opts.variants)
	if err != nil {
		return err
	}

	cfg := bench.Config{
		Title:    opts.title,
		Size:     opts.size,
		Cycles:   opts.cycles,
		Variants: variants,
	}
	runner, err := bench.NewRunner(cfg)
	if err != nil {
		return err
	}

	res, err := runner.Run()
	var mismatch *bench.MismatchError
	if errors.As(err, &mismatch) {
		log.Crit(log.CLIMonitoring, "variant result mismatch", "variant", mismatch.Variant, "cycle", mismatch.Cycle, "got", mismatch.Got, "want", mismatch.Want)
	}
	if err != nil {
		return err
	}

	// text mode prints only the sums; the reports already went to the log
	switch opts.format {
	case "json":
		err = res.WriteJSON(out)
	default:
		err = res.WriteSums(out)
	}
	if err != nil {
		return err
	}

	if opts.chart != "" {
		if err := bench.SaveChart(opts.chart, res.Reports()...); err != nil {
			return err
		}
		log.Info(log.CLIMonitoring, "chart written", "path", opts.chart)
	}
	return nil
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the available summation variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), combine.Tree(combine.Variants()).String())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sumbench %s (commit %s, built %s)\n", Version, Commit, BuildTime)
			return err
		},
	}
}
