package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckport/deckport/internal/config"
	"github.com/deckport/deckport/internal/report"
)

// CompareResultsOptions holds flags for the compare-results command.
type CompareResultsOptions struct {
	*RootOptions
	Calibre   string
	ICV       string
	Tolerance float64
}

// NewCompareResultsCommand creates the compare-results command.
func NewCompareResultsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareResultsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare-results -c <calibre.rpt> -i <icv.log>",
		Short: "Compare Calibre and ICV DRC results",
		Long: `Compare a Calibre DRC report against an ICV run log.

Violations are matched per rule by coordinate, within a configurable
tolerance on each axis. Rules present on only one side, differing counts
and unmatched locations are all reported.

Exit codes:
  0 - Results match
  1 - Results differ
  2 - Command error (unreadable input)

Examples:
  deckport compare-results -c drc.rpt -i icv.log
  deckport compare-results -c drc.rpt -i icv.log -t 0.01`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompareResults(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Calibre, "calibre", "c", "", "Calibre DRC report file")
	cmd.Flags().StringVarP(&opts.ICV, "icv", "i", "", "ICV run log file")
	cmd.Flags().Float64VarP(&opts.Tolerance, "tolerance", "t", config.DefaultTolerance, "coordinate match tolerance")
	_ = cmd.MarkFlagRequired("calibre")
	_ = cmd.MarkFlagRequired("icv")

	return cmd
}

func runCompareResults(opts *CompareResultsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	tolerance := cfg.Compare.Tolerance
	if cmd.Flags().Changed("tolerance") {
		tolerance = opts.Tolerance
	}

	cal, err := parseViolationFile(opts.Calibre, report.ParseCalibre)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.Calibre), err)
	}
	icv, err := parseViolationFile(opts.ICV, report.ParseICV)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.ICV), err)
	}

	formatter.VerboseLog("Comparing %d Calibre rule(s) against %d ICV rule(s), tolerance %g", len(cal), len(icv), tolerance)

	result := report.NewComparator(tolerance).Compare(cal, icv)

	if result.PerfectMatch {
		return outputCompareMatch(formatter, result)
	}
	return outputCompareMismatch(formatter, result)
}

// parseViolationFile reads one violation source through the given parser.
func parseViolationFile(path string, parse func(r io.Reader) (map[string][]report.Violation, error)) (map[string][]report.Violation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// outputCompareMatch outputs a perfect comparison result.
func outputCompareMatch(formatter *OutputFormatter, result report.Result) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	writeCompareCounts(formatter, result)
	fmt.Fprintln(formatter.Writer, "✓ Results match")
	return nil
}

// outputCompareMismatch outputs a diverging comparison result.
func outputCompareMismatch(formatter *OutputFormatter, result report.Result) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    "E_COMPARE_FAILED",
				Message: "DRC results differ",
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "DRC results differ")
	}

	writeCompareCounts(formatter, result)

	if len(result.Mismatched) > 0 {
		fmt.Fprintln(formatter.Writer, "Mismatched rules:")
		for _, m := range result.Mismatched {
			fmt.Fprintf(formatter.Writer, "  %s: calibre=%d icv=%d (%s)\n", m.Rule, m.CalibreCount, m.ICVCount, m.Reason)
		}
	}
	if len(result.OnlyCalibre) > 0 {
		fmt.Fprintln(formatter.Writer, "Only in Calibre:")
		for _, r := range result.OnlyCalibre {
			fmt.Fprintf(formatter.Writer, "  %s: %d violation(s)\n", r.Rule, r.Count)
		}
	}
	if len(result.OnlyICV) > 0 {
		fmt.Fprintln(formatter.Writer, "Only in ICV:")
		for _, r := range result.OnlyICV {
			fmt.Fprintf(formatter.Writer, "  %s: %d violation(s)\n", r.Rule, r.Count)
		}
	}

	fmt.Fprintln(formatter.Writer, "✗ Results differ")
	return NewExitError(ExitFailure, "DRC results differ")
}

// writeCompareCounts writes the aggregate totals shared by both outcomes.
func writeCompareCounts(formatter *OutputFormatter, result report.Result) {
	fmt.Fprintln(formatter.Writer, "DRC result comparison:")
	fmt.Fprintf(formatter.Writer, "  Calibre violations: %d\n", result.TotalCalibre)
	fmt.Fprintf(formatter.Writer, "  ICV violations:     %d\n", result.TotalICV)
	fmt.Fprintf(formatter.Writer, "  Matching rules:     %d\n", len(result.Matching))
	fmt.Fprintln(formatter.Writer)
}
