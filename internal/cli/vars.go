package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckport/deckport/internal/symbols"
)

// minMatchRate is the fraction of source variables that must be present
// in the target deck before the decks are considered portable.
const minMatchRate = 0.8

// CompareVarsOptions holds flags for the compare-vars command.
type CompareVarsOptions struct {
	*RootOptions
	Calibre string
	ICV     string
	Stub    string
}

// VarsResult is the JSON payload for compare-vars.
type VarsResult struct {
	symbols.Diff
	Stub string `json:"stub,omitempty"`
}

// NewCompareVarsCommand creates the compare-vars command.
func NewCompareVarsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareVarsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare-vars -c <deck.svrf> -i <deck.rs>",
		Short: "Compare variable definitions across SVRF and PXL decks",
		Long: `Compare the variables defined in an SVRF rule deck against those in
a PXL deck.

Layer, derived-layer and check variables are extracted from both files
and matched by name. Variables missing on either side are listed by
kind; --stub writes a PXL skeleton for everything missing on the ICV
side.

Exit codes:
  0 - All variables match
  1 - Variables differ, match rate below 80%, or no variables found
  2 - Command error (unreadable input, unwritable stub)

Examples:
  deckport compare-vars -c rules.svrf -i rules.rs
  deckport compare-vars -c rules.svrf -i rules.rs -s missing.rs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompareVars(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Calibre, "calibre", "c", "", "SVRF rule deck")
	cmd.Flags().StringVarP(&opts.ICV, "icv", "i", "", "PXL rule deck")
	cmd.Flags().StringVarP(&opts.Stub, "stub", "s", "", "write missing-variable stub to this file")
	_ = cmd.MarkFlagRequired("calibre")
	_ = cmd.MarkFlagRequired("icv")

	return cmd
}

func runCompareVars(opts *CompareVarsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	calData, err := os.ReadFile(opts.Calibre)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", opts.Calibre, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.Calibre), err)
	}
	icvData, err := os.ReadFile(opts.ICV)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", opts.ICV, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.ICV), err)
	}

	source := symbols.ExtractSVRF(string(calData))
	target := symbols.ExtractPXL(string(icvData))
	formatter.VerboseLog("Extracted %d SVRF variable(s), %d PXL variable(s)", len(source), len(target))

	diff := symbols.Compare(source, target)
	result := VarsResult{Diff: diff}

	if opts.Stub != "" && len(diff.SourceOnly) > 0 {
		if err := os.WriteFile(opts.Stub, []byte(symbols.Stub(diff.SourceOnly)), 0644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", opts.Stub, err), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("writing %s", opts.Stub), err)
		}
		result.Stub = opts.Stub
	}

	if diff.TotalSource == 0 {
		return outputVarsFailure(formatter, result, fmt.Sprintf("no variables found in %s", opts.Calibre))
	}
	if !diff.InSync || diff.MatchRate < minMatchRate {
		return outputVarsFailure(formatter, result, "variable definitions out of sync")
	}
	return outputVarsMatch(formatter, result)
}

// outputVarsMatch outputs an in-sync comparison.
func outputVarsMatch(formatter *OutputFormatter, result VarsResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	writeVarsCounts(formatter, result)
	fmt.Fprintln(formatter.Writer, "✓ Variables in sync")
	return nil
}

// outputVarsFailure outputs a diverging comparison.
func outputVarsFailure(formatter *OutputFormatter, result VarsResult, reason string) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    "E_VARS_FAILED",
				Message: reason,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, reason)
	}

	writeVarsCounts(formatter, result)
	writeMissingSymbols(formatter, "Missing in ICV", result.SourceOnly)
	writeMissingSymbols(formatter, "Only in ICV", result.TargetOnly)
	writeRecommendations(formatter, result)

	fmt.Fprintf(formatter.Writer, "✗ %s\n", reason)
	return NewExitError(ExitFailure, reason)
}

// writeVarsCounts writes the aggregate totals shared by both outcomes.
func writeVarsCounts(formatter *OutputFormatter, result VarsResult) {
	fmt.Fprintln(formatter.Writer, "Variable comparison:")
	fmt.Fprintf(formatter.Writer, "  Calibre variables: %d\n", result.TotalSource)
	fmt.Fprintf(formatter.Writer, "  ICV variables:     %d\n", result.TotalTarget)
	fmt.Fprintf(formatter.Writer, "  Matching:          %d\n", len(result.Matching))
	fmt.Fprintf(formatter.Writer, "  Match rate:        %.1f%%\n", result.MatchRate*100)
	fmt.Fprintln(formatter.Writer)

	if formatter.Verbose {
		for _, m := range result.Matching {
			fmt.Fprintf(formatter.Writer, "  match: %s (svrf line %d / icv line %d)\n", m.Name, m.Source.Line, m.Target.Line)
		}
		if len(result.Matching) > 0 {
			fmt.Fprintln(formatter.Writer)
		}
	}
}

// writeMissingSymbols writes one one-sided section, grouped by symbol kind.
func writeMissingSymbols(formatter *OutputFormatter, title string, missing []symbols.Symbol) {
	if len(missing) == 0 {
		return
	}

	fmt.Fprintf(formatter.Writer, "%s (%d):\n", title, len(missing))
	grouped := symbols.ByKind(missing)
	for _, kind := range []symbols.Kind{symbols.KindLayer, symbols.KindDerived, symbols.KindCheck} {
		for _, sym := range grouped[kind] {
			fmt.Fprintf(formatter.Writer, "  [%s] %s (line %d): %s\n", sym.Kind, sym.Name, sym.Line, sym.Definition)
		}
	}
	fmt.Fprintln(formatter.Writer)
}

// writeRecommendations summarizes what to do about the divergence.
func writeRecommendations(formatter *OutputFormatter, result VarsResult) {
	if len(result.SourceOnly) == 0 && len(result.TargetOnly) == 0 {
		return
	}

	fmt.Fprintln(formatter.Writer, "Recommendations:")
	if n := len(result.SourceOnly); n > 0 {
		if result.Stub != "" {
			fmt.Fprintf(formatter.Writer, "  - Add %d missing variable(s) to the ICV deck (stub written to %s)\n", n, result.Stub)
		} else {
			fmt.Fprintf(formatter.Writer, "  - Add %d missing variable(s) to the ICV deck (use --stub for a skeleton)\n", n)
		}
	}
	if n := len(result.TargetOnly); n > 0 {
		fmt.Fprintf(formatter.Writer, "  - Review %d ICV-only variable(s) for staleness\n", n)
	}
	fmt.Fprintln(formatter.Writer)
}
