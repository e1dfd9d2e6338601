package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckport/deckport/internal/deck"
	"github.com/deckport/deckport/internal/svrf"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Input  string
	Strict bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Stats       deck.Stats        `json:"stats"`
	Diagnostics []svrf.Diagnostic `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate -i <deck.svrf>",
		Short: "Parse an SVRF rule deck without generating output",
		Long: `Parse an SVRF rule deck and report what the translator would carry over.

Prints layer and rule counts plus a line-numbered diagnostic for every
statement the translator would skip. Writes nothing.

Exit codes:
  0 - Parse completed (diagnostics allowed unless --strict)
  1 - Fatal parse error, or any diagnostic under --strict
  2 - Command error (unreadable input)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "SVRF rule deck to validate")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat any skipped statement as failure")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", opts.Input, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.Input), err)
	}

	res, err := svrf.Parse(string(data))
	if err != nil {
		_ = formatter.Error(ErrCodeParseFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	result := ValidationResult{
		Valid:       !opts.Strict || len(res.Diagnostics) == 0,
		Stats:       res.Deck.Stats(),
		Diagnostics: res.Diagnostics,
	}

	if !result.Valid {
		return outputValidateFailure(formatter, opts.Input, result)
	}
	return outputValidateSuccess(formatter, opts.Input, result)
}

// outputValidateSuccess outputs a passing validation.
func outputValidateSuccess(formatter *OutputFormatter, input string, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %d layer(s), %d rule(s)", input, result.Stats.Layers, result.Stats.Rules)
	if n := len(result.Diagnostics); n > 0 {
		fmt.Fprintf(formatter.Writer, ", %d warning(s)", n)
	}
	fmt.Fprintln(formatter.Writer)

	for _, d := range result.Diagnostics {
		fmt.Fprintf(formatter.Writer, "  %s\n", d)
	}
	return nil
}

// outputValidateFailure outputs a strict-mode validation failure.
func outputValidateFailure(formatter *OutputFormatter, input string, result ValidationResult) error {
	n := len(result.Diagnostics)

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeParseFailed,
				Message: fmt.Sprintf("%d statement(s) skipped in strict mode", n),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", n))
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: %d statement(s) skipped in strict mode\n", input, n)
	for _, d := range result.Diagnostics {
		fmt.Fprintf(formatter.Writer, "  %s\n", d)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", n))
}
