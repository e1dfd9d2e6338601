package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckport/deckport/internal/config"
	"github.com/deckport/deckport/internal/deck"
	"github.com/deckport/deckport/internal/history"
	"github.com/deckport/deckport/internal/pxl"
	"github.com/deckport/deckport/internal/svrf"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Input     string
	Output    string
	Include   string
	Unit      string
	Stats     bool
	HistoryDB string
}

// TranslateResult holds the outcome of a translation run.
type TranslateResult struct {
	Input       string            `json:"input"`
	Output      string            `json:"output"`
	Stats       deck.Stats        `json:"stats"`
	OutputLines int               `json:"output_lines"`
	OutputBytes int               `json:"output_bytes"`
	Diagnostics []svrf.Diagnostic `json:"diagnostics,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate -i <deck.svrf> -o <deck.rh>",
		Short: "Translate an SVRF rule deck to PXL",
		Long: `Translate a Calibre SVRF rule deck to IC Validator PXL.

Layer definitions, WIDTH/EXTERNAL/INTERNAL/ENC checks and boolean layer
operations are carried over. Statements the translator does not recognize
are skipped, reported as warnings on stderr, and the translation continues.

Exit codes:
  0 - Translation succeeded
  1 - Translation failed (fatal parse error)
  2 - Command error (unreadable input, unwritable output)

Examples:
  deckport translate -i rules.svrf -o rules.rh
  deckport translate -i rules.svrf -o rules.rh --stats
  deckport translate -i rules.svrf -o rules.rh --unit nm --history runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "SVRF rule deck to translate")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "PXL output file")
	cmd.Flags().StringVar(&opts.Include, "include", config.DefaultInclude, "runtime header to #include in the output")
	cmd.Flags().StringVar(&opts.Unit, "unit", config.DefaultUnit, "unit suffix for violation descriptions")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print deck statistics")
	cmd.Flags().StringVar(&opts.HistoryDB, "history", "", "record the run in this SQLite database")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runTranslate(opts *TranslateOptions, cmd *cobra.Command) error {
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

	genOpts := pxl.Options{Include: cfg.Translate.Include, Unit: cfg.Translate.Unit}
	if cmd.Flags().Changed("include") {
		genOpts.Include = opts.Include
	}
	if cmd.Flags().Changed("unit") {
		genOpts.Unit = opts.Unit
	}
	historyPath := cfg.History.Path
	if cmd.Flags().Changed("history") {
		historyPath = opts.HistoryDB
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", opts.Input, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", opts.Input), err)
	}

	formatter.VerboseLog("Parsing %s (%d bytes)", opts.Input, len(data))

	res, err := svrf.Parse(string(data))
	if err != nil {
		_ = formatter.Error(ErrCodeParseFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	out, err := pxl.Generate(res.Deck, genOpts)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	if err := os.WriteFile(opts.Output, []byte(out), 0644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", opts.Output, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("writing %s", opts.Output), err)
	}

	for _, d := range res.Diagnostics {
		formatter.Warn("%s", d)
	}

	result := TranslateResult{
		Input:       opts.Input,
		Output:      opts.Output,
		Stats:       res.Deck.Stats(),
		OutputLines: strings.Count(out, "\n"),
		OutputBytes: len(out),
		Diagnostics: res.Diagnostics,
	}

	if historyPath != "" {
		run := history.NewRun(opts.Input, opts.Output, result.Stats, len(res.Diagnostics))
		if err := recordRun(cmd.Context(), historyPath, run); err != nil {
			formatter.Warn("recording run: %v", err)
		} else {
			formatter.VerboseLog("Recorded run %s in %s", run.ID, historyPath)
		}
	}

	return outputTranslateSuccess(formatter, result, opts.Stats)
}

// recordRun opens the history store just long enough to append one run.
func recordRun(ctx context.Context, path string, run history.Run) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(ctx, run)
}

// outputTranslateSuccess outputs a successful translation result.
func outputTranslateSuccess(formatter *OutputFormatter, result TranslateResult, showStats bool) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Translated %s → %s\n", result.Input, result.Output)
	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(formatter.Writer, "  %d statement(s) skipped, see warnings\n", len(result.Diagnostics))
	}

	if showStats {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, "Deck statistics:")
		fmt.Fprintf(formatter.Writer, "  Layers:           %d\n", result.Stats.Layers)
		fmt.Fprintf(formatter.Writer, "  Rules:            %d\n", result.Stats.Rules)
		fmt.Fprintf(formatter.Writer, "  Width checks:     %d\n", result.Stats.Width)
		fmt.Fprintf(formatter.Writer, "  Spacing checks:   %d\n", result.Stats.Spacing)
		fmt.Fprintf(formatter.Writer, "  Enclosure checks: %d\n", result.Stats.Enclosure)
		fmt.Fprintf(formatter.Writer, "  Boolean ops:      %d\n", result.Stats.BooleanOps)
		fmt.Fprintf(formatter.Writer, "  Output:           %d line(s), %d byte(s)\n", result.OutputLines, result.OutputBytes)
	}

	return nil
}
