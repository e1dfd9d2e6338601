package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckport/deckport/internal/history"
)

// DefaultHistoryDB is where translation runs are recorded when neither
// the config file nor --db names a path.
const DefaultHistoryDB = "deckport.db"

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// HistoryResult is the JSON payload for the history command.
type HistoryResult struct {
	Database string        `json:"database"`
	Runs     []history.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded translation runs",
		Long: `List translation runs recorded by translate --history, most recent
first.

Exit codes:
  0 - Runs listed (possibly none)
  2 - Command error (database not found)

Examples:
  deckport history
  deckport history --db runs.db --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", DefaultHistoryDB, "history database path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
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
	dbPath := opts.DB
	if cfg.History.Path != "" && !cmd.Flags().Changed("db") {
		dbPath = cfg.History.Path
	}

	// Opening a missing path would create an empty database.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("history database not found: %s", dbPath), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("history database not found: %s", dbPath))
	}

	store, err := history.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, fmt.Sprintf("opening %s: %v", dbPath, err), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("opening %s", dbPath), err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, fmt.Sprintf("listing runs: %v", err), nil)
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	result := HistoryResult{Database: dbPath, Runs: runs}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputHistoryText(formatter, result)
}

// outputHistoryText renders the run list as text.
func outputHistoryText(formatter *OutputFormatter, result HistoryResult) error {
	w := formatter.Writer

	if len(result.Runs) == 0 {
		fmt.Fprintf(w, "No recorded runs in %s\n", result.Database)
		return nil
	}

	fmt.Fprintf(w, "Translation history (%d run(s)):\n\n", len(result.Runs))
	for _, run := range result.Runs {
		fmt.Fprintf(w, "%s  %s → %s\n", run.StartedAt.Format(time.RFC3339), run.InputPath, run.OutputPath)
		fmt.Fprintf(w, "  run %s\n", run.ID)
		fmt.Fprintf(w, "  %d layer(s), %d rule(s) (%d width, %d spacing, %d enclosure, %d boolean), %d diagnostic(s)\n",
			run.Stats.Layers, run.Stats.Rules, run.Stats.Width, run.Stats.Spacing,
			run.Stats.Enclosure, run.Stats.BooleanOps, run.Diagnostics)
		fmt.Fprintln(w)
	}
	return nil
}
