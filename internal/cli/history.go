package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verityhq/verity/history"
)

// SessionSummary is the JSON shape for one archived session.
type SessionSummary struct {
	ID          string   `json:"id"`
	RecordedAt  string   `json:"recorded_at"`
	PassedCount uint64   `json:"passed_count"`
	FailedCount uint64   `json:"failed_count"`
	Failures    []string `json:"failures,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history <db>",
		Short:         "List archived sessions",
		Long:          "List sessions archived to a SQLite history database, newest first.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
}

func runHistory(opts *RootOptions, path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "history database not found", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer store.Close()

	sessions, err := store.Sessions(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if formatter.Format == "json" {
		summaries := make([]SessionSummary, 0, len(sessions))
		for _, s := range sessions {
			summary := SessionSummary{
				ID:          s.ID,
				RecordedAt:  s.RecordedAt.Format(time.RFC3339),
				PassedCount: s.PassedCount,
				FailedCount: s.FailedCount,
			}
			for _, f := range s.Failures {
				summary.Failures = append(summary.Failures, f.Message)
			}
			summaries = append(summaries, summary)
		}
		return formatter.Success(summaries)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(formatter.Writer, "No sessions recorded.")
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(formatter.Writer, "%s  %s  %d passed / %d failed\n",
			s.RecordedAt.Format(time.RFC3339), s.ID, s.PassedCount, s.FailedCount)
		for _, f := range s.Failures {
			fmt.Fprintf(formatter.Writer, "    ✗ %s\n", f.Message)
		}
	}
	return nil
}
