package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/usecase"
	"github.com/spf13/cobra"
)

// newHistoryCmd creates the history command
func newHistoryCmd(c *container) *cobra.Command {
	var (
		sessionID string
		deleteID  string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a journaled rebase run",
		Long: `Show the latest journaled rebase run, or the run given by --session-id.
Remove a journaled run with --delete <session-id>.

Runs are only journaled when journal_dir is configured.`,
		PreRunE: c.requireConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.cfg.JournalEnabled() {
				return errors.New("journal is disabled: set journal_dir or REBASE_SYNC_JOURNAL_DIR")
			}
			if deleteID != "" {
				del := &usecase.DeleteRunUseCase{Journal: c.journal}
				if err := del.Execute(cmd.Context(), deleteID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", deleteID)
				return nil
			}
			uc := &usecase.ShowHistoryUseCase{Journal: c.journal}
			record, err := uc.Execute(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			printRunRecord(cmd, record)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID to show (uses latest if not specified)")
	cmd.Flags().StringVar(&deleteID, "delete", "", "Session ID of a run to remove from the journal")
	cmd.MarkFlagsMutuallyExclusive("session-id", "delete")
	return cmd
}

func printRunRecord(cmd *cobra.Command, record *domain.RunRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session:\t%s\n", record.SessionID)
	fmt.Fprintf(out, "Started:\t%s\n", record.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Working copy:\t%s\n", record.WorkingCopy)
	fmt.Fprintf(out, "Starting branch:\t%s\n", record.StartingBranch)
	fmt.Fprintf(out, "Target remote:\t%s\n", record.Options.TargetRemote)
	fmt.Fprintf(out, "Status:\t%s\n", record.Status)
	if record.FailedPhase != "" {
		fmt.Fprintf(out, "Failed phase:\t%s\n", record.FailedPhase)
		fmt.Fprintf(out, "Error:\t%s\n", record.Error)
	}
	for _, step := range record.Steps {
		line := fmt.Sprintf("  %-36s %s", step.Phase, step.Status)
		switch {
		case step.SkipReason != "":
			line += " (" + step.SkipReason + ")"
		case len(step.Args) > 0:
			line += fmt.Sprintf(" git %s [exit %d]", strings.Join(step.Args, " "), step.ExitCode)
		}
		fmt.Fprintln(out, line)
	}
}
