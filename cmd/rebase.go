package cmd

import (
	"fmt"

	"github.com/compozy/rebase-sync/internal/usecase"
	"github.com/spf13/cobra"
)

// newRebaseCmd creates the rebase command
func newRebaseCmd(c *container) *cobra.Command {
	var (
		remote        string
		rebaseCurrent bool
		push          bool
		noPush        bool
	)
	cmd := &cobra.Command{
		Use:   "rebase",
		Short: "Rebase the primary branch onto a remote",
		Long: `Rebase the primary branch onto <remote>/<primary> and return to the
starting branch.

The workflow runs, in order:
- checkout the primary branch (skipped when already on it)
- fetch --prune the upstream remote, then the origin remote
- rebase the primary branch onto <remote>/<primary>
- push the primary branch (unless --no-push)
- checkout the starting branch again
- rebase the starting branch onto the primary branch (with --rebase-current)

The first git command that exits non-zero stops the run. Nothing is rolled
back: a conflicted rebase is left in place for you to resolve.`,
		PreRunE: c.requireConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.openSession(cmd.Context(), ".", true)
			if err != nil {
				return err
			}
			defer func() {
				if err := s.close(); err != nil {
					c.log.Warn(err.Error())
				}
			}()
			req := usecase.SyncRequest{
				Remote:        remote,
				RebaseCurrent: rebaseCurrent,
				Push:          push && !noPush,
			}
			outcome, err := c.newSyncBranches(s).Execute(cmd.Context(), req)
			if len(outcome.Steps) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
			}
			return err
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "Remote to rebase onto (defaults to the upstream remote, else the first remote)")
	cmd.Flags().BoolVar(&rebaseCurrent, "rebase-current", false, "Also rebase the starting branch onto the primary branch")
	cmd.Flags().BoolVar(&push, "push", true, "Push the primary branch after rebasing")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Do not push the primary branch")
	return cmd
}
