package cmd

import (
	"errors"

	"github.com/compozy/rebase-sync/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func newRootCmd(c *container) *cobra.Command {
	root := &cobra.Command{
		Use:   "rebase-sync",
		Short: "Keep a fork's primary branch rebased onto its upstream",
		Long: `rebase-sync rebases the primary branch onto a remote, optionally pushes
it, and returns to the branch you started on.`,
		Version:       version.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRebaseCmd(c),
		newInspectCmd(c),
		newHistoryCmd(c),
		newVersionCmd(),
	)
	return root
}

func Execute() error {
	if rootCmd == nil {
		return errors.New("commands are not initialized")
	}
	defer syncLogger()
	return rootCmd.Execute()
}
