package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/compozy/rebase-sync/internal/usecase"
	"github.com/spf13/cobra"
)

// newInspectCmd creates the read-only inspect command
func newInspectCmd(c *container) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Show the current branch, local branches and remotes",
		PreRunE: c.requireConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.openSession(cmd.Context(), ".", false)
			if err != nil {
				return err
			}
			uc := &usecase.InspectRepositoryUseCase{Inspector: s.inspector}
			report, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(out, "Working copy:\t%s\n", s.root)
			fmt.Fprintf(out, "Current branch:\t%s\n", report.CurrentBranch)
			fmt.Fprintf(out, "Local branches:\t%s\n", strings.Join(report.LocalBranches, ", "))
			fmt.Fprintf(out, "Remotes:\t%s\n", strings.Join(report.Remotes, ", "))
			fmt.Fprintf(out, "Git version:\t%s\n", report.GitVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
