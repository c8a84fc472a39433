package cmd

import (
	"fmt"
	"strings"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/pkg/version"
	"github.com/spf13/cobra"
)

// newVersionCmd prints build information and the oldest git release
// the workflow supports.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:\t%s\n", safeValue(version.Version, "dev"))
			fmt.Fprintf(out, "Commit:\t%s\n", safeValue(version.CommitHash, "unknown"))
			fmt.Fprintf(out, "Built:\t%s\n", safeValue(version.BuildDate, "unknown"))
			fmt.Fprintf(out, "Git:\t>= %s\n", domain.MinimumGitVersion)
			return nil
		},
	}
}

func safeValue(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
