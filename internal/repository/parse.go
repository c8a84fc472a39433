package repository

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/compozy/rebase-sync/internal/domain"
)

// currentBranchRegex matches the branch line of `git status`.
var currentBranchRegex = regexp.MustCompile(`(?m)^On branch (\S+)\s*$`)

// ParseError is returned when command output does not have the expected shape.
type ParseError struct {
	Command string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse output of git %s: %s", e.Command, e.Reason)
}

// ParseCurrentBranch extracts the branch name from `git status` output.
// Detached HEAD and rebase-in-progress output have no such line.
func ParseCurrentBranch(output string) (string, error) {
	match := currentBranchRegex.FindStringSubmatch(output)
	if match == nil {
		return "", &ParseError{Command: "status", Reason: `no "On branch <name>" line (detached HEAD?)`}
	}
	return match[1], nil
}

// ParseBranchList parses `git branch` output into a set of names. The
// current-branch marker "*" and the linked-worktree marker "+" are dropped,
// as are "(HEAD detached at ...)" style entries.
func ParseBranchList(output string) domain.NameSet {
	branches := domain.NewNameSet()
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*+"))
		if name == "" || strings.HasPrefix(name, "(") {
			continue
		}
		for _, field := range strings.Fields(name) {
			field = strings.ReplaceAll(field, "*", "")
			if field != "" {
				branches[field] = struct{}{}
			}
		}
	}
	return branches
}

// ParseRemoteList parses `git remote` output into a set of remote names.
func ParseRemoteList(output string) domain.NameSet {
	return domain.NewNameSet(strings.Fields(output)...)
}

// ParseGitVersion parses `git version` output.
func ParseGitVersion(output string) (*domain.GitVersion, error) {
	trimmed := strings.TrimSpace(output)
	rest, ok := strings.CutPrefix(trimmed, "git version ")
	if !ok {
		return nil, &ParseError{Command: "version", Reason: fmt.Sprintf("unexpected output %q", trimmed)}
	}
	version, err := domain.NewGitVersion(rest)
	if err != nil {
		return nil, &ParseError{Command: "version", Reason: err.Error()}
	}
	return version, nil
}
