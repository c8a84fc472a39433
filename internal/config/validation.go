package config

import (
	"fmt"
	"regexp"
	"strings"
)

// refNameRegex matches characters allowed in branch and remote names.
var refNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// ValidateBranchName validates a git branch name.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(branch) > 255 {
		return fmt.Errorf("branch name too long: %d characters (max: 255)", len(branch))
	}
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return fmt.Errorf("branch name cannot start or end with slash: %s", branch)
	}
	if strings.HasPrefix(branch, "-") {
		return fmt.Errorf("branch name cannot start with a dash: %s", branch)
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain consecutive dots: %s", branch)
	}
	if strings.HasSuffix(branch, ".lock") {
		return fmt.Errorf("branch name cannot end with .lock: %s", branch)
	}
	if !refNameRegex.MatchString(branch) {
		return fmt.Errorf("invalid branch name format: %s", branch)
	}
	return nil
}

// ValidateRemoteName validates a git remote name. Remote names become the
// first component of remote-tracking refs, so they cannot contain a slash.
func ValidateRemoteName(remote string) error {
	if remote == "" {
		return fmt.Errorf("remote name cannot be empty")
	}
	if strings.Contains(remote, "/") {
		return fmt.Errorf("remote name cannot contain a slash: %s", remote)
	}
	if err := ValidateBranchName(remote); err != nil {
		return fmt.Errorf("invalid remote name: %w", err)
	}
	return nil
}
