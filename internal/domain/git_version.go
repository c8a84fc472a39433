package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinimumGitVersion is the oldest git release the workflow is exercised against.
const MinimumGitVersion = "2.0.0"

// GitVersion wraps semver.Version for the installed git binary.
type GitVersion struct {
	*semver.Version
	Raw string
}

// NewGitVersion parses the version part of `git version` output, such as
// "2.43.0", "2.39.3 (Apple Git-146)" or "2.45.1.windows.1".
func NewGitVersion(s string) (*GitVersion, error) {
	raw := strings.TrimSpace(s)
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty git version")
	}
	parts := strings.Split(fields[0], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("invalid git version %q: %w", raw, err)
	}
	return &GitVersion{Version: v, Raw: raw}, nil
}

// Supported reports whether the version is at least MinimumGitVersion.
func (v *GitVersion) Supported() bool {
	return !v.LessThan(semver.MustParse(MinimumGitVersion))
}

// String returns the normalized version.
func (v *GitVersion) String() string {
	return v.Version.String()
}
