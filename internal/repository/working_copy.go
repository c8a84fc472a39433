package repository

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotWorkingCopy is returned when no git working copy contains the directory.
var ErrNotWorkingCopy = errors.New("not inside a git working copy")

// WorkingCopy identifies the repository the workflow operates on.
type WorkingCopy struct {
	Root string
}

// ResolveWorkingCopy finds the working copy containing dir, walking up the
// tree the way git does. Bare repositories are rejected.
func ResolveWorkingCopy(dir string) (*WorkingCopy, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotWorkingCopy)
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%s is a bare repository: %w", abs, ErrNotWorkingCopy)
		}
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return &WorkingCopy{Root: wt.Filesystem.Root()}, nil
}
