package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/compozy/rebase-sync/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitFixture is a fork working copy with upstream and origin bare remotes.
// Upstream is one commit ahead of the local master, and feature carries one
// commit of its own.
type gitFixture struct {
	root   string
	work   string
	runner *repository.ExecRunner
}

func (f *gitFixture) git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	result, err := repository.NewExecRunner(f.runner.Binary, dir).Run(context.Background(), args...)
	require.NoError(t, err)
	require.True(t, result.Success(), "git %s: %s", strings.Join(args, " "), result.Output())
	return strings.TrimSpace(string(result.Stdout))
}

func setupGitFixture(t *testing.T) *gitFixture {
	t.Helper()
	bin, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not available")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	root := t.TempDir()
	f := &gitFixture{root: root, work: filepath.Join(root, "work")}
	f.runner = repository.NewExecRunner(bin, f.work)
	f.git(t, root, "init", "--bare", "upstream.git")
	f.git(t, root, "init", "--bare", "origin.git")
	f.git(t, root, "init", "work")
	f.git(t, f.work, "symbolic-ref", "HEAD", "refs/heads/master")
	f.git(t, f.work, "commit", "--allow-empty", "-m", "Initial commit")
	f.git(t, f.work, "remote", "add", "upstream", filepath.Join(root, "upstream.git"))
	f.git(t, f.work, "remote", "add", "origin", filepath.Join(root, "origin.git"))
	f.git(t, f.work, "push", "origin", "master")
	f.git(t, f.work, "branch", "--set-upstream-to=origin/master", "master")
	f.git(t, f.work, "commit", "--allow-empty", "-m", "Upstream change")
	f.git(t, f.work, "push", "upstream", "master")
	f.git(t, f.work, "reset", "--hard", "HEAD~1")
	f.git(t, f.work, "checkout", "-b", "feature")
	require.NoError(t, os.WriteFile(filepath.Join(f.work, "feature.txt"), []byte("feature work\n"), 0644))
	f.git(t, f.work, "add", "feature.txt")
	f.git(t, f.work, "commit", "-m", "Feature work")
	return f
}

func TestRebaseOrchestrator_ExecuteWithGit(t *testing.T) {
	t.Run("Should sync a real fork through every phase", func(t *testing.T) {
		f := setupGitFixture(t)
		ctx := context.Background()
		state, err := repository.NewInspector(f.runner, nil).Gather(ctx)
		require.NoError(t, err)
		require.Equal(t, "feature", state.CurrentBranch)
		reporter := &recordingReporter{}
		orch := NewRebaseOrchestrator(f.runner, reporter, nil, nil, DefaultRebaseConfig())

		outcome := orch.Execute(ctx, state, domain.RebaseOptions{
			TargetRemote:           "upstream",
			RebaseCurrentBranchToo: true,
			PushAfterRebase:        true,
		})

		require.NoError(t, outcome.Err())
		assert.Equal(t, []domain.Phase{
			domain.PhaseEnsureOnPrimaryBranch,
			domain.PhaseFetchUpstreamRemote,
			domain.PhaseFetchOriginRemote,
			domain.PhaseRebaseOntoUpstream,
			domain.PhasePushPrimaryBranch,
			domain.PhaseReturnToStartingBranch,
			domain.PhaseRebaseStartingBranchOntoPrimary,
			domain.PhaseDone,
		}, outcome.Phases())
		assert.Equal(t, "Complete", reporter.Labels()[len(reporter.Labels())-1])
		upstreamHead := f.git(t, f.work, "rev-parse", "upstream/master")
		assert.Equal(t, upstreamHead, f.git(t, f.work, "rev-parse", "master"))
		assert.Equal(t, upstreamHead, f.git(t, filepath.Join(f.root, "origin.git"), "rev-parse", "master"))
		assert.Equal(t, "feature", f.git(t, f.work, "rev-parse", "--abbrev-ref", "HEAD"))
		f.git(t, f.work, "merge-base", "--is-ancestor", "master", "feature")
	})
	t.Run("Should halt on a conflicting rebase and leave it for the user", func(t *testing.T) {
		f := setupGitFixture(t)
		ctx := context.Background()
		// The primary branch gets a local commit that conflicts with upstream.
		f.git(t, f.work, "checkout", "master")
		f.git(t, f.work, "fetch", "upstream")
		f.git(t, f.work, "checkout", "-b", "conflict", "upstream/master")
		require.NoError(t, os.WriteFile(filepath.Join(f.work, "shared.txt"), []byte("upstream\n"), 0644))
		f.git(t, f.work, "add", "shared.txt")
		f.git(t, f.work, "commit", "-m", "Upstream shared")
		f.git(t, f.work, "push", "upstream", "conflict:master")
		f.git(t, f.work, "checkout", "master")
		f.git(t, f.work, "branch", "-D", "conflict")
		require.NoError(t, os.WriteFile(filepath.Join(f.work, "shared.txt"), []byte("local\n"), 0644))
		f.git(t, f.work, "add", "shared.txt")
		f.git(t, f.work, "commit", "-m", "Local shared")
		f.git(t, f.work, "checkout", "feature")
		state, err := repository.NewInspector(f.runner, nil).Gather(ctx)
		require.NoError(t, err)
		orch := NewRebaseOrchestrator(f.runner, nil, nil, nil, DefaultRebaseConfig())

		outcome := orch.Execute(ctx, state, domain.RebaseOptions{TargetRemote: "upstream", PushAfterRebase: true})

		require.NotNil(t, outcome.Failure)
		assert.Equal(t, domain.PhaseRebaseOntoUpstream, outcome.Failure.Phase)
		var cmdErr *repository.CommandError
		require.ErrorAs(t, outcome.Err(), &cmdErr)
		assert.NotZero(t, cmdErr.ExitCode)
		_, pushed := outcome.Step(domain.PhasePushPrimaryBranch)
		assert.False(t, pushed)
		_, err = os.Stat(filepath.Join(f.work, ".git", "rebase-merge"))
		if os.IsNotExist(err) {
			_, err = os.Stat(filepath.Join(f.work, ".git", "rebase-apply"))
		}
		assert.NoError(t, err)
	})
}
