package cmd

import (
	"context"
	"fmt"

	"github.com/compozy/rebase-sync/internal/config"
	"github.com/compozy/rebase-sync/internal/logger"
	"github.com/compozy/rebase-sync/internal/orchestrator"
	"github.com/compozy/rebase-sync/internal/repository"
	"github.com/compozy/rebase-sync/internal/usecase"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application. It is filled
// on first use by the commands that need configuration.

type container struct {
	cfg *config.Config
	log *zap.Logger

	journal repository.JournalRepository
}

// load reads the configuration and builds the dependencies once.
func (c *container) load() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	// The journal is optional - only persist runs when a directory is configured
	journal := repository.NewNoopJournalRepository()
	if cfg.JournalEnabled() {
		fsRepo := repository.FileSystemRepository(afero.NewOsFs())
		journal = repository.NewJSONJournalRepository(fsRepo, cfg.JournalDir)
	}

	c.cfg = cfg
	c.log = log
	c.journal = journal
	return nil
}

// requireConfig is the PreRunE of every command that needs configuration.
func (c *container) requireConfig(_ *cobra.Command, _ []string) error {
	return c.load()
}

// session is the per-invocation wiring for one working copy.
type session struct {
	root      string
	lock      *repository.WorkingCopyLock
	runner    repository.CommandRunner
	inspector *repository.Inspector
}

// openSession resolves the working copy containing dir and, when exclusive
// is set, takes the working copy lock. Callers must call close.
func (c *container) openSession(ctx context.Context, dir string, exclusive bool) (*session, error) {
	wc, err := repository.ResolveWorkingCopy(dir)
	if err != nil {
		return nil, err
	}
	s := &session{root: wc.Root}
	if exclusive {
		s.lock = repository.NewWorkingCopyLock(wc.Root)
		if err := s.lock.Acquire(ctx, c.cfg.LockTimeout); err != nil {
			return nil, err
		}
		c.log.Debug("working copy locked", zap.String("lock", s.lock.Path()))
	}
	s.runner = repository.NewExecRunner(c.cfg.GitBinary, wc.Root)
	s.inspector = repository.NewInspector(s.runner, c.log)
	return s, nil
}

func (s *session) close() error {
	if s.lock == nil {
		return nil
	}
	if err := s.lock.Release(); err != nil {
		return fmt.Errorf("failed to release working copy lock: %w", err)
	}
	return nil
}

func (c *container) newSyncBranches(s *session) *usecase.SyncBranchesUseCase {
	orch := orchestrator.NewRebaseOrchestrator(
		s.runner,
		orchestrator.NewLogReporter(c.log),
		c.journal,
		c.log,
		orchestrator.RebaseConfig{
			PrimaryBranch:  c.cfg.PrimaryBranch,
			UpstreamRemote: c.cfg.UpstreamRemote,
			OriginRemote:   c.cfg.OriginRemote,
			WorkingCopy:    s.root,
		},
	)
	return &usecase.SyncBranchesUseCase{
		Inspector:    s.inspector,
		Orchestrator: orch,
		SelectRemote: &usecase.SelectRemoteUseCase{UpstreamRemote: c.cfg.UpstreamRemote},
		Log:          c.log,
	}
}

// InitCommands initializes all commands with their dependencies
func InitCommands() {
	app = &container{}
	rootCmd = newRootCmd(app)
}

// app is the container shared by the commands.
var app *container

// syncLogger flushes buffered log entries.
func syncLogger() {
	if app != nil && app.log != nil {
		_ = app.log.Sync()
	}
}
