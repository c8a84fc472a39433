package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/compozy/rebase-sync/internal/domain"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// JournalSchemaVersion defines the current schema version for journal files
	JournalSchemaVersion = "1.0.0"
	// JournalFilePermissions defines the permissions for journal files
	JournalFilePermissions = 0600
	// JournalDirPermissions defines the permissions for the journal directory
	JournalDirPermissions = 0700
)

// ErrRunNotFound is returned when no journal entry exists for a session.
var ErrRunNotFound = errors.New("run not found")

// JournalRepository stores records of rebase runs
type JournalRepository interface {
	Save(ctx context.Context, record *domain.RunRecord) error
	Load(ctx context.Context, sessionID string) (*domain.RunRecord, error)
	LoadLatest(ctx context.Context) (*domain.RunRecord, error)
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// JournalMetadata contains metadata about the journal file
type JournalMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// JournalEntry wraps the run record with metadata
type JournalEntry struct {
	Metadata JournalMetadata   `json:"metadata"`
	Record   *domain.RunRecord `json:"record"`
}

// JSONJournalRepository implements JournalRepository using JSON files.
// Lock files are taken with flock, so fs must be backed by the OS filesystem
// at dir.
type JSONJournalRepository struct {
	fs          afero.Fs
	dir         string
	lockTimeout time.Duration
	mu          sync.RWMutex
}

// NewJSONJournalRepository creates a new JSON-based journal repository
func NewJSONJournalRepository(fs afero.Fs, dir string) JournalRepository {
	return &JSONJournalRepository{
		fs:          fs,
		dir:         dir,
		lockTimeout: DefaultLockTimeout,
	}
}

// Save persists the run record to a JSON file with proper locking
func (r *JSONJournalRepository) Save(ctx context.Context, record *domain.RunRecord) error {
	if err := r.fs.MkdirAll(r.dir, JournalDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure journal directory: %w", err)
	}
	lock := flock.New(r.getLockFilename(record.SessionID))
	if err := acquireWithRetry(ctx, r.lockTimeout, lock.TryLock); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer r.release(lock)
	recordData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for checksum: %w", err)
	}
	entry := JournalEntry{
		Metadata: JournalMetadata{
			SchemaVersion: JournalSchemaVersion,
			Checksum:      r.calculateChecksum(recordData),
			CreatedAt:     record.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Record: record,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	filename := r.getRecordFilename(record.SessionID)
	if err := r.writeAtomically(filename, data); err != nil {
		return err
	}
	if err := r.updateLatestLink(filename); err != nil {
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// Load retrieves a run record by session ID and validates its checksum
func (r *JSONJournalRepository) Load(ctx context.Context, sessionID string) (*domain.RunRecord, error) {
	lock := flock.New(r.getLockFilename(sessionID))
	if err := r.fs.MkdirAll(r.dir, JournalDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to ensure journal directory: %w", err)
	}
	if err := acquireWithRetry(ctx, r.lockTimeout, lock.TryRLock); err != nil {
		return nil, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer r.release(lock)
	data, err := afero.ReadFile(r.fs, r.getRecordFilename(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: session %s", ErrRunNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}
	var entry JournalEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
	}
	if entry.Metadata.SchemaVersion != JournalSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			JournalSchemaVersion, entry.Metadata.SchemaVersion)
	}
	recordData, err := json.Marshal(entry.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record for checksum validation: %w", err)
	}
	if entry.Metadata.Checksum != r.calculateChecksum(recordData) {
		return nil, fmt.Errorf("journal checksum mismatch: data may be corrupted")
	}
	return entry.Record, nil
}

// LoadLatest retrieves the most recently saved run record
func (r *JSONJournalRepository) LoadLatest(ctx context.Context) (*domain.RunRecord, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.getLatestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: journal is empty", ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	sessionID := r.extractSessionID(string(data))
	if sessionID == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", string(data))
	}
	return r.Load(ctx, sessionID)
}

// Delete removes a run record. The latest link is cleared when it points
// at the deleted run.
func (r *JSONJournalRepository) Delete(ctx context.Context, sessionID string) error {
	lock := flock.New(r.getLockFilename(sessionID))
	if err := acquireWithRetry(ctx, r.lockTimeout, lock.TryLock); err != nil {
		return fmt.Errorf("failed to acquire lock for deletion: %w", err)
	}
	defer r.release(lock)
	filename := r.getRecordFilename(sessionID)
	if err := r.fs.Remove(filename); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete journal file: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := afero.ReadFile(r.fs, r.getLatestLink())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read latest link: %w", err)
	}
	if r.extractSessionID(string(data)) == sessionID {
		if err := r.fs.Remove(r.getLatestLink()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear latest link: %w", err)
		}
	}
	return nil
}

// Exists checks if a run record exists
func (r *JSONJournalRepository) Exists(_ context.Context, sessionID string) (bool, error) {
	_, err := r.fs.Stat(r.getRecordFilename(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check journal file: %w", err)
	}
	return true, nil
}

// release drops a session lock and removes its file.
func (r *JSONJournalRepository) release(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", err)
	}
	if err := r.fs.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to remove lock file: %v\n", err)
	}
}

// writeAtomically writes data to a temp file and renames it over filename
func (r *JSONJournalRepository) writeAtomically(filename string, data []byte) error {
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, JournalFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp journal file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename journal file: %w", err)
	}
	return nil
}

// calculateChecksum calculates SHA-256 checksum of data
func (r *JSONJournalRepository) calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *JSONJournalRepository) getRecordFilename(sessionID string) string {
	return filepath.Join(r.dir, fmt.Sprintf("run-%s.json", sessionID))
}

func (r *JSONJournalRepository) getLockFilename(sessionID string) string {
	return filepath.Join(r.dir, fmt.Sprintf(".run-%s.lock", sessionID))
}

func (r *JSONJournalRepository) getLatestLink() string {
	return filepath.Join(r.dir, "latest.txt")
}

// updateLatestLink points latest.txt at target
func (r *JSONJournalRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeAtomically(r.getLatestLink(), []byte(target))
}

// extractSessionID extracts the session ID from a journal filename
func (r *JSONJournalRepository) extractSessionID(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if id, ok := strings.CutPrefix(base, "run-"); ok {
		if id, ok = strings.CutSuffix(id, ".json"); ok && id != "" {
			return id
		}
	}
	return ""
}

// NoopJournalRepository discards every record. It is used when the journal
// is disabled.
type NoopJournalRepository struct{}

// NewNoopJournalRepository returns a journal that stores nothing.
func NewNoopJournalRepository() JournalRepository {
	return NoopJournalRepository{}
}

func (NoopJournalRepository) Save(context.Context, *domain.RunRecord) error { return nil }

func (NoopJournalRepository) Load(_ context.Context, sessionID string) (*domain.RunRecord, error) {
	return nil, fmt.Errorf("%w: session %s (journal disabled)", ErrRunNotFound, sessionID)
}

func (NoopJournalRepository) LoadLatest(context.Context) (*domain.RunRecord, error) {
	return nil, fmt.Errorf("%w: journal disabled", ErrRunNotFound)
}

func (NoopJournalRepository) Delete(context.Context, string) error { return nil }

func (NoopJournalRepository) Exists(context.Context, string) (bool, error) { return false, nil }
