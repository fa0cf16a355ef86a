// Package history persists task execution records between build invocations.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HistoryRepository = (*Store)(nil)

// Store implements ports.HistoryRepository using a file-per-task strategy
// under the workspace metadata directory. Every store instance carries the
// build invocation ID stamped onto records it writes.
type Store struct {
	root    string
	buildID string
}

// NewStore creates a history store rooted at the given workspace directory.
func NewStore(root string) *Store {
	return &Store{
		root:    root,
		buildID: uuid.NewString(),
	}
}

// BuildID returns the invocation ID stamped onto records written by this store.
func (s *Store) BuildID() string {
	return s.buildID
}

// GetHistory loads the task's previous execution record, if any, and opens a
// fresh current record for this invocation.
func (s *Store) GetHistory(task *domain.Task) (ports.History, error) {
	previous, err := s.load(task.Name.String())
	if err != nil {
		return nil, err
	}
	return &taskHistory{
		store:    s,
		previous: previous,
		current: &domain.ExecutionRecord{
			TaskName: task.Name.String(),
			TaskType: task.Type,
			BuildID:  s.buildID,
		},
	}, nil
}

func (s *Store) load(taskName string) (*domain.ExecutionRecord, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(s.filename(taskName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "task", taskName)
	}

	var record domain.ExecutionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryUnmarshalFailed.Error()), "task", taskName)
	}
	return &record, nil
}

func (s *Store) save(record *domain.ExecutionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryMarshalFailed.Error())
	}

	filename := s.filename(record.TaskName)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryCreateFailed.Error())
	}

	// Write-then-rename keeps the previous record intact if the write dies
	// half way.
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "task", record.TaskName)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "task", record.TaskName)
	}
	return nil
}

func (s *Store) filename(taskName string) string {
	hash := sha256.Sum256([]byte(taskName))
	hexHash := hex.EncodeToString(hash[:])
	return filepath.Join(s.root, domain.DefaultHistoryPath(), hexHash+".json")
}

// Clean removes the entire history store.
func (s *Store) Clean() error {
	if err := os.RemoveAll(filepath.Join(s.root, domain.DefaultHistoryPath())); err != nil {
		return zerr.Wrap(err, "failed to remove history store")
	}
	return nil
}

// taskHistory is one task's pairing of last-known and in-flight records.
type taskHistory struct {
	store    *Store
	previous *domain.ExecutionRecord
	current  *domain.ExecutionRecord
}

func (h *taskHistory) PreviousExecution() *domain.ExecutionRecord {
	return h.previous
}

func (h *taskHistory) CurrentExecution() *domain.ExecutionRecord {
	return h.current
}

// Update timestamps the current record and replaces the previous one on disk.
func (h *taskHistory) Update() error {
	h.current.Timestamp = time.Now().UTC()
	return h.store.save(h.current)
}
