// Package artifact exposes the per-task artifact state session: the object
// the build engine asks whether a task's previous outputs are still valid,
// what changed, and what to record after the task runs.
package artifact

import (
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Repository hands out one artifact state session per task per build
// invocation.
type Repository struct {
	history         ports.HistoryRepository
	snapshotter     ports.Snapshotter
	implHasher      ports.ImplementationHasher
	fileCollections ports.FileCollectionFactory
}

// NewRepository creates a new Repository over the given collaborators.
func NewRepository(
	history ports.HistoryRepository,
	snapshotter ports.Snapshotter,
	implHasher ports.ImplementationHasher,
	fileCollections ports.FileCollectionFactory,
) *Repository {
	return &Repository{
		history:         history,
		snapshotter:     snapshotter,
		implHasher:      implHasher,
		fileCollections: fileCollections,
	}
}

// StateFor loads the task's execution history and returns a fresh session.
// The expensive state comparison is deferred until the session is first
// queried.
func (r *Repository) StateFor(task *domain.Task) (*State, error) {
	history, err := r.history.GetHistory(task)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load task history"), "task", task.Name.String())
	}
	return &State{
		task:    task,
		history: history,
		repo:    r,
		phase:   phaseFresh,
	}, nil
}
