package ports

import "github.com/vladsoroka/gradle/internal/core/domain"

// HistoryRepository is the durable, per-task execution history log.
//
// Commit of a new record must be atomic with respect to concurrent readers
// of other tasks' histories; within one task there is exactly one writer.
//
//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type HistoryRepository interface {
	// GetHistory returns the execution history handle for the given task.
	GetHistory(task *domain.Task) (History, error)

	// Clean removes all persisted history. The next build sees no previous
	// execution for any task.
	Clean() error
}

// History is one task's execution history for the current build invocation.
type History interface {
	// PreviousExecution returns the last committed record, or nil if the
	// task has never run. Absence of history is an expected condition, not
	// an error.
	PreviousExecution() *domain.ExecutionRecord

	// CurrentExecution returns the build-scoped mutable record being
	// assembled for this run.
	CurrentExecution() *domain.ExecutionRecord

	// Update durably persists the current execution as the new previous
	// record for future builds.
	Update() error
}
