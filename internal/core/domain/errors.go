package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrBuildExecutionFailed wraps task failures surfaced by a build run.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)

var (
	// ErrHistoryCreateFailed is returned when the history store directory cannot be created.
	ErrHistoryCreateFailed = zerr.New("failed to create history store directory")

	// ErrHistoryReadFailed is returned when an execution record cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read execution record")

	// ErrHistoryUnmarshalFailed is returned when an execution record cannot be unmarshaled.
	ErrHistoryUnmarshalFailed = zerr.New("failed to unmarshal execution record")

	// ErrHistoryMarshalFailed is returned when an execution record cannot be marshaled.
	ErrHistoryMarshalFailed = zerr.New("failed to marshal execution record")

	// ErrHistoryWriteFailed is returned when an execution record cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write execution record")
)

// Lifecycle violations on a task's artifact state session. These indicate
// misuse by the calling scheduler and abort the task's processing rather than
// being handled.
var (
	// ErrInputChangesAfterSkip is returned when input changes are queried
	// after the session was already marked up-to-date.
	ErrInputChangesAfterSkip = zerr.New("input changes queried after task was marked up-to-date")

	// ErrStateFinalized is returned when a finalized session is queried or
	// finalized a second time.
	ErrStateFinalized = zerr.New("task state already finalized")

	// ErrStateNotComputed is returned when a session is finalized before any
	// state was computed.
	ErrStateNotComputed = zerr.New("task state finalized before any state was computed")
)
