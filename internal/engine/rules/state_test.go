package rules_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports/mocks"
	"github.com/vladsoroka/gradle/internal/engine/rules"
	"go.uber.org/mock/gomock"
)

type stateFixture struct {
	state       *rules.UpToDateState
	snapshotter *mocks.MockSnapshotter
	implHasher  *mocks.MockImplementationHasher
	current     *domain.ExecutionRecord
}

func newFixture(t *testing.T, task *domain.Task, previous *domain.ExecutionRecord) *stateFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	current := &domain.ExecutionRecord{
		TaskName: task.Name.String(),
		TaskType: task.Type,
	}

	history := mocks.NewMockHistory(ctrl)
	history.EXPECT().PreviousExecution().Return(previous).AnyTimes()
	history.EXPECT().CurrentExecution().Return(current).AnyTimes()

	snapshotter := mocks.NewMockSnapshotter(ctrl)
	implHasher := mocks.NewMockImplementationHasher(ctrl)

	return &stateFixture{
		state:       rules.New(task, history, snapshotter, implHasher),
		snapshotter: snapshotter,
		implHasher:  implHasher,
		current:     current,
	}
}

func collect(t *testing.T, seq iter.Seq2[domain.Change, error]) []domain.Change {
	t.Helper()
	var changes []domain.Change
	for c, err := range seq {
		require.NoError(t, err)
		changes = append(changes, c)
	}
	return changes
}

func simpleTask() *domain.Task {
	return &domain.Task{
		Name:    domain.NewInternedString("compile"),
		Type:    "Exec",
		Command: []string{"go", "build"},
		Inputs: map[string]domain.FileCollectionSpec{
			"sources": {Paths: []string{"src"}},
		},
		Outputs: map[string]domain.FileCollectionSpec{
			"binary": {Paths: []string{"bin"}},
		},
	}
}

func snap(entries map[string]string) domain.Snapshot {
	s := make(domain.Snapshot, len(entries))
	for path, hash := range entries {
		s[path] = domain.Fingerprint{Hash: hash, Type: domain.TypeRegularFile, Size: 1}
	}
	return s
}

// matchingRecord builds a previous execution whose state matches what the
// fixture's mocks will report as current.
func matchingRecord(inputs, outputs domain.Snapshot) *domain.ExecutionRecord {
	return &domain.ExecutionRecord{
		TaskName:            "compile",
		TaskType:            "Exec",
		ImplementationHash:  "impl-v1",
		InputPropertyHashes: map[string]string{},
		InputFileSnapshots:  map[string]domain.Snapshot{"sources": inputs},
		OutputFileSnapshots: map[string]domain.Snapshot{"binary": outputs},
	}
}

func TestNoHistory_SingleRebuildForcingChange(t *testing.T) {
	f := newFixture(t, simpleTask(), nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 1)
	assert.True(t, changes[0].RebuildForcing)
	assert.Equal(t, "No history is available for task 'compile'.", changes[0].Message)
}

func TestUpToDate_NoChanges(t *testing.T) {
	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})

	task := simpleTask()
	f := newFixture(t, task, matchingRecord(inputs, outputs))

	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)

	assert.Empty(t, collect(t, f.state.AllChanges()))
}

func TestTaskTypeChange_DetectedWithoutSnapshotting(t *testing.T) {
	task := simpleTask()
	previous := &domain.ExecutionRecord{TaskName: "compile", TaskType: "Copy"}
	f := newFixture(t, task, previous)

	// Stop after the first change: later rules must never run, so no
	// snapshotter or hasher expectations are registered.
	for c, err := range f.state.AllChanges() {
		require.NoError(t, err)
		assert.True(t, c.RebuildForcing)
		assert.Equal(t, "The type of task 'compile' has changed from 'Copy' to 'Exec'.", c.Message)
		break
	}
}

func TestImplementationChange(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})
	f := newFixture(t, task, matchingRecord(inputs, outputs))

	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v2", nil)

	var first domain.Change
	for c, err := range f.state.AllChanges() {
		require.NoError(t, err)
		first = c
		break
	}
	assert.True(t, first.RebuildForcing)
	assert.Equal(t, "The implementation of task 'compile' has changed.", first.Message)
}

func TestInputPropertyChanges(t *testing.T) {
	task := simpleTask()
	task.Properties = map[string]string{"target": "linux", "fresh": "yes"}

	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})
	previous := matchingRecord(inputs, outputs)
	previous.InputPropertyHashes = map[string]string{
		"target": "0000000000000000",
		"gone":   "1111111111111111",
	}

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 3)

	var messages []string
	for _, c := range changes {
		assert.True(t, c.RebuildForcing)
		messages = append(messages, c.Message)
	}
	assert.Contains(t, messages, "Input property 'fresh' has been added for task 'compile'.")
	assert.Contains(t, messages, "Value of input property 'target' has changed for task 'compile'.")
	assert.Contains(t, messages, "Input property 'gone' has been removed for task 'compile'.")
}

func TestEnvironmentVariablesAreInputProperties(t *testing.T) {
	task := simpleTask()
	task.Environment = map[string]string{"CGO_ENABLED": "1"}

	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})
	previous := matchingRecord(inputs, outputs)

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 1)
	assert.Equal(t, "Input property 'env.CGO_ENABLED' has been added for task 'compile'.", changes[0].Message)
}

func TestInputFilePropertySetChanges(t *testing.T) {
	task := simpleTask()
	task.Inputs["headers"] = domain.FileCollectionSpec{Paths: []string{"include"}}

	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})
	previous := matchingRecord(inputs, outputs)
	previous.InputFileSnapshots["legacy"] = snap(map[string]string{"old.txt": "cc"})

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["headers"]).Return(domain.Snapshot{}, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 2)
	assert.Equal(t, "Input file property 'headers' has been added for task 'compile'.", changes[0].Message)
	assert.True(t, changes[0].RebuildForcing)
	assert.Equal(t, "Input file property 'legacy' has been removed for task 'compile'.", changes[1].Message)
}

func TestInputFileContentChanges_AreIncremental(t *testing.T) {
	task := simpleTask()
	previousInputs := snap(map[string]string{
		"src/main.go": "aa",
		"src/gone.go": "dd",
	})
	currentInputs := snap(map[string]string{
		"src/main.go": "ee",
		"src/new.go":  "ff",
	})
	outputs := snap(map[string]string{"bin/app": "bb"})
	previous := matchingRecord(previousInputs, outputs)

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(currentInputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 3)

	byPath := make(map[string]domain.Change, len(changes))
	for _, c := range changes {
		assert.False(t, c.RebuildForcing, "input content changes must stay incremental")
		byPath[c.Path] = c
	}
	assert.Equal(t, domain.ChangeRemoved, byPath["src/gone.go"].Kind)
	assert.Equal(t, domain.ChangeModified, byPath["src/main.go"].Kind)
	assert.Equal(t, domain.ChangeAdded, byPath["src/new.go"].Kind)

	// The same changes seed the incremental input view.
	assert.Len(t, collect(t, f.state.InputFileChanges()), 3)
}

func TestOutputTampering_ForcesRebuild(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})
	previous := matchingRecord(inputs, snap(map[string]string{"bin/app": "bb"}))

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(snap(map[string]string{"bin/app": "tampered"}), nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 1)
	assert.True(t, changes[0].RebuildForcing)
	assert.Equal(t, "Output file bin/app has been changed for task 'compile'.", changes[0].Message)

	// Rebuild-forcing view sees it too; the incremental seed does not.
	assert.Len(t, collect(t, f.state.RebuildChanges()), 1)
	assert.Empty(t, collect(t, f.state.InputFileChanges()))
}

func TestDiscoveredInputChanges_AreIncremental(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})
	outputs := snap(map[string]string{"bin/app": "bb"})
	previous := matchingRecord(inputs, outputs)
	previous.DiscoveredInputs = snap(map[string]string{"gen/schema.h": "cc"})

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(outputs, nil)
	f.snapshotter.EXPECT().SnapshotPaths([]string{"gen/schema.h"}).
		Return(snap(map[string]string{"gen/schema.h": "changed"}), nil)

	changes := collect(t, f.state.AllChanges())
	require.Len(t, changes, 1)
	assert.False(t, changes[0].RebuildForcing)
	assert.Equal(t, "Discovered input file gen/schema.h has been changed for task 'compile'.", changes[0].Message)
	assert.Empty(t, collect(t, f.state.RebuildChanges()))
}

func TestSnapshotterError_PropagatesThroughSequence(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})
	previous := matchingRecord(inputs, snap(nil))

	f := newFixture(t, task, previous)
	f.implHasher.EXPECT().HashImplementation(task).Return("", assertErr{})

	var sawErr error
	for _, err := range f.state.AllChanges() {
		if err != nil {
			sawErr = err
			break
		}
	}
	require.Error(t, sawErr)
	assert.Contains(t, sawErr.Error(), "failed to hash task implementation")
}

type assertErr struct{}

func (assertErr) Error() string { return "hasher exploded" }

func TestCurrentExecution_DerivesCacheKeyWithoutOutputs(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})

	f := newFixture(t, task, nil)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	// Only input snapshots are taken; outputs are not part of the cache key.
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)

	record, err := f.state.CurrentExecution()
	require.NoError(t, err)
	assert.Equal(t, "impl-v1", record.ImplementationHash)
	assert.NotEmpty(t, record.CacheKey)
	assert.Equal(t, record.ComputeCacheKey(), record.CacheKey)
	assert.Nil(t, record.OutputFileSnapshots)

	// Forcing twice is idempotent and reuses the memoized state.
	again, err := f.state.CurrentExecution()
	require.NoError(t, err)
	assert.Equal(t, record.CacheKey, again.CacheKey)
}

func TestSnapshotAfterTask_RecordsFreshOutputs(t *testing.T) {
	task := simpleTask()
	inputs := snap(map[string]string{"src/main.go": "aa"})
	postOutputs := snap(map[string]string{"bin/app": "fresh"})

	f := newFixture(t, task, nil)
	f.implHasher.EXPECT().HashImplementation(task).Return("impl-v1", nil)
	f.snapshotter.EXPECT().Snapshot(task.Inputs["sources"]).Return(inputs, nil)
	f.snapshotter.EXPECT().Snapshot(task.Outputs["binary"]).Return(postOutputs, nil)

	require.NoError(t, f.state.SnapshotAfterTask())
	assert.Equal(t, postOutputs, f.current.OutputFileSnapshots["binary"])
	assert.NotNil(t, f.current.DiscoveredInputs)
}

func TestNewInputs_SnapshotsDiscoveredPaths(t *testing.T) {
	task := simpleTask()
	discovered := snap(map[string]string{"gen/schema.h": "cc"})

	f := newFixture(t, task, nil)
	f.snapshotter.EXPECT().SnapshotPaths([]string{"gen/schema.h"}).Return(discovered, nil)

	require.NoError(t, f.state.NewInputs([]string{"gen/schema.h"}))
	assert.Equal(t, discovered, f.current.DiscoveredInputs)
}
