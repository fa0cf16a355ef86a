// Package rules implements the up-to-date decision engine: an ordered set of
// change detectors that compare a task's current input/output state against
// its previous execution record.
package rules

import (
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

// memo caches the result of a one-shot computation. Sessions are accessed
// from a single task-execution context, so no locking is needed.
type memo[T any] struct {
	done  bool
	value T
	err   error
}

func (m *memo[T]) get(compute func() (T, error)) (T, error) {
	if !m.done {
		m.value, m.err = compute()
		m.done = true
	}
	return m.value, m.err
}

// UpToDateState aggregates the change rule set over one task. It owns the
// lazily computed "current" execution record and exposes two logical views
// over the same ordered rules: all changes, and the rebuild-forcing subset.
type UpToDateState struct {
	task        *domain.Task
	previous    *domain.ExecutionRecord
	current     *domain.ExecutionRecord
	snapshotter ports.Snapshotter
	implHasher  ports.ImplementationHasher

	rules []*rule

	implHash        memo[string]
	propertyHashes  memo[map[string]string]
	inputSnapshots  memo[map[string]domain.Snapshot]
	outputsBefore   memo[map[string]domain.Snapshot]
	discoveredState memo[domain.Snapshot]
}

// New builds the decision engine for one task over its execution history.
// Construction itself is cheap; snapshots and hashes are computed when a rule
// first needs them.
func New(task *domain.Task, history ports.History, snapshotter ports.Snapshotter, implHasher ports.ImplementationHasher) *UpToDateState {
	s := &UpToDateState{
		task:        task,
		previous:    history.PreviousExecution(),
		current:     history.CurrentExecution(),
		snapshotter: snapshotter,
		implHasher:  implHasher,
	}
	s.rules = s.buildRules()
	return s
}

// AllChanges yields every detected difference between the current and
// previous execution state, in fixed rule order. The sequence is lazy: rules
// past the point where the consumer stops are never evaluated. A non-nil
// error accompanies a zero Change and terminates the sequence.
func (s *UpToDateState) AllChanges() iter.Seq2[domain.Change, error] {
	return s.changes(func(*rule) bool { return true })
}

// RebuildChanges yields only the changes that invalidate incremental
// execution entirely.
func (s *UpToDateState) RebuildChanges() iter.Seq2[domain.Change, error] {
	return s.changes(func(r *rule) bool { return r.rebuildForcing })
}

// InputFileChanges yields the per-file input content changes, the seed for an
// incremental execution.
func (s *UpToDateState) InputFileChanges() iter.Seq2[domain.Change, error] {
	return s.changes(func(r *rule) bool { return r.kind == ruleInputFileContent })
}

func (s *UpToDateState) changes(include func(*rule) bool) iter.Seq2[domain.Change, error] {
	return func(yield func(domain.Change, error) bool) {
		for _, r := range s.rules {
			if !include(r) {
				continue
			}
			changes, err := r.changes()
			if err != nil {
				yield(domain.Change{}, err)
				return
			}
			for _, c := range changes {
				if !yield(c, nil) {
					return
				}
			}
		}
	}
}

// CurrentExecution forces computation of the current record's non-output
// fields (implementation hash, input property hashes, input file snapshots)
// and returns the record. The cache key is derived and stored on it.
func (s *UpToDateState) CurrentExecution() (*domain.ExecutionRecord, error) {
	if _, err := s.currentImplementationHash(); err != nil {
		return nil, err
	}
	if _, err := s.currentPropertyHashes(); err != nil {
		return nil, err
	}
	if _, err := s.currentInputSnapshots(); err != nil {
		return nil, err
	}
	s.current.CacheKey = s.current.ComputeCacheKey()
	return s.current, nil
}

// NewInputs replaces the engine's notion of discovered inputs with the paths
// the task body reported during execution, snapshotting their current state.
func (s *UpToDateState) NewInputs(paths []string) error {
	snapshot, err := s.snapshotter.SnapshotPaths(paths)
	if err != nil {
		return zerr.Wrap(err, "failed to snapshot discovered inputs")
	}
	s.current.DiscoveredInputs = snapshot
	return nil
}

// SnapshotAfterTask captures the post-execution state as the new execution
// record: fresh output snapshots, carried-over or newly discovered inputs,
// and the derived cache key. The caller commits the record via the history.
func (s *UpToDateState) SnapshotAfterTask() error {
	if _, err := s.CurrentExecution(); err != nil {
		return err
	}

	outputs := make(map[string]domain.Snapshot, len(s.task.Outputs))
	for _, name := range s.task.OutputPropertyNames() {
		snapshot, err := s.snapshotter.Snapshot(s.task.Outputs[name])
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to snapshot outputs"), "property", name)
		}
		outputs[name] = snapshot
	}
	s.current.OutputFileSnapshots = outputs

	if s.current.DiscoveredInputs == nil {
		discovered, err := s.currentDiscoveredSnapshot()
		if err != nil {
			return err
		}
		s.current.DiscoveredInputs = discovered
	}
	return nil
}

func (s *UpToDateState) currentImplementationHash() (string, error) {
	return s.implHash.get(func() (string, error) {
		hash, err := s.implHasher.HashImplementation(s.task)
		if err != nil {
			return "", zerr.Wrap(err, "failed to hash task implementation")
		}
		s.current.ImplementationHash = hash
		return hash, nil
	})
}

func (s *UpToDateState) currentPropertyHashes() (map[string]string, error) {
	return s.propertyHashes.get(func() (map[string]string, error) {
		props := s.task.InputProperties()
		hashes := make(map[string]string, len(props))
		for name, value := range props {
			hashes[name] = fmt.Sprintf("%016x", xxhash.Sum64String(value))
		}
		s.current.InputPropertyHashes = hashes
		return hashes, nil
	})
}

func (s *UpToDateState) currentInputSnapshots() (map[string]domain.Snapshot, error) {
	return s.inputSnapshots.get(func() (map[string]domain.Snapshot, error) {
		snapshots := make(map[string]domain.Snapshot, len(s.task.Inputs))
		for _, name := range s.task.InputPropertyNames() {
			snapshot, err := s.snapshotter.Snapshot(s.task.Inputs[name])
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to snapshot inputs"), "property", name)
			}
			snapshots[name] = snapshot
		}
		s.current.InputFileSnapshots = snapshots
		return snapshots, nil
	})
}

// currentOutputSnapshots is the pre-execution view of the declared outputs,
// used to detect external tampering. It is never stored on the current
// record; the record gets the post-execution snapshot instead.
func (s *UpToDateState) currentOutputSnapshots() (map[string]domain.Snapshot, error) {
	return s.outputsBefore.get(func() (map[string]domain.Snapshot, error) {
		snapshots := make(map[string]domain.Snapshot, len(s.task.Outputs))
		for _, name := range s.task.OutputPropertyNames() {
			snapshot, err := s.snapshotter.Snapshot(s.task.Outputs[name])
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to snapshot outputs"), "property", name)
			}
			snapshots[name] = snapshot
		}
		return snapshots, nil
	})
}

// currentDiscoveredSnapshot re-snapshots the files the previous execution
// discovered. With no history this is an empty snapshot.
func (s *UpToDateState) currentDiscoveredSnapshot() (domain.Snapshot, error) {
	return s.discoveredState.get(func() (domain.Snapshot, error) {
		if s.previous == nil || s.previous.DiscoveredInputs.Empty() {
			return domain.Snapshot{}, nil
		}
		snapshot, err := s.snapshotter.SnapshotPaths(s.previous.DiscoveredInputs.Paths())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to snapshot discovered inputs")
		}
		return snapshot, nil
	})
}
