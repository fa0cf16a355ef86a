package artifact

import (
	"fmt"

	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"github.com/vladsoroka/gradle/internal/engine/rules"
)

// phase is the session lifecycle state. Transitions:
// Fresh -> {UpToDate | ExecutionPending} -> Finalized.
type phase uint8

const (
	phaseFresh phase = iota
	phaseUpToDate
	phaseExecutionPending
	phaseFinalized
)

// State is the per-task, per-build artifact state session. It is not safe
// for concurrent use; one logical task-execution context drives it.
type State struct {
	task    *domain.Task
	history ports.History
	repo    *Repository

	phase  phase
	states *rules.UpToDateState
	inputs *InputChanges
}

// IsUpToDate reports whether the task's recorded outputs are still valid for
// its current inputs. If messages is non-nil, every change's human-readable
// message is appended in rule order and the full rule set is scanned;
// otherwise the scan stops at the first change. A true result marks the
// session up-to-date, permanently forbidding input-change queries.
func (s *State) IsUpToDate(messages *[]string) (bool, error) {
	if s.phase == phaseFinalized {
		return false, domain.ErrStateFinalized
	}
	if s.phase == phaseUpToDate {
		return true, nil
	}

	upToDate := true
	for change, err := range s.upToDateState().AllChanges() {
		if err != nil {
			return false, err
		}
		upToDate = false
		if messages == nil {
			break
		}
		*messages = append(*messages, change.Message)
	}

	if upToDate {
		s.phase = phaseUpToDate
		return true, nil
	}
	s.phase = phaseExecutionPending
	return false, nil
}

// InputChanges returns the incremental-or-full input view for the task body.
// The result is memoized for the session. Calling this after the session was
// marked up-to-date is a programming error.
func (s *State) InputChanges() (*InputChanges, error) {
	switch s.phase {
	case phaseUpToDate:
		return nil, domain.ErrInputChangesAfterSkip
	case phaseFinalized:
		return nil, domain.ErrStateFinalized
	}
	if s.inputs != nil {
		return s.inputs, nil
	}

	incremental := true
	for _, err := range s.upToDateState().RebuildChanges() {
		if err != nil {
			return nil, err
		}
		incremental = false
		break
	}

	if incremental {
		var changed []domain.Change
		for change, err := range s.upToDateState().InputFileChanges() {
			if err != nil {
				return nil, err
			}
			changed = append(changed, change)
		}
		s.inputs = newIncrementalChanges(changed)
	} else {
		current, err := s.upToDateState().CurrentExecution()
		if err != nil {
			return nil, err
		}
		s.inputs = newRebuildChanges(current.InputFileSnapshots)
	}

	s.phase = phaseExecutionPending
	return s.inputs, nil
}

// CalculateCacheKey derives the deterministic cache key of the task's
// current input state. It forces the decision engine to compute that state
// even if no changes were queried.
func (s *State) CalculateCacheKey() (domain.CacheKey, error) {
	if s.phase == phaseFinalized {
		return "", domain.ErrStateFinalized
	}
	current, err := s.upToDateState().CurrentExecution()
	if err != nil {
		return "", err
	}
	return current.CacheKey, nil
}

// OutputFiles returns the output files recorded under the given property by
// the previous execution. A task that never ran, or never declared the
// property, yields an empty labeled collection; absence of history is a
// normal condition.
func (s *State) OutputFiles(propertyName string) domain.FileCollection {
	label := fmt.Sprintf("Task '%s' %s outputs", s.task.Name, propertyName)
	previous := s.history.PreviousExecution()
	if previous != nil {
		if snapshot, ok := previous.OutputFileSnapshots[propertyName]; ok {
			return s.repo.fileCollections.Fixed(label, snapshot.Paths())
		}
	}
	return s.repo.fileCollections.Empty(label)
}

// BeforeTask is a lifecycle no-op point before the task body runs.
func (s *State) BeforeTask() {}

// AfterTask finalizes the session after the task body ran. For an up-to-date
// session it is a no-op that leaves the previous record untouched. Otherwise
// it merges discovered inputs, snapshots the post-execution state and commits
// it as the new previous record. Exactly-once: a second call, or a call
// before any state was computed, is a programming error.
func (s *State) AfterTask() error {
	switch s.phase {
	case phaseUpToDate:
		s.phase = phaseFinalized
		return nil
	case phaseFinalized:
		return domain.ErrStateFinalized
	case phaseFresh:
		return domain.ErrStateNotComputed
	}

	if s.inputs != nil && len(s.inputs.discovered) > 0 {
		if err := s.states.NewInputs(s.inputs.discovered); err != nil {
			return err
		}
	}
	if err := s.states.SnapshotAfterTask(); err != nil {
		return err
	}
	if err := s.history.Update(); err != nil {
		return err
	}
	s.phase = phaseFinalized
	return nil
}

// Finished is a lifecycle no-op point at the end of the session.
func (s *State) Finished() {}

// upToDateState lazily builds the decision engine on first real need and caches it
// for the rest of the session.
func (s *State) upToDateState() *rules.UpToDateState {
	if s.states == nil {
		// Initial state computation is potentially expensive; it only
		// happens once per session.
		s.states = rules.New(s.task, s.history, s.repo.snapshotter, s.repo.implHasher)
	}
	return s.states
}
