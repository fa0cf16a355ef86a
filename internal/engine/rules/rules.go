package rules

import (
	"fmt"
	"sort"

	"github.com/vladsoroka/gradle/internal/core/domain"
)

type ruleKind uint8

const (
	ruleNoHistory ruleKind = iota
	ruleTaskType
	ruleImplementation
	ruleInputProperties
	ruleInputFilePropertySet
	ruleInputFileContent
	ruleOutputFiles
	ruleDiscoveredInputs
)

// rule is one change detector. Detection runs at most once per session; the
// rebuildForcing flag is a property of the rule, not of individual paths.
type rule struct {
	kind           ruleKind
	rebuildForcing bool
	detect         func() ([]domain.Change, error)

	result memo[[]domain.Change]
}

func (r *rule) changes() ([]domain.Change, error) {
	return r.result.get(func() ([]domain.Change, error) {
		changes, err := r.detect()
		if err != nil {
			return nil, err
		}
		for i := range changes {
			changes[i].RebuildForcing = r.rebuildForcing
		}
		return changes, nil
	})
}

// buildRules assembles the ordered rule set. Without a previous execution
// every detailed comparison is meaningless, so the set collapses to the
// single "no history" rule.
func (s *UpToDateState) buildRules() []*rule {
	if s.previous == nil {
		return []*rule{{
			kind:           ruleNoHistory,
			rebuildForcing: true,
			detect:         s.detectNoHistory,
		}}
	}
	return []*rule{
		{kind: ruleTaskType, rebuildForcing: true, detect: s.detectTaskTypeChange},
		{kind: ruleImplementation, rebuildForcing: true, detect: s.detectImplementationChange},
		{kind: ruleInputProperties, rebuildForcing: true, detect: s.detectInputPropertyChanges},
		{kind: ruleInputFilePropertySet, rebuildForcing: true, detect: s.detectInputFilePropertySetChanges},
		{kind: ruleInputFileContent, rebuildForcing: false, detect: s.detectInputFileChanges},
		{kind: ruleOutputFiles, rebuildForcing: true, detect: s.detectOutputFileChanges},
		{kind: ruleDiscoveredInputs, rebuildForcing: false, detect: s.detectDiscoveredInputChanges},
	}
}

func (s *UpToDateState) detectNoHistory() ([]domain.Change, error) {
	return []domain.Change{{
		Kind:    domain.ChangeOther,
		Message: fmt.Sprintf("No history is available for task '%s'.", s.task.Name),
	}}, nil
}

func (s *UpToDateState) detectTaskTypeChange() ([]domain.Change, error) {
	if s.previous.TaskType == s.task.Type {
		return nil, nil
	}
	return []domain.Change{{
		Kind: domain.ChangeOther,
		Message: fmt.Sprintf("The type of task '%s' has changed from '%s' to '%s'.",
			s.task.Name, s.previous.TaskType, s.task.Type),
	}}, nil
}

func (s *UpToDateState) detectImplementationChange() ([]domain.Change, error) {
	hash, err := s.currentImplementationHash()
	if err != nil {
		return nil, err
	}
	if hash == s.previous.ImplementationHash {
		return nil, nil
	}
	return []domain.Change{{
		Kind:    domain.ChangeModified,
		Message: fmt.Sprintf("The implementation of task '%s' has changed.", s.task.Name),
	}}, nil
}

func (s *UpToDateState) detectInputPropertyChanges() ([]domain.Change, error) {
	current, err := s.currentPropertyHashes()
	if err != nil {
		return nil, err
	}
	previous := s.previous.InputPropertyHashes

	var changes []domain.Change
	for _, name := range sortedKeys(current) {
		prevHash, existed := previous[name]
		switch {
		case !existed:
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeAdded,
				Message: fmt.Sprintf("Input property '%s' has been added for task '%s'.", name, s.task.Name),
			})
		case prevHash != current[name]:
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeModified,
				Message: fmt.Sprintf("Value of input property '%s' has changed for task '%s'.", name, s.task.Name),
			})
		}
	}
	for _, name := range sortedKeys(previous) {
		if _, exists := current[name]; !exists {
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeRemoved,
				Message: fmt.Sprintf("Input property '%s' has been removed for task '%s'.", name, s.task.Name),
			})
		}
	}
	return changes, nil
}

func (s *UpToDateState) detectInputFilePropertySetChanges() ([]domain.Change, error) {
	var changes []domain.Change
	for _, name := range s.task.InputPropertyNames() {
		if _, existed := s.previous.InputFileSnapshots[name]; !existed {
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeAdded,
				Message: fmt.Sprintf("Input file property '%s' has been added for task '%s'.", name, s.task.Name),
			})
		}
	}
	for _, name := range sortedSnapshotKeys(s.previous.InputFileSnapshots) {
		if _, exists := s.task.Inputs[name]; !exists {
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeRemoved,
				Message: fmt.Sprintf("Input file property '%s' has been removed for task '%s'.", name, s.task.Name),
			})
		}
	}
	return changes, nil
}

// detectInputFileChanges diffs the snapshots of input file properties that
// exist on both sides. Property set changes are detected by the preceding
// rule; content changes here are the normal incremental case.
func (s *UpToDateState) detectInputFileChanges() ([]domain.Change, error) {
	current, err := s.currentInputSnapshots()
	if err != nil {
		return nil, err
	}

	var changes []domain.Change
	for _, name := range s.task.InputPropertyNames() {
		previous, existed := s.previous.InputFileSnapshots[name]
		if !existed {
			continue
		}
		for _, fc := range current[name].DiffFrom(previous) {
			changes = append(changes, domain.Change{
				Kind: fc.Kind,
				Path: fc.Path,
				Message: fmt.Sprintf("Input file %s has been %s for task '%s'.",
					fc.Path, kindWord(fc.Kind), s.task.Name),
			})
		}
	}
	return changes, nil
}

// detectOutputFileChanges compares the pre-execution output state against the
// snapshots recorded when the task last ran. Any difference means the outputs
// were modified outside the task's own execution, which invalidates them as a
// baseline for incremental work.
func (s *UpToDateState) detectOutputFileChanges() ([]domain.Change, error) {
	current, err := s.currentOutputSnapshots()
	if err != nil {
		return nil, err
	}

	var changes []domain.Change
	for _, name := range s.task.OutputPropertyNames() {
		previous, existed := s.previous.OutputFileSnapshots[name]
		if !existed {
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeAdded,
				Message: fmt.Sprintf("Output property '%s' has been added for task '%s'.", name, s.task.Name),
			})
			continue
		}
		for _, fc := range current[name].DiffFrom(previous) {
			changes = append(changes, domain.Change{
				Kind: fc.Kind,
				Path: fc.Path,
				Message: fmt.Sprintf("Output file %s has been %s for task '%s'.",
					fc.Path, kindWord(fc.Kind), s.task.Name),
			})
		}
	}
	for _, name := range sortedSnapshotKeys(s.previous.OutputFileSnapshots) {
		if _, exists := s.task.Outputs[name]; !exists {
			changes = append(changes, domain.Change{
				Kind:    domain.ChangeRemoved,
				Message: fmt.Sprintf("Output property '%s' has been removed for task '%s'.", name, s.task.Name),
			})
		}
	}
	return changes, nil
}

func (s *UpToDateState) detectDiscoveredInputChanges() ([]domain.Change, error) {
	current, err := s.currentDiscoveredSnapshot()
	if err != nil {
		return nil, err
	}

	var changes []domain.Change
	for _, fc := range current.DiffFrom(s.previous.DiscoveredInputs) {
		changes = append(changes, domain.Change{
			Kind: fc.Kind,
			Path: fc.Path,
			Message: fmt.Sprintf("Discovered input file %s has been %s for task '%s'.",
				fc.Path, kindWord(fc.Kind), s.task.Name),
		})
	}
	return changes, nil
}

func kindWord(kind domain.ChangeKind) string {
	switch kind {
	case domain.ChangeAdded:
		return "added"
	case domain.ChangeRemoved:
		return "removed"
	default:
		return "changed"
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSnapshotKeys(m map[string]domain.Snapshot) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
