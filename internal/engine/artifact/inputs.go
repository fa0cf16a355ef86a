package artifact

import (
	"iter"
	"sort"

	"github.com/vladsoroka/gradle/internal/core/domain"
)

// InputChanges is the input view handed to a task body: either an
// incremental view seeded with the detected input file changes, or a
// full-rebuild view that reports every input as out of date. Both share one
// capability surface so calling code is agnostic to which was returned.
type InputChanges struct {
	incremental bool
	outOfDate   []domain.Change
	removed     []domain.Change
	discovered  []string
}

func newIncrementalChanges(changes []domain.Change) *InputChanges {
	ic := &InputChanges{incremental: true}
	for _, c := range changes {
		if c.Kind == domain.ChangeRemoved {
			ic.removed = append(ic.removed, c)
		} else {
			ic.outOfDate = append(ic.outOfDate, c)
		}
	}
	return ic
}

// newRebuildChanges builds the full-rebuild view: every file in the current
// input snapshots is reported as out of date, regardless of actual diff
// detail.
func newRebuildChanges(inputs map[string]domain.Snapshot) *InputChanges {
	ic := &InputChanges{}
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, path := range inputs[name].Paths() {
			ic.outOfDate = append(ic.outOfDate, domain.Change{
				Kind: domain.ChangeModified,
				Path: path,
			})
		}
	}
	return ic
}

// Incremental reports whether the task body may process only the changed
// inputs. When false, everything must be reprocessed.
func (ic *InputChanges) Incremental() bool {
	return ic.incremental
}

// OutOfDate yields the added and modified input files.
func (ic *InputChanges) OutOfDate() iter.Seq[domain.Change] {
	return sliceSeq(ic.outOfDate)
}

// Removed yields the input files deleted since the previous execution.
func (ic *InputChanges) Removed() iter.Seq[domain.Change] {
	return sliceSeq(ic.removed)
}

// RegisterDiscovered records an input the task body detected during
// execution. Discovered inputs are merged into the execution record when the
// session is finalized.
func (ic *InputChanges) RegisterDiscovered(path string) {
	ic.discovered = append(ic.discovered, path)
}

func sliceSeq(changes []domain.Change) iter.Seq[domain.Change] {
	return func(yield func(domain.Change) bool) {
		for _, c := range changes {
			if !yield(c) {
				return
			}
		}
	}
}
