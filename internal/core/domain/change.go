package domain

// ChangeKind classifies a detected change between two task executions.
type ChangeKind uint8

const (
	// ChangeAdded indicates a path or property present now but not before.
	ChangeAdded ChangeKind = iota
	// ChangeRemoved indicates a path or property present before but not now.
	ChangeRemoved
	// ChangeModified indicates differing content for the same path or
	// property.
	ChangeModified
	// ChangeOther covers non-path changes such as missing history or a
	// changed task type.
	ChangeOther
)

// String returns the lowercase name of the kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "other"
	}
}

// Change is one immutable change event detected between the current task
// state and its previous execution. RebuildForcing is a property of the rule
// that produced the event, not of the affected path: a rebuild-forcing change
// invalidates incremental execution entirely.
type Change struct {
	Kind           ChangeKind
	Path           string
	Message        string
	RebuildForcing bool
}
