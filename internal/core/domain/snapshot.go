package domain

import (
	"sort"
)

// FileType classifies a snapshotted path.
type FileType uint8

const (
	// TypeRegularFile is a regular file with hashed content.
	TypeRegularFile FileType = iota
	// TypeDirectory is a directory entry.
	TypeDirectory
)

// MarshalText implements encoding.TextMarshaler.
func (t FileType) MarshalText() ([]byte, error) {
	if t == TypeDirectory {
		return []byte("dir"), nil
	}
	return []byte("file"), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FileType) UnmarshalText(text []byte) error {
	if string(text) == "dir" {
		*t = TypeDirectory
	} else {
		*t = TypeRegularFile
	}
	return nil
}

// Fingerprint is the recorded state of one path: content hash, type and
// length. Fingerprints are compared as whole values.
type Fingerprint struct {
	Hash string   `json:"hash"`
	Type FileType `json:"type"`
	Size int64    `json:"size,omitzero"`
}

// Snapshot is an immutable, order-independent record of a file collection's
// state at a point in time, keyed by normalized path. The zero value (nil)
// is a valid empty snapshot.
type Snapshot map[string]Fingerprint

// Empty reports whether the snapshot observed no files.
func (s Snapshot) Empty() bool {
	return len(s) == 0
}

// Paths returns the snapshotted paths in sorted order.
func (s Snapshot) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FileChange is one path-level difference between two snapshots.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// DiffFrom compares the snapshot against a previous one and returns the
// symmetric difference as path-level changes: present only here is Added,
// present only in previous is Removed, present in both with differing
// fingerprints is Modified. The result is sorted by path regardless of map
// enumeration order.
func (s Snapshot) DiffFrom(previous Snapshot) []FileChange {
	var changes []FileChange
	for path, fp := range s {
		prev, ok := previous[path]
		switch {
		case !ok:
			changes = append(changes, FileChange{Path: path, Kind: ChangeAdded})
		case prev != fp:
			changes = append(changes, FileChange{Path: path, Kind: ChangeModified})
		}
	}
	for path := range previous {
		if _, ok := s[path]; !ok {
			changes = append(changes, FileChange{Path: path, Kind: ChangeRemoved})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}
