package domain

// FileCollection is a labeled, materialized set of file paths, used to hand
// recorded output snapshots back to the build engine. An empty collection is
// a normal value, not an error condition.
type FileCollection struct {
	DisplayName string
	Files       []string
}

// Empty reports whether the collection contains no files.
func (c FileCollection) Empty() bool {
	return len(c.Files) == 0
}
