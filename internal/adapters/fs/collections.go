package fs

import (
	"sort"

	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
)

var _ ports.FileCollectionFactory = (*CollectionFactory)(nil)

// CollectionFactory builds labeled, immutable file collections.
type CollectionFactory struct{}

// NewCollectionFactory creates a new CollectionFactory.
func NewCollectionFactory() *CollectionFactory {
	return &CollectionFactory{}
}

// Fixed returns a collection over the given paths, deduplicated and sorted.
func (f *CollectionFactory) Fixed(displayName string, paths []string) domain.FileCollection {
	seen := make(map[string]bool, len(paths))
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return domain.FileCollection{
		DisplayName: displayName,
		Files:       files,
	}
}

// Empty returns a collection containing no files.
func (f *CollectionFactory) Empty(displayName string) domain.FileCollection {
	return domain.FileCollection{DisplayName: displayName}
}
