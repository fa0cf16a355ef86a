package ports

import "github.com/vladsoroka/gradle/internal/core/domain"

// FileCollectionFactory materializes sets of paths into externally consumable
// file collections.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_collection.go -destination=mocks/mock_file_collection.go -package=mocks
type FileCollectionFactory interface {
	// Fixed produces a labeled collection over the given paths.
	Fixed(displayName string, paths []string) domain.FileCollection

	// Empty produces a labeled collection with no files.
	Empty(displayName string) domain.FileCollection
}
