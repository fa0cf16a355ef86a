// Package ports defines the core interfaces for the application.
package ports

import "github.com/vladsoroka/gradle/internal/core/domain"

// Snapshotter produces content-addressed snapshots of file collections.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshotter.go -destination=mocks/mock_snapshotter.go -package=mocks
type Snapshotter interface {
	// Snapshot records the current file-system state of the given
	// collection. Two calls over identical file content at the same instant
	// yield equal snapshots, independent of enumeration order. Paths that do
	// not exist are simply absent from the result.
	Snapshot(spec domain.FileCollectionSpec) (domain.Snapshot, error)

	// SnapshotPaths records the current state of an explicit set of paths,
	// used for discovered inputs and previously recorded file sets.
	SnapshotPaths(paths []string) (domain.Snapshot, error)
}
