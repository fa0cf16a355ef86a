package ports

import "github.com/vladsoroka/gradle/internal/core/domain"

// ImplementationHasher computes a deterministic hash of a task's
// implementation: its type, command and implementation files. The hash
// invalidates cached results when task logic changes, independent of inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=impl_hasher.go -destination=mocks/mock_impl_hasher.go -package=mocks
type ImplementationHasher interface {
	HashImplementation(task *domain.Task) (string, error)
}
