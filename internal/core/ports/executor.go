package ports

import (
	"context"

	"github.com/vladsoroka/gradle/internal/core/domain"
)

// Executor defines the interface for executing task bodies.
//
// The env parameter contains extra environment variables in "KEY=VALUE"
// format; the scheduler uses it to hand the incremental input view to the
// task body.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	Execute(ctx context.Context, task *domain.Task, env []string) error
}
