package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"github.com/vladsoroka/gradle/internal/engine/artifact"
)

// NodeID is the unique identifier for the scheduler factory Graft node.
const NodeID graft.ID = "engine.scheduler_factory"

// Factory builds a Scheduler once the task graph is known. The graph comes
// from configuration at run time, after the dependency container is built.
type Factory func(graph *domain.Graph) (*Scheduler, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			artifact.NodeID,
			shell.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (Factory, error) {
			states, err := graft.Dep[*artifact.Repository](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return func(graph *domain.Graph) (*Scheduler, error) {
				return NewScheduler(graph, states, executor, recorder, log)
			}, nil
		},
	})
}
