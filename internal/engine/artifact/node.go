package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/adapters/history"  //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/adapters/implhash" //nolint:depguard // Wired in engine wiring
	"github.com/vladsoroka/gradle/internal/core/ports"
)

// NodeID is the unique identifier for the artifact state repository Graft node.
const NodeID graft.ID = "engine.artifact_repository"

func init() {
	graft.Register(graft.Node[*Repository]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			history.NodeID,
			fs.SnapshotterNodeID,
			fs.CollectionFactoryNodeID,
			implhash.NodeID,
		},
		Run: func(ctx context.Context) (*Repository, error) {
			historyRepo, err := graft.Dep[ports.HistoryRepository](ctx)
			if err != nil {
				return nil, err
			}

			snapshotter, err := graft.Dep[ports.Snapshotter](ctx)
			if err != nil {
				return nil, err
			}

			implHasher, err := graft.Dep[ports.ImplementationHasher](ctx)
			if err != nil {
				return nil, err
			}

			fileCollections, err := graft.Dep[ports.FileCollectionFactory](ctx)
			if err != nil {
				return nil, err
			}

			return NewRepository(historyRepo, snapshotter, implHasher, fileCollections), nil
		},
	})
}
