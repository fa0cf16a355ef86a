package fs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	WalkerNodeID            graft.ID = "adapter.fs.walker"
	SnapshotterNodeID       graft.ID = "adapter.fs.snapshotter"
	CollectionFactoryNodeID graft.ID = "adapter.fs.collections"
)

func init() {
	// Walker Node (Concrete implementation needed by Snapshotter)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Snapshotter Node, rooted at the invocation directory
	graft.Register(graft.Node[ports.Snapshotter]{
		ID:        SnapshotterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Snapshotter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return NewSnapshotter(cwd, walker), nil
		},
	})

	// Collection Factory Node
	graft.Register(graft.Node[ports.FileCollectionFactory]{
		ID:        CollectionFactoryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileCollectionFactory, error) {
			return NewCollectionFactory(), nil
		},
	})
}
