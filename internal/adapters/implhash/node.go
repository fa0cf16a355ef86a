package implhash

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the implementation hasher Graft node.
const NodeID graft.ID = "adapter.impl_hasher"

func init() {
	graft.Register(graft.Node[ports.ImplementationHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImplementationHasher, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return NewHasher(cwd), nil
		},
	})
}
