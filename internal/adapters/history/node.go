package history

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the history store Graft node.
const NodeID graft.ID = "adapter.history_store"

func init() {
	graft.Register(graft.Node[ports.HistoryRepository]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HistoryRepository, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return NewStore(cwd), nil
		},
	})
}
