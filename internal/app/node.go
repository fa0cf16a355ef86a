package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vladsoroka/gradle/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/vladsoroka/gradle/internal/adapters/history"   //nolint:depguard // Wired in app layer
	"github.com/vladsoroka/gradle/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/vladsoroka/gradle/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/vladsoroka/gradle/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/vladsoroka/gradle/internal/core/ports"
	"github.com/vladsoroka/gradle/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the application with the collaborators the CLI shell
// needs direct access to.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
	Telemetry    ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			watcher.NodeID,
			history.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			newScheduler, err := graft.Dep[scheduler.Factory](ctx)
			if err != nil {
				return nil, err
			}

			fileWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			historyRepo, err := graft.Dep[ports.HistoryRepository](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, newScheduler, fileWatcher, historyRepo, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log, ConfigLoader: loader, Telemetry: recorder}, nil
		},
	})
}
