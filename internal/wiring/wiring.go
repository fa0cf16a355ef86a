// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/vladsoroka/gradle/internal/adapters/config"
	_ "github.com/vladsoroka/gradle/internal/adapters/fs"
	_ "github.com/vladsoroka/gradle/internal/adapters/history"
	_ "github.com/vladsoroka/gradle/internal/adapters/implhash"
	_ "github.com/vladsoroka/gradle/internal/adapters/logger"
	_ "github.com/vladsoroka/gradle/internal/adapters/shell"
	_ "github.com/vladsoroka/gradle/internal/adapters/telemetry"
	_ "github.com/vladsoroka/gradle/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/vladsoroka/gradle/internal/app"
	_ "github.com/vladsoroka/gradle/internal/engine/artifact"
	_ "github.com/vladsoroka/gradle/internal/engine/scheduler"
)
