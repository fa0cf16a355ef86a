// Package app implements the application layer for gradle.
package app

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/vladsoroka/gradle/internal/adapters/watcher" //nolint:depguard // Debounce window shared with the watcher adapter
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"github.com/vladsoroka/gradle/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	newScheduler scheduler.Factory
	watcher      ports.Watcher
	history      ports.HistoryRepository
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	newScheduler scheduler.Factory,
	fileWatcher ports.Watcher,
	historyRepo ports.HistoryRepository,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		newScheduler: newScheduler,
		watcher:      fileWatcher,
		history:      historyRepo,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Force executes every scheduled task even when its outputs are up to date.
	Force bool
	// Watch keeps the process alive after the build and re-runs the targets
	// whenever workspace files change.
	Watch bool
	// Parallelism caps concurrent task execution. Zero means one worker per CPU.
	Parallelism int
}

// Run executes the build process for the specified targets. An empty target
// list builds the whole graph.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	if opts.Parallelism < 1 {
		opts.Parallelism = runtime.NumCPU()
	}

	if err := a.build(ctx, targetNames, opts); err != nil {
		if opts.Watch {
			// In watch mode a failed build is a state to recover from, not
			// a reason to exit.
			a.logger.Error(err)
		} else {
			return err
		}
	}

	if opts.Watch {
		return a.watch(ctx, targetNames, opts)
	}
	return nil
}

// build loads the configuration and drives one scheduler invocation over it.
// The configuration is re-read every time so watch mode picks up edits to the
// build file itself.
func (a *App) build(ctx context.Context, targetNames []string, opts RunOptions) error {
	graph, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	sched, err := a.newScheduler(graph)
	if err != nil {
		return err
	}

	if err := sched.Run(ctx, scheduler.Options{
		Targets:     targetNames,
		Force:       opts.Force,
		Parallelism: opts.Parallelism,
	}); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// watch re-runs the targets whenever workspace files change, until the
// context is canceled.
func (a *App) watch(ctx context.Context, targetNames []string, opts RunOptions) error {
	root, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve workspace root")
	}

	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	// A buffered trigger channel: a change arriving mid-build queues exactly
	// one follow-up build instead of one per event batch.
	rebuild := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(_ []string) {
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("Watching for file changes. Press Ctrl-C to stop.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rebuild:
			a.logger.Info("Change detected, rebuilding.")
			if err := a.build(ctx, targetNames, opts); err != nil {
				a.logger.Error(err)
			}
		}
	}
}

// Clean removes the on-disk execution history. The next build sees no
// history for any task and re-runs everything.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing execution history")
	if err := a.history.Clean(); err != nil {
		return zerr.Wrap(err, "failed to remove execution history")
	}
	return nil
}
