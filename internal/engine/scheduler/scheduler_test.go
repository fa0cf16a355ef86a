package scheduler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladsoroka/gradle/internal/adapters/fs"
	"github.com/vladsoroka/gradle/internal/adapters/history"
	"github.com/vladsoroka/gradle/internal/adapters/implhash"
	"github.com/vladsoroka/gradle/internal/adapters/telemetry"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports/mocks"
	"github.com/vladsoroka/gradle/internal/engine/artifact"
	"github.com/vladsoroka/gradle/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type buildFixture struct {
	t        *testing.T
	root     string
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger

	mu       sync.Mutex
	executed []string
}

func newBuildFixture(t *testing.T) *buildFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return &buildFixture{
		t:        t,
		root:     t.TempDir(),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   logger,
	}
}

func (f *buildFixture) write(rel, content string) {
	f.t.Helper()
	full := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(f.t, os.WriteFile(full, []byte(content), 0o600))
}

// recordExecution is a DoAndReturn body that notes the task and simulates
// the task body by writing its declared output.
func (f *buildFixture) recordExecution(_ context.Context, task *domain.Task, _ []string) error {
	f.mu.Lock()
	f.executed = append(f.executed, task.Name.String())
	f.mu.Unlock()

	for _, spec := range task.Outputs {
		for _, p := range spec.Paths {
			f.write(p, "output of "+task.Name.String())
		}
	}
	return nil
}

func (f *buildFixture) executedTasks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.executed...)
}

// scheduler builds a fresh Scheduler over the graph, with a new history
// store per call as a new build invocation would have.
func (f *buildFixture) scheduler(graph *domain.Graph) *scheduler.Scheduler {
	f.t.Helper()
	states := artifact.NewRepository(
		history.NewStore(f.root),
		fs.NewSnapshotter(f.root, fs.NewWalker()),
		implhash.NewHasher(f.root),
		fs.NewCollectionFactory(),
	)
	s, err := scheduler.NewScheduler(graph, states, f.executor, telemetry.NewNoOp(), f.logger)
	require.NoError(f.t, err)
	return s
}

func task(name string, deps ...string) *domain.Task {
	t := &domain.Task{
		Name:    domain.NewInternedString(name),
		Type:    "Exec",
		Command: []string{"true"},
		Inputs: map[string]domain.FileCollectionSpec{
			"sources": {Paths: []string{"src/" + name}},
		},
		Outputs: map[string]domain.FileCollectionSpec{
			"out": {Paths: []string{"out/" + name}},
		},
	}
	for _, dep := range deps {
		t.Dependencies = append(t.Dependencies, domain.NewInternedString(dep))
	}
	return t
}

func graphOf(t *testing.T, tasks ...*domain.Task) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, task := range tasks {
		require.NoError(t, g.AddTask(task))
	}
	return g
}

func TestScheduler_ExecutesInDependencyOrder(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")
	f.write("src/app/b.go", "app")

	graph := graphOf(t, task("lib"), task("app", "lib"))
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(f.recordExecution).Times(2)

	s := f.scheduler(graph)
	require.NoError(t, s.Run(context.Background(), scheduler.Options{Parallelism: 2}))

	assert.Equal(t, []string{"lib", "app"}, f.executedTasks())
	assert.Equal(t, scheduler.StatusExecuted, s.Status(domain.NewInternedString("lib")))
	assert.Equal(t, scheduler.StatusExecuted, s.Status(domain.NewInternedString("app")))
}

func TestScheduler_SkipsUpToDateTasks(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")

	graph := graphOf(t, task("lib"))
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(f.recordExecution).Times(1)

	require.NoError(t, f.scheduler(graph).Run(context.Background(), scheduler.Options{Parallelism: 1}))

	// Second invocation: nothing changed, the executor must not run.
	s := f.scheduler(graph)
	require.NoError(t, s.Run(context.Background(), scheduler.Options{Parallelism: 1}))
	assert.Equal(t, scheduler.StatusUpToDate, s.Status(domain.NewInternedString("lib")))
}

func TestScheduler_ForceRunsUpToDateTasks(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")

	graph := graphOf(t, task("lib"))
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(f.recordExecution).Times(2)

	require.NoError(t, f.scheduler(graph).Run(context.Background(), scheduler.Options{Parallelism: 1}))
	require.NoError(t, f.scheduler(graph).Run(context.Background(), scheduler.Options{Parallelism: 1, Force: true}))

	assert.Equal(t, []string{"lib", "lib"}, f.executedTasks())
}

func TestScheduler_TargetsRestrictToReachableSubgraph(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")
	f.write("src/app/b.go", "app")
	f.write("src/docs/c.md", "docs")

	graph := graphOf(t, task("lib"), task("app", "lib"), task("docs"))
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(f.recordExecution).Times(2)

	s := f.scheduler(graph)
	require.NoError(t, s.Run(context.Background(), scheduler.Options{Targets: []string{"app"}, Parallelism: 2}))

	assert.ElementsMatch(t, []string{"lib", "app"}, f.executedTasks())
	assert.Equal(t, scheduler.StatusPending, s.Status(domain.NewInternedString("docs")))
}

func TestScheduler_UnknownTargetFails(t *testing.T) {
	f := newBuildFixture(t)
	graph := graphOf(t, task("lib"))

	err := f.scheduler(graph).Run(context.Background(), scheduler.Options{Targets: []string{"nope"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestScheduler_FailureBlocksDependents(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")
	f.write("src/app/b.go", "app")

	graph := graphOf(t, task("lib"), task("app", "lib"))
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("compiler crashed")).Times(1)

	s := f.scheduler(graph)
	err := s.Run(context.Background(), scheduler.Options{Parallelism: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task execution failed")

	assert.Equal(t, scheduler.StatusFailed, s.Status(domain.NewInternedString("lib")))
	assert.Equal(t, scheduler.StatusPending, s.Status(domain.NewInternedString("app")))
}

func TestScheduler_HandsIncrementalViewToTaskBody(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "v1")
	graph := graphOf(t, task("lib"))

	var envs [][]string
	var envMu sync.Mutex
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task *domain.Task, env []string) error {
			envMu.Lock()
			envs = append(envs, env)
			envMu.Unlock()
			return f.recordExecution(ctx, task, env)
		}).Times(2)

	// First build: no history, full rebuild view.
	require.NoError(t, f.scheduler(graph).Run(context.Background(), scheduler.Options{Parallelism: 1}))

	// Edit one file: incremental view naming it.
	f.write("src/lib/a.go", "v2")
	require.NoError(t, f.scheduler(graph).Run(context.Background(), scheduler.Options{Parallelism: 1}))

	require.Len(t, envs, 2)
	assert.Contains(t, envs[0], scheduler.EnvIncremental+"=false")
	assert.Contains(t, envs[1], scheduler.EnvIncremental+"=true")

	var changed string
	for _, kv := range envs[1] {
		if v, ok := strings.CutPrefix(kv, scheduler.EnvChangedFiles+"="); ok {
			changed = v
		}
	}
	assert.Equal(t, filepath.Join("src", "lib", "a.go"), changed)
}

func TestScheduler_ContextCancellation(t *testing.T) {
	f := newBuildFixture(t)
	f.write("src/lib/a.go", "lib")
	graph := graphOf(t, task("lib"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.scheduler(graph).Run(ctx, scheduler.Options{Parallelism: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
