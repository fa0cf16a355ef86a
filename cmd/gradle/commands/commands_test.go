package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladsoroka/gradle/cmd/gradle/commands"
	"github.com/vladsoroka/gradle/internal/adapters/fs"
	"github.com/vladsoroka/gradle/internal/adapters/history"
	"github.com/vladsoroka/gradle/internal/adapters/implhash"
	"github.com/vladsoroka/gradle/internal/adapters/telemetry"
	"github.com/vladsoroka/gradle/internal/app"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports/mocks"
	"github.com/vladsoroka/gradle/internal/engine/artifact"
	"github.com/vladsoroka/gradle/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	cli      *commands.CLI
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	fileWatcher := mocks.NewMockWatcher(ctrl)

	root := t.TempDir()
	histories := history.NewStore(root)
	states := artifact.NewRepository(
		histories,
		fs.NewSnapshotter(root, fs.NewWalker()),
		implhash.NewHasher(root),
		fs.NewCollectionFactory(),
	)
	factory := func(graph *domain.Graph) (*scheduler.Scheduler, error) {
		return scheduler.NewScheduler(graph, states, executor, telemetry.NewNoOp(), logger)
	}

	return &cliFixture{
		loader:   loader,
		executor: executor,
		cli:      commands.New(app.New(loader, factory, fileWatcher, histories, logger)),
	}
}

func taskGraph(t *testing.T, names ...string) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, name := range names {
		require.NoError(t, g.AddTask(&domain.Task{
			Name:    domain.NewInternedString(name),
			Type:    "Exec",
			Command: []string{"true"},
		}))
	}
	return g
}

func TestRunCommand(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load(".").Return(taskGraph(t, "build"), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	f.cli.SetArgs([]string{"run", "build"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommand_NoArgsRunsWholeGraph(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load(".").Return(taskGraph(t, "build", "test"), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	f.cli.SetArgs([]string{"run"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommand_UnknownTarget(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load(".").Return(taskGraph(t, "build"), nil)

	f.cli.SetArgs([]string{"run", "deploy"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestConfigHook(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load(".").Return(taskGraph(t), nil)

	var configured string
	f.cli.SetConfigHook(func(path string) {
		configured = path
	})

	f.cli.SetArgs([]string{"run", "--config", "ci.yaml"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, "ci.yaml", configured)
}
