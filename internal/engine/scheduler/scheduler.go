// Package scheduler executes the task graph, consulting each task's
// artifact state session to skip work whose outputs are already up to date.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"github.com/vladsoroka/gradle/internal/engine/artifact"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusExecuted indicates the task ran and finished successfully.
	StatusExecuted TaskStatus = "Executed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusUpToDate indicates the task was skipped because its outputs were current.
	StatusUpToDate TaskStatus = "UpToDate"
)

// Environment variables handed to task bodies describing the input view.
const (
	// EnvIncremental is "true" when only the changed inputs need reprocessing.
	EnvIncremental = "BUILD_INCREMENTAL"
	// EnvChangedFiles lists added and modified input files, path-list separated.
	EnvChangedFiles = "BUILD_CHANGED_FILES"
	// EnvRemovedFiles lists input files deleted since the previous execution.
	EnvRemovedFiles = "BUILD_REMOVED_FILES"
)

// Options configures a single build invocation.
type Options struct {
	// Targets restricts the build to the named tasks and their dependencies.
	// Empty means the whole graph.
	Targets []string
	// Force executes every scheduled task even when its outputs are up to date.
	Force bool
	// Parallelism caps how many tasks run concurrently. Values below one
	// are treated as one.
	Parallelism int
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	graph     *domain.Graph
	states    *artifact.Repository
	executor  ports.Executor
	telemetry ports.Telemetry
	logger    ports.Logger

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler over a validated graph.
func NewScheduler(
	graph *domain.Graph,
	states *artifact.Repository,
	executor ports.Executor,
	telemetry ports.Telemetry,
	logger ports.Logger,
) (*Scheduler, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		graph:      graph,
		states:     states,
		executor:   executor,
		telemetry:  telemetry,
		logger:     logger,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
	for task := range graph.Walk() {
		s.taskStatus[task.Name] = StatusPending
	}
	return s, nil
}

// Status returns the last observed status of the named task.
func (s *Scheduler) Status(name domain.InternedString) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name]
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Run executes the scheduled subset of the graph.
func (s *Scheduler) Run(ctx context.Context, opts Options) error {
	state, err := s.newRunState(ctx, opts)
	if err != nil {
		return err
	}

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}
	return state.errs
}

type result struct {
	task domain.InternedString
	err  error
}

type schedulerRunState struct {
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	force       bool
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, opts Options) (*schedulerRunState, error) {
	scheduled := make(map[domain.InternedString]bool, s.graph.TaskCount())
	if len(opts.Targets) == 0 {
		for task := range s.graph.Walk() {
			scheduled[task.Name] = true
		}
	} else {
		targets := make([]domain.InternedString, 0, len(opts.Targets))
		for _, t := range opts.Targets {
			targets = append(targets, domain.NewInternedString(t))
		}
		var err error
		scheduled, err = s.graph.Reachable(targets)
		if err != nil {
			return nil, err
		}
	}

	inDegree := make(map[domain.InternedString]int, len(scheduled))
	tasks := make(map[domain.InternedString]domain.Task, len(scheduled))

	for task := range s.graph.Walk() {
		if !scheduled[task.Name] {
			continue
		}
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
	}

	var ready []domain.InternedString
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	return &schedulerRunState{
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		force:       opts.Force,
		parallelism: parallelism,
		s:           s,
	}, nil
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		go func(t domain.Task) {
			state.resultsCh <- result{task: t.Name, err: state.processTask(state.ctx, &t)}
		}(state.tasks[taskName])
	}
}

// processTask drives one task through its artifact state session: check
// whether it is up to date, execute it if not, and record the outcome.
func (state *schedulerRunState) processTask(ctx context.Context, task *domain.Task) error {
	ctx, vertex := state.s.telemetry.Record(ctx, task.Name.String())

	taskState, err := state.s.states.StateFor(task)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	defer taskState.Finished()

	if !state.force {
		var reasons []string
		upToDate, err := taskState.IsUpToDate(&reasons)
		if err != nil {
			vertex.Complete(err)
			return err
		}
		if upToDate {
			state.s.updateStatus(task.Name, StatusUpToDate)
			state.s.logger.Info(fmt.Sprintf("Task '%s' is up to date.", task.Name.String()))
			vertex.Cached()
			vertex.Complete(nil)
			return nil
		}
		for _, reason := range reasons {
			vertex.Log(domain.LogLevelInfo, reason)
		}
	}

	changes, err := taskState.InputChanges()
	if err != nil {
		vertex.Complete(err)
		return err
	}

	cacheKey, err := taskState.CalculateCacheKey()
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Log(domain.LogLevelDebug, fmt.Sprintf("cache key %s", cacheKey))

	taskState.BeforeTask()

	if err := state.s.executor.Execute(ctx, task, incrementalEnv(changes, state.force)); err != nil {
		vertex.Complete(err)
		return err
	}

	if err := taskState.AfterTask(); err != nil {
		vertex.Complete(err)
		return err
	}

	vertex.Complete(nil)
	return nil
}

// incrementalEnv renders the input view as environment variables for the
// task body. A forced build always presents the full-rebuild view.
func incrementalEnv(changes *artifact.InputChanges, force bool) []string {
	incremental := changes.Incremental() && !force

	var changed, removed []string
	if incremental {
		for c := range changes.OutOfDate() {
			changed = append(changed, c.Path)
		}
		for c := range changes.Removed() {
			removed = append(removed, c.Path)
		}
	}

	return []string{
		fmt.Sprintf("%s=%t", EnvIncremental, incremental),
		fmt.Sprintf("%s=%s", EnvChangedFiles, strings.Join(changed, ":")),
		fmt.Sprintf("%s=%s", EnvRemovedFiles, strings.Join(removed, ":")),
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "task execution failed"), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	if state.s.Status(res.task) != StatusUpToDate {
		state.s.updateStatus(res.task, StatusExecuted)
	}
	for _, dep := range state.s.graph.Dependents(res.task) {
		if _, scheduled := state.inDegree[dep]; !scheduled {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
