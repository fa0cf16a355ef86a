// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of tasks.
type Graph struct {
	tasks          map[InternedString]Task
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[InternedString]Task),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "failed to add task"), "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Task returns the task with the given name.
func (g *Graph) Task(name InternedString) (Task, error) {
	t, ok := g.tasks[name]
	if !ok {
		return Task{}, zerr.With(zerr.Wrap(ErrTaskNotFound, "failed to look up task"), "task_name", name.String())
	}
	return t, nil
}

// Validate checks for cycles in the graph using a topological sort.
// It populates the executionOrder slice if successful.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "failed to validate graph"), "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Visit roots in sorted name order so the execution order, and with it
	// every downstream diagnostic, is reproducible across runs.
	names := make([]string, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name.String())
	}
	sort.Strings(names)

	for _, name := range names {
		interned := NewInternedString(name)
		if visited[interned] == 0 {
			if err := visit(interned); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "failed to validate graph"), "cycle", cyclePath)
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Reachable returns the set of task names reachable from the given targets
// through dependency edges, targets included. It returns an error if any
// target is unknown.
func (g *Graph) Reachable(targets []InternedString) (map[InternedString]bool, error) {
	reachable := make(map[InternedString]bool)

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		if reachable[name] {
			return nil
		}
		task, ok := g.tasks[name]
		if !ok {
			return zerr.With(zerr.Wrap(ErrTaskNotFound, "failed to resolve target"), "task_name", name.String())
		}
		reachable[name] = true
		for _, dep := range task.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, target := range targets {
		if err := visit(target); err != nil {
			return nil, err
		}
	}
	return reachable, nil
}

// Dependents returns the names of tasks that directly depend on the given
// task, sorted by name. It does not require prior validation.
func (g *Graph) Dependents(name InternedString) []InternedString {
	var dependents []InternedString
	for _, task := range g.tasks {
		for _, dep := range task.Dependencies {
			if dep == name {
				dependents = append(dependents, task.Name)
				break
			}
		}
	}
	sort.Slice(dependents, func(i, j int) bool {
		return dependents[i].String() < dependents[j].String()
	})
	return dependents
}
