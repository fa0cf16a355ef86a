// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the task's command with the given extra environment.
// The final environment merges, from low to high priority:
//  1. os.Environ()
//  2. env (per-invocation variables from the scheduler)
//  3. task.Environment (task-declared overrides)
//
// Command output streams to the telemetry vertex attached to ctx when one is
// present, otherwise line by line to the logger.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	args := task.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Env = resolveEnvironment(os.Environ(), env, task.Environment)
	if task.WorkingDir.String() != "" {
		cmd.Dir = task.WorkingDir.String()
	}
	cmd.Stdout, cmd.Stderr = e.outputs(ctx)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "task", task.Name.String())
		return zerr.With(wrapped, "exit_code", exitCode)
	}
	return nil
}

func (e *Executor) outputs(ctx context.Context) (stdout, stderr io.Writer) {
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		return vertex.Stdout(), vertex.Stderr()
	}
	return &logWriter{logger: e.logger, level: domain.LogLevelInfo},
		&logWriter{logger: e.logger, level: domain.LogLevelError}
}

// logWriter splits a command's output stream into lines for the logger. Write
// may deliver partial lines; for build output the occasional split line is
// acceptable.
type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	for _, line := range strings.Split(msg, "\n") {
		if w.level == domain.LogLevelError {
			w.logger.Error(zerr.New(line))
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, extraEnv []string, taskEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(extraEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for _, entry := range extraEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
