// Package config provides the build configuration loader.
package config

import (
	"os"
	"path/filepath"

	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Graph, error) {
	filename := l.Filename
	if filename == "" {
		filename = domain.ConfigFileName
	}
	return Load(filepath.Join(cwd, filename))
}

// BuildFile represents the structure of the build.yaml configuration file.
type BuildFile struct {
	Version string             `yaml:"version"`
	Tasks   map[string]TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Type           string                   `yaml:"type"`
	Cmd            []string                 `yaml:"cmd"`
	WorkingDir     string                   `yaml:"workingDir"`
	Inputs         map[string]CollectionDTO `yaml:"inputs"`
	Outputs        map[string]CollectionDTO `yaml:"outputs"`
	Properties     map[string]string        `yaml:"properties"`
	Environment    map[string]string        `yaml:"environment"`
	Implementation []string                 `yaml:"implementation"`
	DependsOn      []string                 `yaml:"dependsOn"`
}

// CollectionDTO represents one named file collection. It accepts either the
// full mapping form (paths plus ignores) or a bare sequence of paths.
type CollectionDTO struct {
	Paths   []string `yaml:"paths"`
	Ignores []string `yaml:"ignores"`
}

// UnmarshalYAML accepts both `[src, pkg]` and `{paths: [src], ignores: [gen]}`.
func (c *CollectionDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&c.Paths)
	}

	type plain CollectionDTO
	return value.Decode((*plain)(c))
}

// Load reads a configuration file from the given path and returns a domain.Graph.
func Load(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var buildFile BuildFile
	if err := yaml.Unmarshal(data, &buildFile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	g := domain.NewGraph()
	taskNames := make(map[string]bool)

	// First pass: Collect all task names to verify dependencies later
	for name := range buildFile.Tasks {
		taskNames[name] = true
	}

	// Second pass: Create tasks and add to graph
	for name, dto := range buildFile.Tasks {
		// Validate reserved task names
		if name == "all" {
			return nil, zerr.With(zerr.New("task name 'all' is reserved"), "task_name", name)
		}

		// Validate dependencies exist
		for _, dep := range dto.DependsOn {
			if !taskNames[dep] {
				return nil, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "failed to resolve task dependency"), "missing_dependency", dep)
			}
		}

		taskType := dto.Type
		if taskType == "" {
			taskType = "Exec"
		}

		task := &domain.Task{
			Name:           domain.NewInternedString(name),
			Type:           taskType,
			Command:        dto.Cmd,
			WorkingDir:     domain.NewInternedString(dto.WorkingDir),
			Inputs:         toSpecs(dto.Inputs),
			Outputs:        toSpecs(dto.Outputs),
			Properties:     dto.Properties,
			Environment:    dto.Environment,
			Implementation: dto.Implementation,
			Dependencies:   domain.NewInternedStrings(dto.DependsOn),
		}

		if err := g.AddTask(task); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func toSpecs(collections map[string]CollectionDTO) map[string]domain.FileCollectionSpec {
	if len(collections) == 0 {
		return nil
	}
	specs := make(map[string]domain.FileCollectionSpec, len(collections))
	for name, dto := range collections {
		specs[name] = domain.FileCollectionSpec{
			Paths:   dto.Paths,
			Ignores: dto.Ignores,
		}
	}
	return specs
}
