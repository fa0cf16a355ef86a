package domain

import (
	"maps"
	"sort"
)

// FileCollectionSpec describes a named set of files relative to the build
// root. Paths may contain glob patterns; Ignores are matched against base
// names during directory walks.
type FileCollectionSpec struct {
	Paths   []string `yaml:"paths"`
	Ignores []string `yaml:"ignores"`
}

// Task represents a unit of build work: a command with declared input and
// output file properties. It uses InternedString for fields that are
// frequently repeated to save memory.
type Task struct {
	Name       InternedString
	Type       string
	Command    []string
	WorkingDir InternedString

	// Environment holds user-defined environment overrides for the task
	// body. Each entry also participates in the task's input state as an
	// "env.<NAME>" input property.
	Environment map[string]string

	// Properties are scalar (non-file) inputs, keyed by property name.
	Properties map[string]string

	// Inputs and Outputs map property names to file collections.
	Inputs  map[string]FileCollectionSpec
	Outputs map[string]FileCollectionSpec

	// Implementation lists the files that make up the task's implementation
	// (scripts, tool wrappers). Their content is part of the implementation
	// hash, not of the input snapshots.
	Implementation []string

	Dependencies []InternedString
}

// InputProperties returns the scalar input properties of the task, with
// environment overrides folded in under "env.<NAME>" keys. The returned map
// is a fresh copy.
func (t *Task) InputProperties() map[string]string {
	props := make(map[string]string, len(t.Properties)+len(t.Environment))
	maps.Copy(props, t.Properties)
	for k, v := range t.Environment {
		props["env."+k] = v
	}
	return props
}

// InputPropertyNames returns the sorted names of the task's file input
// properties.
func (t *Task) InputPropertyNames() []string {
	return sortedSpecKeys(t.Inputs)
}

// OutputPropertyNames returns the sorted names of the task's file output
// properties.
func (t *Task) OutputPropertyNames() []string {
	return sortedSpecKeys(t.Outputs)
}

func sortedSpecKeys(m map[string]FileCollectionSpec) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
