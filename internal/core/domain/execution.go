package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CacheKey is a deterministic fingerprint of a task's input state:
// implementation hash, scalar input property hashes and input file snapshot
// hashes. Equal keys imply equal input states; output state never
// contributes.
type CacheKey string

// ExecutionRecord is a persisted fact about one run of a task. It is the
// baseline the next build compares against. Immutable once committed to the
// history store.
type ExecutionRecord struct {
	TaskName            string              `json:"task_name"`
	TaskType            string              `json:"task_type,omitzero"`
	ImplementationHash  string              `json:"implementation_hash,omitzero"`
	InputPropertyHashes map[string]string   `json:"input_property_hashes,omitzero"`
	InputFileSnapshots  map[string]Snapshot `json:"input_file_snapshots,omitzero"`
	OutputFileSnapshots map[string]Snapshot `json:"output_file_snapshots,omitzero"`
	DiscoveredInputs    Snapshot            `json:"discovered_inputs,omitzero"`
	CacheKey            CacheKey            `json:"cache_key,omitzero"`
	BuildID             string              `json:"build_id,omitzero"`
	Timestamp           time.Time           `json:"timestamp,omitzero"`
}

// ComputeCacheKey derives the cache key from the record's non-output fields.
// The derivation is independent of map enumeration order and of whether a
// previous execution exists.
func (e *ExecutionRecord) ComputeCacheKey() CacheKey {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(e.ImplementationHash)
	_, _ = hasher.Write([]byte{0})

	for _, name := range sortedStringKeys(e.InputPropertyHashes) {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(e.InputPropertyHashes[name])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	names := make([]string, 0, len(e.InputFileSnapshots))
	for name := range e.InputFileSnapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})
		snapshot := e.InputFileSnapshots[name]
		for _, path := range snapshot.Paths() {
			fp := snapshot[path]
			_, _ = hasher.WriteString(path)
			_, _ = hasher.Write([]byte{0})
			_, _ = hasher.WriteString(fp.Hash)
			_, _ = hasher.Write([]byte{byte(fp.Type), 0})
		}
		_, _ = hasher.Write([]byte{0})
	}

	return CacheKey(fmt.Sprintf("%016x", hasher.Sum64()))
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
