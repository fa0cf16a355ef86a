package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Snapshotter = (*Snapshotter)(nil)

// Snapshotter produces content-addressed snapshots of file collections
// rooted at the build directory. Paths that do not exist are simply absent
// from the result; a task declared over a not-yet-created directory is a
// normal condition.
type Snapshotter struct {
	root   string
	walker *Walker
}

// NewSnapshotter creates a new Snapshotter over the given build root.
func NewSnapshotter(root string, walker *Walker) *Snapshotter {
	return &Snapshotter{
		root:   filepath.Clean(root),
		walker: walker,
	}
}

// Snapshot records the current state of the given file collection. The
// result is keyed by path relative to the build root, so records stay
// comparable regardless of where the workspace lives.
func (s *Snapshotter) Snapshot(spec domain.FileCollectionSpec) (domain.Snapshot, error) {
	var files []string
	for _, p := range spec.Paths {
		expanded, err := s.expand(filepath.Join(s.root, p), spec.Ignores)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	return s.fingerprintAll(files)
}

// SnapshotPaths records the current state of an explicit set of paths,
// resolved against the build root when relative.
func (s *Snapshotter) SnapshotPaths(paths []string) (domain.Snapshot, error) {
	var files []string
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(s.root, p)
		}
		expanded, err := s.expand(full, nil)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	return s.fingerprintAll(files)
}

// expand resolves one path to the regular files it covers: a directory is
// walked, a plain file stands for itself, and a missing path is retried as a
// glob pattern. A path that matches nothing contributes nothing.
func (s *Snapshotter) expand(path string, ignores []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
		}
		matches, globErr := filepath.Glob(path)
		if globErr != nil || len(matches) == 0 {
			return nil, nil
		}
		var files []string
		for _, match := range matches {
			expanded, err := s.expand(match, ignores)
			if err != nil {
				return nil, err
			}
			files = append(files, expanded...)
		}
		return files, nil
	}

	if info.IsDir() {
		var files []string
		for file := range s.walker.WalkFiles(path, ignores) {
			files = append(files, file)
		}
		return files, nil
	}
	return []string{path}, nil
}

// fingerprintAll hashes the files with bounded parallelism and assembles an
// order-independent snapshot keyed by root-relative path.
func (s *Snapshotter) fingerprintAll(files []string) (domain.Snapshot, error) {
	sort.Strings(files)

	snapshot := make(domain.Snapshot, len(files))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			fp, err := s.fingerprint(file)
			if err != nil {
				return err
			}
			key := file
			if rel, err := filepath.Rel(s.root, file); err == nil {
				key = rel
			}
			mu.Lock()
			snapshot[key] = fp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Snapshotter) fingerprint(path string) (domain.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Fingerprint{}, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if info.IsDir() {
		return domain.Fingerprint{Type: domain.TypeDirectory}, nil
	}

	hash, err := s.hashContent(path)
	if err != nil {
		return domain.Fingerprint{}, err
	}
	return domain.Fingerprint{
		Hash: hash,
		Type: domain.TypeRegularFile,
		Size: info.Size(),
	}, nil
}

func (s *Snapshotter) hashContent(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
