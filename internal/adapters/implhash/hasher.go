// Package implhash derives a stable hash of a task's implementation: its
// type, its command line, and the content of any declared implementation
// files such as scripts the command invokes.
package implhash

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/vladsoroka/gradle/internal/core/domain"
	"github.com/vladsoroka/gradle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImplementationHasher = (*Hasher)(nil)

// Hasher implements ports.ImplementationHasher.
type Hasher struct {
	root string
}

// NewHasher creates an implementation hasher resolving file paths against
// the given build root.
func NewHasher(root string) *Hasher {
	return &Hasher{root: root}
}

// HashImplementation folds the task type, command words, and implementation
// file contents into a single hash. A missing implementation file hashes as
// absent rather than failing, so deleting a script registers as a change.
func (h *Hasher) HashImplementation(task *domain.Task) (string, error) {
	hasher := xxhash.New()

	writeField(hasher, task.Type)
	for _, word := range task.Command {
		writeField(hasher, word)
	}

	for _, path := range task.Implementation {
		writeField(hasher, path)
		if err := h.hashFileContent(hasher, path); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashFileContent(hasher *xxhash.Digest, path string) error {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(h.root, path)
	}

	f, err := os.Open(full) //nolint:gosec // Path comes from the task declaration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeField(hasher, "absent")
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to open implementation file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(hasher, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash implementation file"), "path", path)
	}
	return nil
}

// writeField appends a length-framed field so adjacent values cannot
// collide into the same digest.
func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(fmt.Sprintf("%d:", len(s)))
	_, _ = hasher.WriteString(s)
}
