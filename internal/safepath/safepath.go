// Package safepath proves that every path handed to the filesystem stays
// inside the configured reports root. All other packages must resolve
// caller-supplied paths through a Resolver before any read, list, or glob.
package safepath

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/soslens/soslens/internal/model"
)

// Resolver validates report-relative paths against a fixed root.
type Resolver struct {
	root string
}

// NewResolver builds a Resolver for the given root directory. The root is
// normalized to an absolute path once; requests never mutate it.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Resolver{root: abs}, nil
}

// Root returns the absolute reports root.
func (r *Resolver) Root() string { return r.root }

// Resolve joins the report identifier and the caller-supplied relative path
// under the root and returns the absolute target, or a structured error if
// the target escapes the root or does not exist.
//
// The containment check runs on the fully normalized absolute path, and a
// second time after symlink evaluation, so both "../" traversal and links
// pointing outside the root fail closed. Callers must re-resolve on every
// operation; resolved paths are never cached.
func (r *Resolver) Resolve(reportID, rel string) (string, *model.OpError) {
	display := reportID
	if rel != "" {
		display = reportID + "/" + rel
	}

	abs, err := filepath.Abs(filepath.Join(r.root, reportID, rel))
	if err != nil {
		return "", model.Errf(model.KindReadFailure, "path validation failed for %s: %v", display, err)
	}
	if !within(r.root, abs) {
		return "", model.Errf(model.KindConfinement, "path access denied: %s is outside allowed directory", display)
	}

	// EvalSymlinks also confirms the target exists on disk.
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", model.Errf(model.KindNotFound, "path not found: %s", display)
		}
		return "", model.Errf(model.KindReadFailure, "path validation failed for %s: %v", display, err)
	}
	realRoot, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return "", model.Errf(model.KindReadFailure, "path validation failed for %s: %v", display, err)
	}
	if !within(realRoot, real) {
		return "", model.Errf(model.KindConfinement, "path access denied: %s is outside allowed directory", display)
	}

	return abs, nil
}

// within reports whether p equals root or lies under it. The comparison
// requires a path-separator boundary so ".../root-evil" never matches
// ".../root".
func within(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+string(os.PathSeparator))
}
