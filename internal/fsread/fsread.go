// Package fsread provides the bounded read primitives: directory
// enumeration with type classification, shallow and recursive filename
// matching, and lenient whole-file reads. Callers must pass only paths
// already approved by safepath.
package fsread

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soslens/soslens/internal/model"
)

// replacementChar substitutes invalid byte sequences under the
// replace-invalid-sequences decoding policy.
const replacementChar = "�"

// ValidatePattern rejects the recursive-glob metacharacter outright. This
// is a security policy, not a missing feature: "**" anywhere in a pattern
// fails, it is never downgraded to a literal or a single-level glob.
func ValidatePattern(pattern string) *model.OpError {
	if strings.Contains(pattern, "**") {
		return model.Errf(model.KindUnsupportedPattern,
			"globstar (**) patterns are not supported for security reasons: %s", pattern)
	}
	if _, err := filepath.Match(strings.ToLower(pattern), ""); err != nil {
		return model.Errf(model.KindUnsupportedPattern, "invalid glob pattern: %s", pattern)
	}
	return nil
}

// matchName matches a filename against a glob, case-insensitively.
func matchName(pattern, name string) bool {
	ok, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}

// classify maps a file mode to an entry type. Symlinks win over their
// target type.
func classify(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return model.TypeSymlink
	case mode.IsDir():
		return model.TypeDir
	default:
		return model.TypeFile
	}
}

// ListEntries enumerates the immediate children of dir with type
// classification, directories sorted before files and alphabetically by raw
// name within each group.
func ListEntries(dir string) ([]model.DirItem, *model.OpError) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.Errf(model.KindReadFailure, "error reading directory: %v", err)
	}

	items := make([]model.DirItem, 0, len(dirents))
	for _, de := range dirents {
		typ := classify(de.Type())
		name := de.Name()
		switch typ {
		case model.TypeDir:
			name += "/"
		case model.TypeSymlink:
			if target, err := os.Readlink(filepath.Join(dir, de.Name())); err == nil {
				name += " -> " + target
			}
		}
		items = append(items, model.DirItem{Name: name, Type: typ, RawName: de.Name()})
	}

	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].Type == model.TypeDir, items[j].Type == model.TypeDir
		if di != dj {
			return di
		}
		return items[i].RawName < items[j].RawName
	})
	return items, nil
}

// MatchShallow matches the immediate children of dir against pattern,
// case-insensitively, stopping once budget matches are collected. Paths in
// the result are relative to reportRoot.
func MatchShallow(dir, pattern, reportRoot string, budget int) ([]model.Match, *model.OpError) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.Errf(model.KindReadFailure, "error reading directory: %v", err)
	}

	var matches []model.Match
	for _, de := range dirents {
		if len(matches) >= budget {
			break
		}
		if !matchName(pattern, de.Name()) {
			continue
		}
		rel, err := filepath.Rel(reportRoot, filepath.Join(dir, de.Name()))
		if err != nil {
			continue
		}
		matches = append(matches, model.Match{Path: rel, Type: classify(de.Type())})
	}
	sortMatches(matches)
	return matches, nil
}

// MatchRecursive matches every file and directory name under root against
// pattern, case-insensitively, stopping once budget matches are collected.
// The walk starts from an already gate-approved root and never follows
// symlinks, so it cannot wander back outside the reports root. Unreadable
// subtrees are skipped rather than failing the search.
func MatchRecursive(root, pattern, reportRoot string, budget int) ([]model.Match, *model.OpError) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	var matches []model.Match
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if matchName(pattern, d.Name()) {
			if rel, rerr := filepath.Rel(reportRoot, path); rerr == nil {
				matches = append(matches, model.Match{Path: rel, Type: classify(d.Type())})
			}
		}
		if len(matches) >= budget {
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return nil, model.Errf(model.KindReadFailure, "search error: %v", walkErr)
	}
	sortMatches(matches)
	return matches, nil
}

func sortMatches(matches []model.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := matches[i].Type == model.TypeDir, matches[j].Type == model.TypeDir
		if di != dj {
			return di
		}
		return matches[i].Path < matches[j].Path
	})
}

// ReadFileLenient reads a regular file's whole content in one pass under
// the replace-invalid-sequences policy: byte sequences that are not valid
// UTF-8 are replaced, never raised, so binary or mixed-encoding files
// cannot crash the read path. A vanished or unreadable file is still a
// real error.
func ReadFileLenient(path string) (string, *model.OpError) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", model.Errf(model.KindNotFound, "file not found: %s", path)
		}
		return "", model.Errf(model.KindReadFailure, "unable to read file: %v", err)
	}
	if info.IsDir() {
		return "", model.Errf(model.KindNotAFile, "path is not a file")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", model.Errf(model.KindReadFailure, "unable to read file: %v", err)
	}
	return strings.ToValidUTF8(string(raw), replacementChar), nil
}
