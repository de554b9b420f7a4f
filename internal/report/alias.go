package report

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// AliasResult is the explicit outcome of alias creation, so callers can
// observe and test the fallback path instead of inferring it from side
// effects.
type AliasResult struct {
	// ID is the name callers should use for the report: the derived
	// identifier when the alias is usable, the raw directory name
	// otherwise.
	ID string

	// Created reports that this call created a new symlink.
	Created bool

	// Fallback reports that the alias was unavailable and ID is the raw
	// directory name.
	Fallback bool
}

// EnsureAlias makes the derived identifier addressable as a relative
// symlink inside root pointing at the report directory. Creation is
// best-effort: on filesystems that forbid symlinks (read-only mounts,
// CIFS) the raw directory name is returned so callers still have
// something referable, and the failure is logged, never fatal.
//
// Identifier collisions coexist: the first report to claim an identifier
// keeps it, and a later report whose identifier is already taken falls
// back to its raw directory name.
func EnsureAlias(root, reportPath string, log zerolog.Logger) AliasResult {
	id := ReportID(reportPath)
	target := filepath.Base(reportPath)
	aliasPath := filepath.Join(root, id)

	if existing, err := os.Readlink(aliasPath); err == nil {
		if existing == target {
			return AliasResult{ID: id}
		}
		log.Debug().Str("report", target).Str("alias", id).
			Msg("identifier already claimed by another report, using directory name")
		return AliasResult{ID: target, Fallback: true}
	}
	if _, err := os.Lstat(aliasPath); err == nil {
		// A regular file or directory already occupies the name.
		return AliasResult{ID: target, Fallback: true}
	}

	if err := os.Symlink(target, aliasPath); err != nil {
		log.Warn().Err(err).Str("report", target).Str("alias", id).
			Msg("could not create alias symlink, using directory name")
		return AliasResult{ID: target, Fallback: true}
	}
	return AliasResult{ID: id, Created: true}
}
