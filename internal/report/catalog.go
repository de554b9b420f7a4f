package report

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/soslens/soslens/internal/model"
)

// Catalog discovers report directories under the reports root and derives
// their metadata, short-circuiting through the cache when a directory's
// modification time is unchanged since the last scan.
type Catalog struct {
	root  string
	store Store
	log   zerolog.Logger
}

// NewCatalog builds a Catalog. When refresh is set the persisted cache is
// discarded immediately, guaranteeing a full recompute on the first scan.
func NewCatalog(root string, store Store, refresh bool, log zerolog.Logger) *Catalog {
	if refresh {
		if err := store.Clear(); err != nil {
			log.Warn().Err(err).Msg("could not clear report cache")
		}
	}
	return &Catalog{root: root, store: store, log: log}
}

// Scan lists the report root's immediate subdirectories and returns one
// entry per report, in directory order. Alias symlinks created by earlier
// scans are skipped so a report is never counted twice. The updated cache
// is persisted best-effort after every scan; a persistence failure is
// logged and otherwise ignored.
func (c *Catalog) Scan() []model.ReportEntry {
	entries := []model.ReportEntry{}

	dirents, err := os.ReadDir(c.root)
	if err != nil {
		c.log.Warn().Err(err).Str("root", c.root).Msg("cannot read reports directory")
		return entries
	}

	cached := c.store.Load()
	next := NewRecord()

	for _, de := range dirents {
		// DirEntry types come from lstat, so symlinks (including our
		// own aliases) never pass IsDir.
		if de.Type()&fs.ModeSymlink != 0 || !de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		mtime := info.ModTime().UnixNano()
		path := filepath.Join(c.root, de.Name())

		var entry model.ReportEntry
		if prev, ok := cached.Reports[de.Name()]; ok && prev.MTimeUnixNano == mtime {
			entry = prev.Entry
		} else {
			alias := EnsureAlias(c.root, path, c.log)
			entry = model.ReportEntry{
				ReportID:     alias.ID,
				ReportName:   de.Name(),
				Hostname:     ExtractHostname(path),
				SerialNumber: ExtractSerialNumber(path),
				UUID:         ExtractUUID(path),
				CreationDate: ExtractCreationDate(path),
			}
		}

		next.Reports[de.Name()] = CachedReport{MTimeUnixNano: mtime, Entry: entry}
		entries = append(entries, entry)
	}

	if err := c.store.Save(next); err != nil {
		c.log.Warn().Err(err).Msg("could not persist report cache")
	}
	return entries
}
