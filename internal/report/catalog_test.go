package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestCatalogScan(t *testing.T) {
	root := t.TempDir()
	mkIdentifiableReport(t, root, "sosreport-web01", "web01", "2025-12-09T14:30:00Z")
	mkIdentifiableReport(t, root, "sosreport-db01", "db01", "2025-12-10T08:00:00Z")
	// Stray regular file must be ignored.
	mustWrite(t, filepath.Join(root, "notes.txt"), "not a report")

	c := NewCatalog(root, NewMemStore(), false, zerolog.Nop())
	entries := c.Scan()
	if len(entries) != 2 {
		t.Fatalf("got %d entries: %+v", len(entries), entries)
	}

	byName := map[string]bool{}
	for _, e := range entries {
		byName[e.ReportName] = true
		if e.Hostname == "" || e.ReportID == "" || e.CreationDate == "" {
			t.Errorf("incomplete entry: %+v", e)
		}
	}
	if !byName["sosreport-web01"] || !byName["sosreport-db01"] {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCatalogScanSkipsAliases(t *testing.T) {
	root := t.TempDir()
	mkIdentifiableReport(t, root, "sosreport-web01", "web01", "2025-12-09T14:30:00Z")

	c := NewCatalog(root, NewMemStore(), false, zerolog.Nop())
	c.Scan() // first scan creates the alias symlink

	entries := c.Scan()
	if len(entries) != 1 {
		t.Fatalf("alias counted as a report: %+v", entries)
	}
}

func TestCatalogCacheHit(t *testing.T) {
	root := t.TempDir()
	report := mkIdentifiableReport(t, root, "sosreport-web01", "web01", "2025-12-09T14:30:00Z")
	store := NewMemStore()
	c := NewCatalog(root, store, false, zerolog.Nop())

	entries := c.Scan()
	if entries[0].Hostname != "web01" {
		t.Fatalf("hostname = %q", entries[0].Hostname)
	}

	// Rewriting a file inside the report does not touch the report
	// directory's own mtime, so the cached entry must be served.
	mustWrite(t, filepath.Join(report, "etc", "hostname"), "renamed\n")
	entries = c.Scan()
	if entries[0].Hostname != "web01" {
		t.Errorf("cache miss on unchanged directory: hostname = %q", entries[0].Hostname)
	}

	// Changing the directory itself invalidates the entry.
	mustWrite(t, filepath.Join(report, "touchstone"), "")
	entries = c.Scan()
	if entries[0].Hostname != "renamed" {
		t.Errorf("stale entry after directory change: hostname = %q", entries[0].Hostname)
	}
}

func TestCatalogRefreshClearsStore(t *testing.T) {
	root := t.TempDir()
	mkIdentifiableReport(t, root, "sosreport-web01", "web01", "2025-12-09T14:30:00Z")

	store := NewMemStore()
	NewCatalog(root, store, false, zerolog.Nop()).Scan()
	if len(store.Load().Reports) != 1 {
		t.Fatalf("cache not populated")
	}

	NewCatalog(root, store, true, zerolog.Nop())
	if len(store.Load().Reports) != 0 {
		t.Errorf("refresh did not clear the cache")
	}
}

func TestCatalogMissingRoot(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "nonexistent"), NewMemStore(), false, zerolog.Nop())
	entries := c.Scan()
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %+v, want empty non-nil", entries)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := NewFileStore(path)

	rec := NewRecord()
	rec.Reports["sosreport-web01"] = CachedReport{MTimeUnixNano: 42}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	loaded := s.Load()
	if loaded.Reports["sosreport-web01"].MTimeUnixNano != 42 {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cache file survived Clear")
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestFileStoreDegradesOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	mustWrite(t, path, "{not json")

	s := NewFileStore(path)
	rec := s.Load()
	if rec.Reports == nil || len(rec.Reports) != 0 {
		t.Errorf("loaded = %+v, want empty record", rec)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	rec := s.Load()
	if rec.Reports == nil || len(rec.Reports) != 0 {
		t.Errorf("loaded = %+v, want empty record", rec)
	}
}
