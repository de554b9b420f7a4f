package report

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/soslens/soslens/internal/model"
)

// Record maps raw directory names to their last-seen state. A cached entry
// is valid only while the directory's modification time matches.
type Record struct {
	Reports map[string]CachedReport `json:"reports"`
}

// CachedReport pairs a directory's modification time with the metadata
// derived from it.
type CachedReport struct {
	MTimeUnixNano int64             `json:"mtime_unix_nano"`
	Entry         model.ReportEntry `json:"report"`
}

// NewRecord returns an empty cache record.
func NewRecord() Record {
	return Record{Reports: map[string]CachedReport{}}
}

// Store persists the catalog cache. The cache is an optimization, not a
// correctness requirement: implementations must return an empty record for
// missing or corrupt state, and concurrent saves are last-writer-wins.
type Store interface {
	Load() Record
	Save(Record) error
	Clear() error
}

// FileStore keeps the record as a single JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a Store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the record, degrading to an empty one on any failure.
func (s *FileStore) Load() Record {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return NewRecord()
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Reports == nil {
		return NewRecord()
	}
	return rec
}

// Save writes the record. Callers treat failures as non-fatal.
func (s *FileStore) Save(rec Record) error {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// Clear deletes the cache file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	rec   Record
	saves int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{rec: NewRecord()}
}

func (s *MemStore) Load() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

func (s *MemStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.saves++
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = NewRecord()
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
