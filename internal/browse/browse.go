// Package browse composes the confinement gate, the bounded read
// primitives, and the pagination governor into the operations exposed to
// tool callers: report discovery, directory listing, name search, file
// reading, and in-file search.
package browse

import (
	"os"
	"strings"

	"github.com/soslens/soslens/internal/config"
	"github.com/soslens/soslens/internal/fsread"
	"github.com/soslens/soslens/internal/model"
	"github.com/soslens/soslens/internal/page"
	"github.com/soslens/soslens/internal/report"
	"github.com/soslens/soslens/internal/safepath"
)

// Service implements the browse operations. Each call is independent and
// re-resolves its paths through the gate; nothing is shared across
// requests except the catalog's cache file.
type Service struct {
	cfg     config.Config
	catalog *report.Catalog
	gate    *safepath.Resolver
}

// NewService wires the browse operations together.
func NewService(cfg config.Config, catalog *report.Catalog, gate *safepath.Resolver) *Service {
	return &Service{cfg: cfg, catalog: catalog, gate: gate}
}

// DiscoverReports scans the reports root and applies the metadata filters:
// hostname substring (case-insensitive), serial number exact, creation
// date substring. The result list is capped at the configured maximum.
func (s *Service) DiscoverReports(f model.ReportFilter) *model.ReportList {
	all := s.catalog.Scan()

	filtered := make([]model.ReportEntry, 0, len(all))
	for _, r := range all {
		if f.Hostname != "" &&
			(r.Hostname == "" || !strings.Contains(strings.ToLower(r.Hostname), strings.ToLower(f.Hostname))) {
			continue
		}
		if f.SerialNumber != "" && r.SerialNumber != f.SerialNumber {
			continue
		}
		if f.DateContains != "" &&
			(r.CreationDate == "" || !strings.Contains(r.CreationDate, f.DateContains)) {
			continue
		}
		filtered = append(filtered, r)
	}

	shown := filtered
	truncated := false
	if len(shown) > s.cfg.MaxListItems {
		shown = shown[:s.cfg.MaxListItems]
		truncated = true
	}
	return &model.ReportList{
		Reports:    shown,
		Truncated:  truncated,
		TotalFound: len(filtered),
		Showing:    len(shown),
	}
}

// ListDirectory returns one page of a directory's children. The search
// budget caps how many entries are considered at all, so TotalItems can be
// an approximation on enormous directories.
func (s *Service) ListDirectory(reportID, rel string, offset, limit, budget int) (*model.DirListing, *model.OpError) {
	target, rerr := s.gate.Resolve(reportID, rel)
	if rerr != nil {
		return nil, rerr
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, model.Errf(model.KindReadFailure, "cannot access %s: %v", display(reportID, rel), err)
	}
	if !info.IsDir() {
		return nil, model.Errf(model.KindNotADirectory, "not a directory: %s", display(reportID, rel))
	}

	items, lerr := fsread.ListEntries(target)
	if lerr != nil {
		return nil, lerr
	}
	if budget = s.clampBudget(budget); len(items) > budget {
		items = items[:budget]
	}

	pageItems, pg := page.Items(items, offset, s.orDefault(limit, s.cfg.DefaultPageItems), s.cfg.MaxPageItems)
	return &model.DirListing{Items: pageItems, TotalItems: len(items), Pagination: pg}, nil
}

// FindFiles returns one page of filename-glob matches under a report
// directory, shallow or recursive. Matching is case-insensitive against
// the filename only, and the raw match collection is capped by the search
// budget before sorting and pagination.
func (s *Service) FindFiles(reportID, pattern, rel string, offset, limit, budget int, recursive bool) (*model.FindResult, *model.OpError) {
	// Reject forbidden patterns before touching the filesystem at all.
	if perr := fsread.ValidatePattern(pattern); perr != nil {
		return nil, perr
	}

	searchRoot, rerr := s.gate.Resolve(reportID, rel)
	if rerr != nil {
		return nil, rerr
	}
	reportRoot, rerr := s.gate.Resolve(reportID, "")
	if rerr != nil {
		return nil, rerr
	}

	budget = s.clampBudget(budget)
	var (
		matches []model.Match
		merr    *model.OpError
	)
	if recursive {
		matches, merr = fsread.MatchRecursive(searchRoot, pattern, reportRoot, budget)
	} else {
		matches, merr = fsread.MatchShallow(searchRoot, pattern, reportRoot, budget)
	}
	if merr != nil {
		return nil, merr
	}

	pageMatches, pg := page.Items(matches, offset, s.orDefault(limit, s.cfg.DefaultPageItems), s.cfg.MaxPageItems)
	return &model.FindResult{Matches: pageMatches, TotalMatches: len(matches), Pagination: pg}, nil
}

// ReadFile returns one character page of a file's content. Decoding is
// lenient, so binary files yield replacement characters instead of errors;
// an offset at or past the end yields an empty page with HasMore false.
func (s *Service) ReadFile(reportID, rel string, offset, limit int) (*model.FileSlice, *model.OpError) {
	target, rerr := s.gate.Resolve(reportID, rel)
	if rerr != nil {
		return nil, rerr
	}

	content, ferr := s.readFile(target, reportID, rel)
	if ferr != nil {
		return nil, ferr
	}

	slice, total, pg := page.Chars(content, offset, s.orDefault(limit, s.cfg.MaxTextChars), s.cfg.MaxTextChars)
	return &model.FileSlice{Content: slice, TotalSize: total, Pagination: pg}, nil
}

// readFile wraps the lenient read primitive, rephrasing failures in terms
// of the caller-supplied path rather than the resolved one.
func (s *Service) readFile(target, reportID, rel string) (string, *model.OpError) {
	content, ferr := fsread.ReadFileLenient(target)
	if ferr == nil {
		return content, nil
	}
	switch ferr.Kind {
	case model.KindNotAFile:
		return "", model.Errf(model.KindNotAFile, "path is not a file: %s", display(reportID, rel))
	case model.KindNotFound:
		return "", model.Errf(model.KindNotFound, "file not found: %s", display(reportID, rel))
	default:
		return "", model.Errf(ferr.Kind, "unable to read file %s: %s", display(reportID, rel), ferr.Message)
	}
}

func (s *Service) clampBudget(budget int) int {
	if budget <= 0 {
		budget = s.cfg.DefaultSearchBudget
	}
	if budget > s.cfg.MaxSearchBudget {
		budget = s.cfg.MaxSearchBudget
	}
	return budget
}

func (s *Service) orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func display(reportID, rel string) string {
	if rel == "" {
		return reportID
	}
	return reportID + "/" + rel
}
