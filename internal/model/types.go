// Package model defines the data types exchanged with tool callers:
// report entries, pagination envelopes, operation responses, and the
// structured error taxonomy. All types here serialize to JSON.
package model

// --- Report discovery ---

// ReportEntry describes one sos-report directory found under the reports
// root. Metadata fields are optional: a missing or unparseable source file
// leaves the field empty rather than failing the entry.
type ReportEntry struct {
	ReportID     string `json:"report_id"`
	ReportName   string `json:"report_name"`
	Hostname     string `json:"hostname,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	UUID         string `json:"uuid,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
}

// ReportFilter narrows a discovery result. Hostname and DateContains are
// substring filters (hostname case-insensitive), SerialNumber is exact.
type ReportFilter struct {
	Hostname     string
	SerialNumber string
	DateContains string
}

// ReportList is the discovery response.
type ReportList struct {
	Reports    []ReportEntry `json:"reports"`
	Truncated  bool          `json:"truncated"`
	TotalFound int           `json:"total_found"`
	Showing    int           `json:"showing"`
}

// --- Pagination envelopes ---

// Pagination describes one bounded page of a larger result. A follow-up
// call with offset = Offset + Returned yields the next contiguous slice.
type Pagination struct {
	Offset   int  `json:"offset"`
	Limit    int  `json:"limit"`
	Returned int  `json:"returned"`
	HasMore  bool `json:"has_more"`
}

// TextPagination extends Pagination with the size of the underlying text,
// for character-addressed results.
type TextPagination struct {
	Pagination
	TotalSize int `json:"total_size"`
}

// --- Directory listing and name search ---

// Entry type classifications.
const (
	TypeFile    = "file"
	TypeDir     = "dir"
	TypeSymlink = "symlink"
)

// DirItem is one directory entry. Name is decorated for display:
// directories carry a trailing "/", symlinks render as "name -> target".
// RawName always holds the undecorated on-disk name.
type DirItem struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	RawName string `json:"raw_name"`
}

// DirListing is the response of a directory listing.
type DirListing struct {
	Items      []DirItem  `json:"items"`
	TotalItems int        `json:"total_items"`
	Pagination Pagination `json:"pagination"`
}

// Match is one filename-pattern hit; Path is relative to the report root.
type Match struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// FindResult is the response of a shallow or recursive name search.
// TotalMatches counts matches actually collected, which the search budget
// may have capped before the whole tree was visited.
type FindResult struct {
	Matches      []Match    `json:"matches"`
	TotalMatches int        `json:"total_matches"`
	Pagination   Pagination `json:"pagination"`
}

// --- File content ---

// FileSlice is one character-addressed page of a file.
type FileSlice struct {
	Content    string     `json:"content"`
	TotalSize  int        `json:"total_size"`
	Pagination Pagination `json:"pagination"`
}

// ContextLine is one line of context around a search match, 1-indexed.
type ContextLine struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
	IsMatch    bool   `json:"is_match"`
}

// SearchMatch is one substring hit inside a file, with surrounding context.
type SearchMatch struct {
	MatchLine    int           `json:"match_line"`
	MatchContent string        `json:"match_content"`
	Context      []ContextLine `json:"context"`
}

// SearchResult is the response of an in-file search. Output is one
// character page of the rendered matches; the structured Matches list is
// already capped by the match budget.
type SearchResult struct {
	Matches      []SearchMatch  `json:"matches"`
	Output       string         `json:"output"`
	TotalMatches int            `json:"total_matches"`
	Pagination   TextPagination `json:"pagination"`
}
