package browse

import (
	"fmt"
	"strings"

	"github.com/soslens/soslens/internal/model"
	"github.com/soslens/soslens/internal/page"
)

// SearchFile finds a substring (case-insensitive) inside a file and
// returns the matches with context lines, bounded twice: the match list is
// capped at maxMatches, and the rendered text of the kept matches is
// character-paginated on top of that, because a single match's context
// block can itself be long.
func (s *Service) SearchFile(reportID, rel, substring string, before, after, maxMatches, offset, limit int) (*model.SearchResult, *model.OpError) {
	target, rerr := s.gate.Resolve(reportID, rel)
	if rerr != nil {
		return nil, rerr
	}
	content, ferr := s.readFile(target, reportID, rel)
	if ferr != nil {
		return nil, ferr
	}

	if maxMatches <= 0 {
		maxMatches = s.cfg.DefaultMatches
	}
	if maxMatches > s.cfg.MaxMatches {
		maxMatches = s.cfg.MaxMatches
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	lines := strings.Split(content, "\n")
	needle := strings.ToLower(substring)
	matches := []model.SearchMatch{}

	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		start := i - before
		if start < 0 {
			start = 0
		}
		end := i + after + 1
		if end > len(lines) {
			end = len(lines)
		}

		context := make([]model.ContextLine, 0, end-start)
		for j := start; j < end; j++ {
			context = append(context, model.ContextLine{
				LineNumber: j + 1,
				Content:    lines[j],
				IsMatch:    j == i,
			})
		}
		matches = append(matches, model.SearchMatch{
			MatchLine:    i + 1,
			MatchContent: line,
			Context:      context,
		})
		if len(matches) >= maxMatches {
			break
		}
	}

	rendered := renderMatches(matches)
	slice, total, pg := page.Chars(rendered, offset, s.orDefault(limit, s.cfg.DefaultSearchChars), s.cfg.MaxSearchChars)

	return &model.SearchResult{
		Matches:      matches,
		Output:       slice,
		TotalMatches: len(matches),
		Pagination:   model.TextPagination{Pagination: pg, TotalSize: total},
	}, nil
}

// renderMatches produces the human-readable form of the kept matches:
// a header per match, context lines with 1-indexed numbers, and ">>> " on
// the matching line itself.
func renderMatches(matches []model.SearchMatch) string {
	var out []string
	for _, m := range matches {
		out = append(out, fmt.Sprintf("=== Match at line %d ===", m.MatchLine))
		for _, c := range m.Context {
			prefix := "    "
			if c.IsMatch {
				prefix = ">>> "
			}
			out = append(out, fmt.Sprintf("%s%4d: %s", prefix, c.LineNumber, c.Content))
		}
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
