// Package page implements the shared bounding contract every operation
// honors: count-based pagination for item lists, character-based
// pagination for text, and the byte-ceiling backstop applied to each
// serialized response exactly once, after all other pagination.
package page

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/soslens/soslens/internal/model"
)

// Items returns one bounded page of items. A negative offset is treated as
// zero, a non-positive limit falls back to maxLimit, and the limit is
// hard-capped at maxLimit regardless of what the caller requested.
func Items[T any](items []T, offset, limit, maxLimit int) ([]T, model.Pagination) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	total := len(items)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pg := items[start:end]
	return pg, model.Pagination{
		Offset:   offset,
		Limit:    limit,
		Returned: len(pg),
		HasMore:  offset+len(pg) < total,
	}
}

// Chars returns one bounded page of text, sliced on character boundaries.
// Offsets and sizes count characters, not bytes, so a slice can never
// split a multi-byte sequence. The total character count is returned
// alongside the page.
func Chars(text string, offset, limit, maxLimit int) (string, int, model.Pagination) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	runes := []rune(text)
	total := len(runes)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	slice := string(runes[start:end])
	return slice, total, model.Pagination{
		Offset:   offset,
		Limit:    limit,
		Returned: end - start,
		HasMore:  offset+(end-start) < total,
	}
}

// truncationReserve leaves room for the warning field when a response has
// to be cut.
const truncationReserve = 100

// Enforce is the final backstop: it clamps a serialized JSON response to
// maxBytes. A response under the ceiling passes through unchanged. An
// oversized one is cut at the last complete field separator and a
// machine-readable "_truncation_warning" field is spliced in; if the
// reconstruction is not valid JSON, a minimal fixed payload carrying only
// the warning and the original size is returned instead.
func Enforce(raw []byte, maxBytes int) []byte {
	if len(raw) <= maxBytes {
		return raw
	}

	notice := fmt.Sprintf(`"_truncation_warning":"response exceeded the %d byte limit and was truncated"`, maxBytes)

	cut := maxBytes - truncationReserve
	if cut < 0 {
		cut = 0
	}
	truncated := raw[:cut]
	if i := bytes.LastIndexByte(truncated, ','); i > 0 {
		truncated = truncated[:i]
	}

	var rebuilt []byte
	if bytes.HasSuffix(truncated, []byte("}")) {
		rebuilt = append(rebuilt, truncated[:len(truncated)-1]...)
		rebuilt = append(rebuilt, ',')
		rebuilt = append(rebuilt, notice...)
		rebuilt = append(rebuilt, '}')
	} else {
		rebuilt = []byte("{" + notice + "}")
	}

	if json.Valid(rebuilt) && len(rebuilt) <= maxBytes {
		return rebuilt
	}

	fallback, _ := json.Marshal(map[string]interface{}{
		"error":               "response too large",
		"_truncation_warning": fmt.Sprintf("response exceeded the %d byte limit and was truncated", maxBytes),
		"original_size_bytes": len(raw),
	})
	return fallback
}
