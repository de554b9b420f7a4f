package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// unknownToken stands in for a host or timestamp signal that could not be
// extracted or parsed.
const unknownToken = "unknown"

// idTimestampLayout is the canonical compact timestamp form inside
// identifiers, truncated to the minute.
const idTimestampLayout = "20060102_1504"

var (
	integerGroups = regexp.MustCompile(`\d+`)

	monthNumbers = map[string]string{
		"jan": "01", "feb": "02", "mar": "03", "apr": "04",
		"may": "05", "jun": "06", "jul": "07", "aug": "08",
		"sep": "09", "oct": "10", "nov": "11", "dec": "12",
	}
)

// ReportID derives the stable identifier for a report directory: the
// sanitized hostname and the canonical creation timestamp joined by "_".
// It is deterministic for an unchanged directory. Two reports can
// legitimately collide when the same host produced two reports within the
// same minute; EnsureAlias resolves who keeps the short name.
func ReportID(reportPath string) string {
	host := SanitizeHostname(ExtractHostname(reportPath))
	stamp := FormatTimestamp(ExtractCreationDate(reportPath))
	return host + "_" + stamp
}

// SanitizeHostname lowercases the hostname, replaces whitespace runs with
// hyphens, strips everything that is not alphanumeric or a hyphen, and
// collapses repeated hyphens. An empty result becomes the unknown token.
func SanitizeHostname(hostname string) string {
	lowered := strings.ToLower(hostname)
	hyphenated := strings.Join(strings.Fields(lowered), "-")

	var b strings.Builder
	for _, r := range hyphenated {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}

	var parts []string
	for _, p := range strings.Split(b.String(), "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return unknownToken
	}
	return strings.Join(parts, "-")
}

// FormatTimestamp canonicalizes a date string to YYYYMMDD_HHMM. It accepts
// ISO-8601 timestamps, the textual Unix date format (month name, day,
// HH:MM:SS time and year in any order), and as a last resort treats the
// first three integer groups in the string as year, month, and day with a
// zero time. Anything else becomes the unknown token.
func FormatTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownToken
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(idTimestampLayout)
		}
	}

	if v := parseTextualDate(s); v != "" {
		return v
	}

	if nums := integerGroups.FindAllString(s, -1); len(nums) >= 3 {
		return fmt.Sprintf("%s%s%s_0000", nums[0], pad2(nums[1]), pad2(nums[2]))
	}

	return unknownToken
}

// parseTextualDate handles outputs like "Mon Dec  9 14:30:15 UTC 2025".
// Tokens are recognized by shape rather than position: a month name, a
// colon-separated time, a four-digit year, and a one-or-two digit day may
// appear in any order.
func parseTextualDate(s string) string {
	var month, day, year, hour, minute string

	for _, field := range strings.Fields(s) {
		lf := strings.ToLower(field)
		if month == "" && len(lf) >= 3 {
			if m, ok := monthNumbers[lf[:3]]; ok {
				month = m
				continue
			}
		}
		if hour == "" {
			if parts := strings.Split(field, ":"); len(parts) == 3 && allDigits(parts[0]) && allDigits(parts[1]) {
				hour = pad2(parts[0])
				minute = pad2(parts[1])
				continue
			}
		}
		if allDigits(field) {
			switch {
			case year == "" && len(field) == 4:
				year = field
			case day == "" && len(field) <= 2:
				day = pad2(field)
			}
		}
	}

	if month == "" || day == "" || year == "" || hour == "" {
		return ""
	}
	return year + month + day + "_" + hour + minute
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
