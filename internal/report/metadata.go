// Package report discovers sos-report directories, derives their stable
// identifiers, and caches the extracted metadata keyed by directory
// modification time.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soslens/soslens/internal/fsread"
)

// readTrimmed reads a metadata file leniently and trims it. Any failure
// yields "": a missing or unreadable source leaves the field absent rather
// than failing the report entry.
func readTrimmed(path string) string {
	content, err := fsread.ReadFileLenient(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}

// ExtractHostname pulls the hostname from the report's conventional
// locations, first match wins.
func ExtractHostname(reportPath string) string {
	for _, rel := range [][]string{
		{"etc", "hostname"},
		{"hostname"},
		{"sos_commands", "general", "hostname"},
	} {
		if v := readTrimmed(filepath.Join(append([]string{reportPath}, rel...)...)); v != "" {
			return v
		}
	}
	return ""
}

// ExtractSerialNumber pulls the hardware serial from the dmidecode capture.
func ExtractSerialNumber(reportPath string) string {
	return dmidecodeField(reportPath, "Serial Number")
}

// ExtractUUID pulls the hardware UUID from the dmidecode capture.
func ExtractUUID(reportPath string) string {
	return dmidecodeField(reportPath, "UUID")
}

// dmidecodeField scans the "System Information" section of the dmidecode
// output for a field value. "Not Specified" counts as absent.
func dmidecodeField(reportPath, field string) string {
	content := readTrimmed(filepath.Join(reportPath, "sos_commands", "hardware", "dmidecode"))
	if content == "" {
		content = readTrimmed(filepath.Join(reportPath, "dmidecode"))
	}
	if content == "" {
		return ""
	}

	marker := field + ":"
	inSystemInfo := false
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.Contains(line, "System Information"):
			inSystemInfo = true
		case inSystemInfo && strings.Contains(line, marker):
			idx := strings.Index(line, marker)
			value := strings.TrimSpace(line[idx+len(marker):])
			if value == "Not Specified" {
				return ""
			}
			return value
		case inSystemInfo && strings.TrimSpace(line) == "":
			// blank lines may appear inside the section
		case inSystemInfo && !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " "):
			// next section started
			return ""
		}
	}
	return ""
}

// ExtractCreationDate pulls the report creation timestamp, trying the
// conventional locations in order and ending with the directory's own
// modification time, so a date-like value is always producible for an
// existing directory.
func ExtractCreationDate(reportPath string) string {
	if v := readTrimmed(filepath.Join(reportPath, "sos_commands", "date", "date_--utc")); v != "" {
		return v
	}

	if raw, err := os.ReadFile(filepath.Join(reportPath, "manifest.json")); err == nil {
		var manifest struct {
			Start string `json:"start"`
		}
		if json.Unmarshal(raw, &manifest) == nil && manifest.Start != "" {
			return manifest.Start
		}
	}

	if content := readTrimmed(filepath.Join(reportPath, "date")); content != "" {
		for _, line := range strings.Split(content, "\n") {
			if idx := strings.Index(line, "Local time:"); idx >= 0 {
				return strings.TrimSpace(line[idx+len("Local time:"):])
			}
		}
		for _, line := range strings.Split(content, "\n") {
			if v := strings.TrimSpace(line); v != "" {
				return v
			}
		}
	}

	if v := readTrimmed(filepath.Join(reportPath, "sos_commands", "general", "date")); v != "" {
		return v
	}

	if info, err := os.Stat(reportPath); err == nil {
		return info.ModTime().UTC().Format(time.RFC3339)
	}
	return ""
}
