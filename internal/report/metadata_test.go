package report

import (
	"path/filepath"
	"testing"
)

const dmidecodeSample = `# dmidecode 3.3
Handle 0x0001, DMI type 1, 27 bytes
System Information
	Manufacturer: Example Corp
	Product Name: Example Server X1
	Serial Number: ABC123XYZ
	UUID: 4c4c4544-0042-3510-8043-b8c04f4d4e31
	Family: Not Specified

Handle 0x0002, DMI type 2, 15 bytes
Base Board Information
	Serial Number: BOARD-SERIAL-999
`

func TestExtractHostnamePrecedence(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, filepath.Join(report, "etc"))
	mustMkdirAll(t, filepath.Join(report, "sos_commands", "general"))
	mustWrite(t, filepath.Join(report, "sos_commands", "general", "hostname"), "fallback-host\n")

	if got := ExtractHostname(report); got != "fallback-host" {
		t.Errorf("hostname = %q", got)
	}

	mustWrite(t, filepath.Join(report, "hostname"), "root-host\n")
	if got := ExtractHostname(report); got != "root-host" {
		t.Errorf("hostname = %q", got)
	}

	mustWrite(t, filepath.Join(report, "etc", "hostname"), "etc-host\n")
	if got := ExtractHostname(report); got != "etc-host" {
		t.Errorf("hostname = %q", got)
	}
}

func TestExtractHostnameMissing(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, report)

	if got := ExtractHostname(report); got != "" {
		t.Errorf("hostname = %q, want empty", got)
	}
}

func TestDmidecodeFields(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, filepath.Join(report, "sos_commands", "hardware"))
	mustWrite(t, filepath.Join(report, "sos_commands", "hardware", "dmidecode"), dmidecodeSample)

	if got := ExtractSerialNumber(report); got != "ABC123XYZ" {
		t.Errorf("serial = %q", got)
	}
	if got := ExtractUUID(report); got != "4c4c4544-0042-3510-8043-b8c04f4d4e31" {
		t.Errorf("uuid = %q", got)
	}
}

func TestDmidecodeSectionBoundary(t *testing.T) {
	// The board serial lives outside System Information and must not be
	// picked up even when the system section lacks the field.
	sample := `System Information
	Manufacturer: Example Corp
Base Board Information
	Serial Number: BOARD-SERIAL-999
`
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, filepath.Join(report, "sos_commands", "hardware"))
	mustWrite(t, filepath.Join(report, "sos_commands", "hardware", "dmidecode"), sample)

	if got := ExtractSerialNumber(report); got != "" {
		t.Errorf("serial = %q, want empty", got)
	}
}

func TestDmidecodeNotSpecified(t *testing.T) {
	sample := "System Information\n\tSerial Number: Not Specified\n"
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, report)
	mustWrite(t, filepath.Join(report, "dmidecode"), sample)

	if got := ExtractSerialNumber(report); got != "" {
		t.Errorf("serial = %q, want empty for Not Specified", got)
	}
}

func TestExtractCreationDateChain(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, filepath.Join(report, "sos_commands", "date"))
	mustMkdirAll(t, filepath.Join(report, "sos_commands", "general"))

	// Only the directory exists: mtime fallback yields RFC3339.
	got := ExtractCreationDate(report)
	if got == "" {
		t.Fatal("expected mtime fallback, got empty")
	}
	if FormatTimestamp(got) == "unknown" {
		t.Errorf("mtime fallback %q did not canonicalize", got)
	}

	mustWrite(t, filepath.Join(report, "sos_commands", "general", "date"), "Mon Dec  9 14:30:15 UTC 2025\n")
	if got := ExtractCreationDate(report); got != "Mon Dec  9 14:30:15 UTC 2025" {
		t.Errorf("general date: %q", got)
	}

	mustWrite(t, filepath.Join(report, "date"), "      Local time: Tue 2025-12-09 14:30:15 UTC\n  Universal time: Tue 2025-12-09 14:30:15 UTC\n")
	if got := ExtractCreationDate(report); got != "Tue 2025-12-09 14:30:15 UTC" {
		t.Errorf("timedatectl date: %q", got)
	}

	mustWrite(t, filepath.Join(report, "manifest.json"), `{"start": "2025-12-09T14:29:58+00:00"}`)
	if got := ExtractCreationDate(report); got != "2025-12-09T14:29:58+00:00" {
		t.Errorf("manifest date: %q", got)
	}

	mustWrite(t, filepath.Join(report, "sos_commands", "date", "date_--utc"), "Tue Dec  9 14:30:00 UTC 2025\n")
	if got := ExtractCreationDate(report); got != "Tue Dec  9 14:30:00 UTC 2025" {
		t.Errorf("utc date: %q", got)
	}
}

func TestExtractCreationDatePlainDateFile(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r")
	mustMkdirAll(t, report)
	mustWrite(t, filepath.Join(report, "date"), "Mon Dec  9 14:30:15 UTC 2025\n")

	if got := ExtractCreationDate(report); got != "Mon Dec  9 14:30:15 UTC 2025" {
		t.Errorf("date = %q", got)
	}
}
