package audit

import (
	"strings"
	"testing"
)

func TestLogAndReadEntries(t *testing.T) {
	t.Setenv("MATAI_STATE_DIR", t.TempDir())

	Log(Entry{
		Operation:            "encrypt",
		ArtifactID:           "abc-123",
		Source:               "notes.txt",
		RecipientFingerprint: "SHA256:deadbeef",
		ArtifactBytes:        2048,
	})
	Log(Entry{
		Operation: "keygen",
		KeyName:   "bob",
		RSABits:   2048,
	})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Operation != "encrypt" {
		t.Errorf("first entry op = %q, want encrypt", entries[0].Operation)
	}
	if entries[0].ArtifactID != "abc-123" {
		t.Errorf("first entry artifact_id = %q, want abc-123", entries[0].ArtifactID)
	}
	if entries[0].Timestamp == "" {
		t.Error("timestamp should be auto-populated")
	}
	if entries[1].KeyName != "bob" {
		t.Errorf("second entry key_name = %q, want bob", entries[1].KeyName)
	}
}

func TestReadEntriesMissingLog(t *testing.T) {
	t.Setenv("MATAI_STATE_DIR", t.TempDir())

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestParseEntriesSkipsMalformedLines(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2026-01-01T00:00:00.000000Z","op":"keygen","key_name":"a"}`,
		`this line is not json`,
		`{"ts":"2026-01-02T00:00:00.000000Z","op":"keygen","key_name":"b"}`,
		``,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].KeyName != "a" || entries[1].KeyName != "b" {
		t.Error("entries parsed out of order or incorrectly")
	}
}
