package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matai-dev/matai/internal/configs"
	"github.com/matai-dev/matai/internal/utils"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local username performing the action.
	Operation string `json:"op"`   // Operation name (encrypt, keygen).

	// Optional fields depending on operation.
	ArtifactID           string `json:"artifact_id,omitempty"`           // For encrypt.
	Source               string `json:"source,omitempty"`                // For encrypt: input name.
	RecipientFingerprint string `json:"recipient_fingerprint,omitempty"` // For encrypt.
	ArtifactBytes        int    `json:"artifact_bytes,omitempty"`        // For encrypt.
	KeyName              string `json:"key_name,omitempty"`              // For keygen.
	RSABits              int    `json:"rsa_bits,omitempty"`              // For keygen.
}

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped silently: an operation should
// never fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		if username, err := utils.GetUsername(); err == nil {
			entry.User = username
		}
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file, or an empty string if no
// state directory can be determined.
func LogPath() string {
	stateDir, err := configs.StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(stateDir, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
