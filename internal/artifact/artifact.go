package artifact

import (
	"encoding/base64"
	"fmt"
	"strings"
	"text/template"
	"time"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// Block marker names. Block content is always "# " followed by base64
// characters, so a marker line can never collide with embedded data.
const (
	wrappedKeyBlock = "MATAI WRAPPED KEY"
	payloadBlock    = "MATAI ENCRYPTED PAYLOAD"
)

// base64LineWidth matches the 64-column wrapping `openssl base64` expects
// on input.
const base64LineWidth = 64

// Record is everything the builder needs to serialize one artifact.
type Record struct {
	// ID identifies the artifact in its banner and in the audit log.
	ID string

	// WrappedKey is the raw RSA-OAEP ciphertext of the session key.
	WrappedKey []byte

	// Payload is the raw symmetric ciphertext (Salted__ format).
	Payload []byte

	// KDFIterations is the PBKDF2 iteration count baked into the embedded
	// openssl invocation; it must match the count used to encrypt Payload.
	KDFIterations int

	// SourceName names the encrypted input in the banner. Informational only.
	SourceName string

	// RecipientFingerprint is the SHA256 fingerprint of the recipient's
	// public key, shown in the banner so a recipient with several keys
	// knows which one to supply.
	RecipientFingerprint string

	// CreatedAt is stamped into the banner.
	CreatedAt time.Time
}

// Build serializes a record into a self-contained decryption artifact: a
// POSIX shell document whose comment body carries the wrapped key and
// encrypted payload in uniquely delimited blocks, and whose executable
// tail recovers the plaintext given one argument, the private key path.
//
// The artifact needs nothing at decryption time but a POSIX shell, the
// openssl tool, and the matching private key. Plaintext goes to stdout,
// diagnostics to stderr. The builder emits text only; marking the file
// executable is the caller's documented step.
func Build(rec Record) (string, error) {
	if len(rec.WrappedKey) == 0 {
		return "", fmt.Errorf("%w: empty wrapped key", merrors.ErrMalformedArtifact)
	}
	if len(rec.Payload) == 0 {
		return "", fmt.Errorf("%w: empty payload", merrors.ErrMalformedArtifact)
	}
	if rec.KDFIterations <= 0 {
		return "", fmt.Errorf("%w: iteration count %d", merrors.ErrMalformedArtifact, rec.KDFIterations)
	}

	data := struct {
		ID                   string
		SourceName           string
		RecipientFingerprint string
		CreatedAt            string
		KDFIterations        int
		WrappedKeyName       string
		PayloadName          string
		WrappedKeyLines      string
		PayloadLines         string
	}{
		ID:                   rec.ID,
		SourceName:           rec.SourceName,
		RecipientFingerprint: rec.RecipientFingerprint,
		CreatedAt:            rec.CreatedAt.UTC().Format(time.RFC3339),
		KDFIterations:        rec.KDFIterations,
		WrappedKeyName:       wrappedKeyBlock,
		PayloadName:          payloadBlock,
		WrappedKeyLines:      commentBlock(rec.WrappedKey),
		PayloadLines:         commentBlock(rec.Payload),
	}

	var b strings.Builder
	if err := scriptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render artifact: %w", err)
	}
	return b.String(), nil
}

// ExtractWrappedKey recovers the raw wrapped session key from an artifact.
func ExtractWrappedKey(doc string) ([]byte, error) {
	return extractBlock(doc, wrappedKeyBlock)
}

// ExtractPayload recovers the raw encrypted payload from an artifact.
func ExtractPayload(doc string) ([]byte, error) {
	return extractBlock(doc, payloadBlock)
}

// commentBlock encodes data as 64-column base64, each line carried in a
// shell comment.
func commentBlock(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for start := 0; start < len(encoded); start += base64LineWidth {
		end := start + base64LineWidth
		if end > len(encoded) {
			end = len(encoded)
		}
		b.WriteString("# ")
		b.WriteString(encoded[start:end])
		if end < len(encoded) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// extractBlock finds the named marker pair and decodes the base64 between
// them. Extraction is exact substring matching, mirroring what the
// artifact's own sed pipeline does.
func extractBlock(doc, name string) ([]byte, error) {
	begin := "# ----BEGIN " + name + "----\n"
	end := "\n# ----END " + name + "----"

	beginIdx := strings.Index(doc, begin)
	if beginIdx < 0 {
		return nil, fmt.Errorf("%w: missing %q begin marker", merrors.ErrMalformedArtifact, name)
	}
	rest := doc[beginIdx+len(begin):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return nil, fmt.Errorf("%w: missing %q end marker", merrors.ErrMalformedArtifact, name)
	}

	var encoded strings.Builder
	for _, line := range strings.Split(rest[:endIdx], "\n") {
		stripped, ok := strings.CutPrefix(line, "# ")
		if !ok {
			return nil, fmt.Errorf("%w: non-comment line inside %q block", merrors.ErrMalformedArtifact, name)
		}
		encoded.WriteString(stripped)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q block is not valid base64: %v", merrors.ErrMalformedArtifact, name, err)
	}
	return decoded, nil
}

// scriptTemplate renders the artifact. Everything above `set -eu` is
// comment-only: the shell never reaches the data blocks as code. The
// session key travels to openssl on fd 3, never through argv, so it cannot
// appear in a process listing.
var scriptTemplate = template.Must(template.New("artifact").Parse(`#!/bin/sh
# ---------------------------------------------------------------------
# matai self-decrypting artifact
#
#   artifact  : {{.ID}}
#   created   : {{.CreatedAt}}
#   source    : {{.SourceName}}
#   recipient : {{.RecipientFingerprint}}
#
# This document carries an encrypted payload addressed to one recipient.
# Only the RSA private key matching the fingerprint above can recover it.
#
# To decrypt, run this file with your private key as the only argument:
#
#     sh THIS_FILE /path/to/your/key.PRIVATE > plaintext
#
# or mark it executable first (chmod +x THIS_FILE) and run it directly.
# Requirements: a POSIX shell and the openssl command-line tool. The
# plaintext is written to standard output; progress goes to standard
# error. No other state is needed.
# ---------------------------------------------------------------------
#
# ----BEGIN {{.WrappedKeyName}}----
{{.WrappedKeyLines}}
# ----END {{.WrappedKeyName}}----
#
# ----BEGIN {{.PayloadName}}----
{{.PayloadLines}}
# ----END {{.PayloadName}}----

set -eu

if [ "$#" -lt 1 ]; then
    echo "error: missing argument: path to your private key" >&2
    echo "usage: sh $0 PRIVATE_KEY_FILE > plaintext" >&2
    exit 2
fi
if [ "$#" -gt 1 ]; then
    shift
    echo "error: superfluous argument(s): $*" >&2
    exit 2
fi
if ! command -v openssl >/dev/null 2>&1; then
    echo "error: openssl not found on PATH" >&2
    exit 3
fi
if [ ! -r "$1" ]; then
    echo "error: cannot read private key file: $1" >&2
    exit 2
fi

extract() {
    sed -n 's/^# //p' "$0" | sed -n "/^----BEGIN $1----$/,/^----END $1----$/p" | sed '1d;$d'
}

echo "matai: recovering session key" >&2
session_key=$(extract "{{.WrappedKeyName}}" | openssl base64 -d | \
    openssl pkeyutl -decrypt -inkey "$1" \
        -pkeyopt rsa_padding_mode:oaep \
        -pkeyopt rsa_oaep_md:sha256 \
        -pkeyopt rsa_mgf1_md:sha256)

echo "matai: decrypting payload" >&2
extract "{{.PayloadName}}" | \
    openssl enc -d -aes-256-cbc -md sha256 -pbkdf2 \
        -iter {{.KDFIterations}} -base64 -pass fd:3 3<<MATAI_SESSION_KEY
$session_key
MATAI_SESSION_KEY

echo "matai: done" >&2
`))
