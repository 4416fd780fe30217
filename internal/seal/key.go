package seal

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// KeySize is the session key length in bytes (AES-256).
const KeySize = 32

// SessionKey is an ephemeral symmetric key held in a scoped secret buffer.
// It is generated fresh for every encryption, consumed by the payload
// cipher and the key wrapper, and must be zeroed before the orchestrator
// returns on every path.
type SessionKey struct {
	raw        []byte
	passphrase []byte
}

// NewSessionKey draws KeySize bytes from the system's secure random source.
// Returns ErrEntropyUnavailable if the source cannot be read.
func NewSessionKey() (*SessionKey, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrEntropyUnavailable, err)
	}

	passphrase := make([]byte, base64.StdEncoding.EncodedLen(KeySize))
	base64.StdEncoding.Encode(passphrase, raw)

	return &SessionKey{raw: raw, passphrase: passphrase}, nil
}

// SessionKeyFromPassphrase reconstructs a session key from its transport
// form, as recovered by unwrapping. The input must be the base64 encoding
// of exactly KeySize bytes.
func SessionKeyFromPassphrase(passphrase []byte) (*SessionKey, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(passphrase)))
	n, err := base64.StdEncoding.Decode(raw, passphrase)
	if err != nil || n != KeySize {
		Zeroize(raw)
		return nil, fmt.Errorf("%w: session key is not %d base64-encoded bytes", merrors.ErrUnwrapFailed, KeySize)
	}

	clone := make([]byte, len(passphrase))
	copy(clone, passphrase)
	return &SessionKey{raw: raw[:n], passphrase: clone}, nil
}

// Passphrase returns the transport-encoded form of the key: the base64
// string that doubles as the passphrase for the payload cipher. The
// returned slice aliases the key's internal buffer; callers must not
// retain it past Zero.
func (k *SessionKey) Passphrase() []byte {
	return k.passphrase
}

// Bytes returns the raw key material. The returned slice aliases the key's
// internal buffer; callers must not retain it past Zero.
func (k *SessionKey) Bytes() []byte {
	return k.raw
}

// Zero wipes both the raw key and its transport encoding. Safe to call
// more than once.
func (k *SessionKey) Zero() {
	Zeroize(k.raw)
	Zeroize(k.passphrase)
}

// Zeroize overwrites the contents of the byte slice with zeros.
// Use to clear sensitive buffers immediately after use.
func Zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
