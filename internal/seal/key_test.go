package seal

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	merrors "github.com/matai-dev/matai/internal/errors"
)

func TestNewSessionKeyShape(t *testing.T) {
	key, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	defer key.Zero()

	if len(key.Bytes()) != KeySize {
		t.Errorf("raw key length = %d, want %d", len(key.Bytes()), KeySize)
	}

	decoded, err := base64.StdEncoding.DecodeString(string(key.Passphrase()))
	if err != nil {
		t.Fatalf("passphrase is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, key.Bytes()) {
		t.Error("passphrase does not encode the raw key")
	}
}

func TestSessionKeyFreshness(t *testing.T) {
	first, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	defer first.Zero()

	second, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	defer second.Zero()

	if bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two session keys should never be identical")
	}
}

func TestSessionKeyZero(t *testing.T) {
	key, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}

	key.Zero()

	for i, b := range key.Bytes() {
		if b != 0 {
			t.Fatalf("raw key byte %d not zeroed", i)
		}
	}
	for i, b := range key.Passphrase() {
		if b != 0 {
			t.Fatalf("passphrase byte %d not zeroed", i)
		}
	}

	// Zero must be safe to call again.
	key.Zero()
}

func TestSessionKeyFromPassphrase(t *testing.T) {
	original, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	defer original.Zero()

	restored, err := SessionKeyFromPassphrase(original.Passphrase())
	if err != nil {
		t.Fatalf("SessionKeyFromPassphrase failed: %v", err)
	}
	defer restored.Zero()

	if !bytes.Equal(restored.Bytes(), original.Bytes()) {
		t.Error("restored key does not match original")
	}
}

func TestSessionKeyFromPassphraseRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "!!!! not base64 !!!!"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SessionKeyFromPassphrase([]byte(tt.input))
			if !errors.Is(err, merrors.ErrUnwrapFailed) {
				t.Errorf("expected ErrUnwrapFailed, got %v", err)
			}
		})
	}
}

func TestZeroize(t *testing.T) {
	buf := []byte("sensitive-data")
	Zeroize(buf)
	if bytes.Contains(buf, []byte("sensitive")) {
		t.Fatal("Zeroize did not clear buffer")
	}
}
