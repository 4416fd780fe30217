package seal

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// testCipher uses a low iteration count to keep the suite fast; the
// derivation path is identical regardless of count.
func testCipher() *PBKDF2Cipher {
	return NewPBKDF2Cipher(MinTestIterations)
}

// MinTestIterations is small on purpose; production counts only slow the
// same code path down.
const MinTestIterations = 1000

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("failed to read random bytes: %v", err)
	}
	return buf
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher := testCipher()
	passphrase := []byte("dGVzdC1wYXNzcGhyYXNlLXZhbHVl")

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty input", []byte{}},
		{"single byte", []byte{0x42}},
		{"short text", []byte("attack at dawn")},
		{"exact block multiple", bytes.Repeat([]byte{0xAA}, 64)},
		{"large binary", nil}, // filled below
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext := tt.plaintext
			if plaintext == nil {
				plaintext = randomBytes(t, 1<<20)
			}

			ciphertext, err := cipher.Encrypt(passphrase, plaintext)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}

			recovered, err := cipher.Decrypt(passphrase, ciphertext)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if !bytes.Equal(recovered, plaintext) {
				t.Error("round trip did not reproduce plaintext byte-for-byte")
			}
		})
	}
}

func TestEncryptWritesOpenSSLHeader(t *testing.T) {
	cipher := testCipher()

	ciphertext, err := cipher.Encrypt([]byte("pass"), []byte("payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if !bytes.HasPrefix(ciphertext, []byte("Salted__")) {
		t.Error("ciphertext missing Salted__ header")
	}
	if len(ciphertext) < len("Salted__")+saltSize+16 {
		t.Errorf("ciphertext too short: %d bytes", len(ciphertext))
	}
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	cipher := testCipher()
	passphrase := []byte("same-passphrase")
	plaintext := []byte("same plaintext every time")

	first, err := cipher.Encrypt(passphrase, plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := cipher.Encrypt(passphrase, plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("identical ciphertexts for identical input: salt is not fresh")
	}

	// Both must still decrypt.
	for i, ct := range [][]byte{first, second} {
		recovered, err := cipher.Decrypt(passphrase, ct)
		if err != nil {
			t.Fatalf("Decrypt of ciphertext %d failed: %v", i, err)
		}
		if !bytes.Equal(recovered, plaintext) {
			t.Errorf("ciphertext %d did not round trip", i)
		}
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	cipher := testCipher()
	plaintext := []byte("the original message")

	ciphertext, err := cipher.Encrypt([]byte("right-passphrase"), plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// Without an authentication tag, a wrong passphrase either trips the
	// padding check or yields garbage. Both outcomes are acceptable; what
	// is not acceptable is recovering the original plaintext.
	recovered, err := cipher.Decrypt([]byte("wrong-passphrase"), ciphertext)
	if err == nil && bytes.Equal(recovered, plaintext) {
		t.Error("wrong passphrase reproduced the original plaintext")
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	cipher := testCipher()

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"too short", []byte("Salted__")},
		{"missing header", bytes.Repeat([]byte{0x01}, 48)},
		{"misaligned ciphertext", append([]byte("Salted__12345678"), 0x01, 0x02, 0x03)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cipher.Decrypt([]byte("pass"), tt.input); !errors.Is(err, merrors.ErrDecryptFailed) {
				t.Errorf("expected ErrDecryptFailed, got %v", err)
			}
		})
	}
}

func TestDecryptTruncatedCiphertext(t *testing.T) {
	cipher := testCipher()
	passphrase := []byte("pass")

	ciphertext, err := cipher.Encrypt(passphrase, bytes.Repeat([]byte{0x55}, 100))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// Chop off the last block; decryption must fail (length check or padding).
	truncated := ciphertext[:len(ciphertext)-16]
	recovered, err := cipher.Decrypt(passphrase, truncated)
	if err == nil && bytes.Equal(recovered, bytes.Repeat([]byte{0x55}, 100)) {
		t.Error("truncated ciphertext reproduced the original plaintext")
	}
}

func TestNewPBKDF2CipherDefaultsIterations(t *testing.T) {
	if c := NewPBKDF2Cipher(0); c.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", c.Iterations, DefaultIterations)
	}
	if c := NewPBKDF2Cipher(-5); c.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", c.Iterations, DefaultIterations)
	}
	if c := NewPBKDF2Cipher(250000); c.Iterations != 250000 {
		t.Errorf("Iterations = %d, want caller value preserved", c.Iterations)
	}
}

func TestPKCS7PadUnpad(t *testing.T) {
	for size := 0; size <= 33; size++ {
		src := bytes.Repeat([]byte{0x7F}, size)
		padded := pkcs7Pad(src, 16)
		if len(padded)%16 != 0 {
			t.Fatalf("padded length %d not block-aligned for input %d", len(padded), size)
		}
		unpadded, err := pkcs7Unpad(padded, 16)
		if err != nil {
			t.Fatalf("unpad failed for input %d: %v", size, err)
		}
		if !bytes.Equal(unpadded, src) {
			t.Fatalf("pad/unpad mismatch for input %d", size)
		}
	}
}

func TestPKCS7UnpadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"zero padding byte", append(bytes.Repeat([]byte{0x01}, 15), 0x00)},
		{"padding exceeds block", append(bytes.Repeat([]byte{0x01}, 15), 0x11)},
		{"inconsistent padding", append(bytes.Repeat([]byte{0x02}, 14), 0x01, 0x03)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pkcs7Unpad(tt.input, 16); !errors.Is(err, merrors.ErrInvalidPadding) {
				t.Errorf("expected ErrInvalidPadding, got %v", err)
			}
		})
	}
}

func BenchmarkEncrypt_64KB(b *testing.B) {
	benchmarkEncrypt(b, 64<<10)
}

func BenchmarkEncrypt_1MB(b *testing.B) {
	benchmarkEncrypt(b, 1<<20)
}

func BenchmarkDecrypt_1MB(b *testing.B) {
	cipher := NewPBKDF2Cipher(MinTestIterations)
	passphrase := []byte("bench-passphrase")
	plaintext := bytes.Repeat([]byte("x"), 1<<20)
	ciphertext, _ := cipher.Encrypt(passphrase, plaintext)
	b.SetBytes(int64(len(plaintext)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cipher.Decrypt(passphrase, ciphertext); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkEncrypt(b *testing.B, size int) {
	b.Helper()
	cipher := NewPBKDF2Cipher(MinTestIterations)
	passphrase := []byte("bench-passphrase")
	plaintext := bytes.Repeat([]byte("x"), size)
	b.SetBytes(int64(size))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cipher.Encrypt(passphrase, plaintext); err != nil {
			b.Fatal(err)
		}
	}
}
