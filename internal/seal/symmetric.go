package seal

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	merrors "github.com/matai-dev/matai/internal/errors"
)

const (
	// saltMagic is the header openssl writes before the salt; keeping it
	// makes the ciphertext decryptable by a stock `openssl enc -d` call.
	saltMagic = "Salted__"
	// saltSize is the salt length in bytes, fixed by the openssl format.
	saltSize = 8
	// derivedLen is the PBKDF2 output length: a 32-byte AES-256 key
	// followed by a 16-byte CBC IV, split exactly as openssl splits it.
	derivedLen = 32 + aes.BlockSize

	// DefaultIterations is the PBKDF2 iteration count used when none is
	// configured. It must match the -iter value the artifact template
	// hands to openssl.
	DefaultIterations = 10000
)

// PBKDF2Cipher is a SymmetricCipher producing openssl-compatible output:
//
//	Salted__ || salt[8] || AES-256-CBC(PKCS#7(plaintext))
//
// with key and IV derived together via PBKDF2-HMAC-SHA256 over the
// passphrase and salt. Equivalent to:
//
//	openssl enc -aes-256-cbc -salt -md sha256 -pbkdf2 -iter N -pass ...
type PBKDF2Cipher struct {
	// Iterations is the PBKDF2 iteration count.
	Iterations int
}

// NewPBKDF2Cipher returns a cipher with the given iteration count, falling
// back to DefaultIterations for non-positive values.
func NewPBKDF2Cipher(iterations int) *PBKDF2Cipher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PBKDF2Cipher{Iterations: iterations}
}

// Encrypt encrypts plaintext under passphrase with a fresh random salt.
func (c *PBKDF2Cipher) Encrypt(passphrase, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrEntropyUnavailable, err)
	}

	key, iv := c.deriveKeyAndIV(passphrase, salt)
	defer Zeroize(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, len(saltMagic)+saltSize+len(ciphertext))
	out = append(out, saltMagic...)
	out = append(out, salt...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt reverses Encrypt, reading the salt from the Salted__ header.
func (c *PBKDF2Cipher) Decrypt(passphrase, payload []byte) ([]byte, error) {
	if len(payload) < len(saltMagic)+saltSize {
		return nil, fmt.Errorf("%w: payload shorter than salt header", merrors.ErrDecryptFailed)
	}
	if !bytes.HasPrefix(payload, []byte(saltMagic)) {
		return nil, fmt.Errorf("%w: missing %q header", merrors.ErrDecryptFailed, saltMagic)
	}

	salt := payload[len(saltMagic) : len(saltMagic)+saltSize]
	ciphertext := payload[len(saltMagic)+saltSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size",
			merrors.ErrDecryptFailed, len(ciphertext))
	}

	key, iv := c.deriveKeyAndIV(passphrase, salt)
	defer Zeroize(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

// deriveKeyAndIV derives the AES key and CBC IV from the passphrase and
// salt in a single PBKDF2 call, exactly as openssl's -pbkdf2 mode does.
func (c *PBKDF2Cipher) deriveKeyAndIV(passphrase, salt []byte) (key, iv []byte) {
	derived := pbkdf2.Key(passphrase, salt, c.Iterations, derivedLen, sha256.New)
	return derived[:32], derived[32:]
}

// pkcs7Pad appends PKCS#7 padding to src so its length is a multiple of
// blockSize. A full extra block is appended when src is already aligned,
// so padding removal is always unambiguous.
func pkcs7Pad(src []byte, blockSize int) []byte {
	padding := blockSize - (len(src) % blockSize)
	return append(src, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad removes PKCS#7 padding. With no authentication tag in the
// format, a padding failure here is the only signal of a wrong key or a
// corrupted payload.
func pkcs7Unpad(src []byte, blockSize int) ([]byte, error) {
	length := len(src)
	if length == 0 || length%blockSize != 0 {
		return nil, fmt.Errorf("%w: input length %d", merrors.ErrInvalidPadding, length)
	}

	padding := int(src[length-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: padding byte value %d", merrors.ErrInvalidPadding, padding)
	}
	for i := length - padding; i < length; i++ {
		if src[i] != byte(padding) {
			return nil, fmt.Errorf("%w: inconsistent padding at byte %d", merrors.ErrInvalidPadding, i)
		}
	}
	return src[:length-padding], nil
}
