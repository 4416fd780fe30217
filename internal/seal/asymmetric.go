package seal

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// OAEPWrapper is an AsymmetricCipher using RSA-OAEP with SHA-256 for both
// the OAEP digest and the mask generation function. The emitted artifact
// decrypts the result with:
//
//	openssl pkeyutl -decrypt -pkeyopt rsa_padding_mode:oaep \
//	    -pkeyopt rsa_oaep_md:sha256 -pkeyopt rsa_mgf1_md:sha256
type OAEPWrapper struct{}

// Wrap encrypts data for the holder of the matching private key.
// Returns ErrInvalidKeyFormat when the key modulus is too small to carry
// the data under OAEP padding.
func (OAEPWrapper) Wrap(data []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, data, nil)
	if err != nil {
		if errors.Is(err, rsa.ErrMessageTooLong) {
			return nil, fmt.Errorf("%w: %d-bit key too small for OAEP-wrapped session key",
				merrors.ErrInvalidKeyFormat, publicKey.N.BitLen())
		}
		return nil, fmt.Errorf("failed to wrap session key: %w", err)
	}
	return wrapped, nil
}

// Unwrap decrypts wrapped data with privateKey. Any failure, including a
// non-matching key, is reported as ErrUnwrapFailed and treated as fatal.
func (OAEPWrapper) Unwrap(wrapped []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	data, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrUnwrapFailed, err)
	}
	return data, nil
}
