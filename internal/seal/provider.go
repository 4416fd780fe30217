package seal

import "crypto/rsa"

// SymmetricCipher encrypts and decrypts byte payloads under a passphrase.
// Implementations must embed any per-encryption parameters (such as a salt)
// in the ciphertext itself, so decryption needs only the passphrase.
type SymmetricCipher interface {
	// Encrypt returns the ciphertext of plaintext under passphrase. Each
	// call must use fresh randomness: encrypting identical input twice
	// never yields identical output.
	Encrypt(passphrase, plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt. A wrong passphrase or corrupted ciphertext
	// yields ErrDecryptFailed or ErrInvalidPadding; the two causes cannot
	// be told apart without an authentication tag.
	Decrypt(passphrase, ciphertext []byte) ([]byte, error)
}

// AsymmetricCipher wraps and unwraps small secrets under RSA key material.
type AsymmetricCipher interface {
	// Wrap encrypts data so only the holder of the private key matching
	// publicKey can recover it.
	Wrap(data []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Unwrap decrypts data wrapped for privateKey's public half. A wrong
	// key or corrupted input yields ErrUnwrapFailed.
	Unwrap(wrapped []byte, privateKey *rsa.PrivateKey) ([]byte, error)
}
