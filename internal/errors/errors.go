package errors

import "errors"

// Key errors indicate problems with recipient key material.
var (
	// ErrKeyNotFound indicates a key file could not be located.
	ErrKeyNotFound = errors.New("key file not found")

	// ErrInvalidKeyFormat indicates a public or private key could not be
	// parsed or converted into a format the RSA primitive accepts.
	ErrInvalidKeyFormat = errors.New("invalid or unsupported key format")

	// ErrKeyExists indicates a keypair with the requested name already exists.
	ErrKeyExists = errors.New("key file already exists")

	// ErrPrivateKeyEncrypted indicates the private key is passphrase-protected,
	// which the artifact contract does not allow.
	ErrPrivateKeyEncrypted = errors.New("private key must not be passphrase-protected")
)

// Cryptographic errors indicate failures during the hybrid encryption protocol.
var (
	// ErrEntropyUnavailable indicates the secure random source failed.
	ErrEntropyUnavailable = errors.New("secure entropy source unavailable")

	// ErrUnwrapFailed indicates the session key could not be recovered,
	// typically because the wrong private key was supplied.
	ErrUnwrapFailed = errors.New("failed to unwrap session key")

	// ErrDecryptFailed indicates payload decryption failed. Without an
	// authentication tag this cannot be distinguished from a wrong key.
	ErrDecryptFailed = errors.New("failed to decrypt payload")

	// ErrInvalidPadding indicates the decrypted payload carried malformed
	// PKCS#7 padding, usually a sign of corruption or a mismatched key.
	ErrInvalidPadding = errors.New("malformed padding in decrypted payload")
)

// Environment errors indicate problems outside the tool itself.
var (
	// ErrMissingDependency indicates a required external tool (openssl)
	// is not available on PATH.
	ErrMissingDependency = errors.New("required cryptographic tool not found")

	// ErrFileNotFound indicates the input file could not be located.
	ErrFileNotFound = errors.New("input file not found")
)

// Artifact errors indicate problems with a decryption artifact document.
var (
	// ErrMalformedArtifact indicates an artifact is missing one of its
	// delimited blocks or carries content outside the transport encoding.
	ErrMalformedArtifact = errors.New("malformed decryption artifact")
)
