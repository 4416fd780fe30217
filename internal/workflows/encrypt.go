package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matai-dev/matai/internal/artifact"
	"github.com/matai-dev/matai/internal/audit"
	"github.com/matai-dev/matai/internal/configs"
	"github.com/matai-dev/matai/internal/keys"
	"github.com/matai-dev/matai/internal/seal"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// PublicKeyPath is the recipient's public key file (OpenSSH or PEM).
	PublicKeyPath string

	// InputPath is the file to encrypt. Ignored when PlaintextData is set.
	InputPath string

	// PlaintextData holds the payload when reading from stdin.
	// If nil, the payload is read from InputPath.
	PlaintextData []byte

	// Symmetric overrides the payload cipher. Nil selects the
	// openssl-compatible PBKDF2 cipher with the configured iterations.
	Symmetric seal.SymmetricCipher

	// Asymmetric overrides the key wrapper. Nil selects RSA-OAEP.
	Asymmetric seal.AsymmetricCipher
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Artifact is the complete decryption artifact text.
	Artifact string

	// ArtifactID identifies this artifact in its banner and the audit log.
	ArtifactID string

	// RecipientFingerprint is the SHA256 fingerprint of the recipient key.
	RecipientFingerprint string

	// SourceName is the name of the encrypted input.
	SourceName string

	// PlaintextBytes is the size of the input that was encrypted.
	PlaintextBytes int
}

// Encrypt runs the hybrid encryption pipeline: validate everything, draw a
// fresh session key, encrypt the payload under it, wrap it for the
// recipient, and serialize both into a decryption artifact.
//
// The session key is zeroed before Encrypt returns on every path. The two
// ciphertexts are independent given the key; they are produced sequentially
// because wrapping costs one RSA operation and never dominates.
//
// Returns ErrMissingDependency, ErrKeyNotFound, ErrInvalidKeyFormat or
// ErrFileNotFound (possibly aggregated) from validation, and
// ErrEntropyUnavailable if the random source fails.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	settings, err := configs.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	inputs, err := preflightEncrypt(opts)
	if err != nil {
		return nil, err
	}

	sessionKey, err := seal.NewSessionKey()
	if err != nil {
		return nil, err
	}
	defer sessionKey.Zero()

	symmetric := opts.Symmetric
	if symmetric == nil {
		symmetric = seal.NewPBKDF2Cipher(settings.KDFIterations)
	}
	asymmetric := opts.Asymmetric
	if asymmetric == nil {
		asymmetric = seal.OAEPWrapper{}
	}

	payload, err := symmetric.Encrypt(sessionKey.Passphrase(), inputs.plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}

	wrapped, err := asymmetric.Wrap(sessionKey.Passphrase(), inputs.publicKey)
	if err != nil {
		return nil, fmt.Errorf("wrapping session key: %w", err)
	}

	fingerprint := keys.Fingerprint(inputs.publicKey)
	artifactID := uuid.New().String()

	doc, err := artifact.Build(artifact.Record{
		ID:                   artifactID,
		WrappedKey:           wrapped,
		Payload:              payload,
		KDFIterations:        settings.KDFIterations,
		SourceName:           inputs.sourceName,
		RecipientFingerprint: fingerprint,
		CreatedAt:            time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("building artifact: %w", err)
	}

	audit.Log(audit.Entry{
		Operation:            "encrypt",
		ArtifactID:           artifactID,
		Source:               inputs.sourceName,
		RecipientFingerprint: fingerprint,
		ArtifactBytes:        len(doc),
	})

	return &EncryptResult{
		Artifact:             doc,
		ArtifactID:           artifactID,
		RecipientFingerprint: fingerprint,
		SourceName:           inputs.sourceName,
		PlaintextBytes:       len(inputs.plaintext),
	}, nil
}
