package workflows

import (
	"context"
	"fmt"

	"github.com/matai-dev/matai/internal/audit"
	"github.com/matai-dev/matai/internal/configs"
	"github.com/matai-dev/matai/internal/keys"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Name is the file stem for the keypair. Empty selects the configured
	// default (normally "key").
	Name string

	// Force overwrites existing key files.
	Force bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// PrivateKeyPath is the generated NAME.PRIVATE file.
	PrivateKeyPath string

	// PublicKeyPath is the generated NAME.pub file.
	PublicKeyPath string

	// Fingerprint is the SHA256 fingerprint of the new public key.
	Fingerprint string

	// Bits is the RSA modulus size that was generated.
	Bits int
}

// Keygen generates a recipient keypair: a passphrase-less PEM private key
// and a single-line OpenSSH public key, ready to hand to senders.
//
// Returns ErrKeyExists if either file already exists and Force is unset.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	settings, err := configs.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = settings.DefaultKeyName
	}

	privatePath, publicPath, err := keys.Generate(name, settings.RSABits, opts.Force)
	if err != nil {
		return nil, err
	}

	publicKey, err := keys.LoadPublicKey(publicPath)
	if err != nil {
		return nil, fmt.Errorf("reloading generated public key: %w", err)
	}

	audit.Log(audit.Entry{
		Operation: "keygen",
		KeyName:   name,
		RSABits:   settings.RSABits,
	})

	return &KeygenResult{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		Fingerprint:    keys.Fingerprint(publicKey),
		Bits:           settings.RSABits,
	}, nil
}
