package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// File suffixes for generated keypairs. The uppercase private suffix is
// deliberate: it makes the file that must never be shared stand out in a
// directory listing.
const (
	PrivateKeySuffix = ".PRIVATE"
	PublicKeySuffix  = ".pub"
)

// Generate creates a new RSA keypair and writes it next to stem:
// stem.PRIVATE holds the passphrase-less private key in PEM (PKCS#1) form,
// stem.pub holds the public key as a single OpenSSH authorized_keys line so
// recipients can hand it out like any SSH public key.
//
// Returns ErrKeyExists if either file already exists and force is false.
func Generate(stem string, bits int, force bool) (privatePath, publicPath string, err error) {
	privatePath = stem + PrivateKeySuffix
	publicPath = stem + PublicKeySuffix

	if !force {
		for _, path := range []string{privatePath, publicPath} {
			if _, err := os.Stat(path); err == nil {
				return "", "", fmt.Errorf("%w: %s (use --force to overwrite)", merrors.ErrKeyExists, path)
			}
		}
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	if dir := filepath.Dir(privatePath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", "", fmt.Errorf("failed to create directory for keypair at %s: %w", dir, err)
		}
	}

	if err := writePrivateKey(privatePath, privateKey); err != nil {
		return "", "", err
	}
	if err := writePublicKey(publicPath, &privateKey.PublicKey); err != nil {
		return "", "", err
	}

	return privatePath, publicPath, nil
}

func writePrivateKey(path string, privateKey *rsa.PrivateKey) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create private key file at %s: %w", path, err)
	}
	defer file.Close()

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}
	if err := pem.Encode(file, block); err != nil {
		return fmt.Errorf("failed to PEM encode private key: %w", err)
	}
	return nil
}

func writePublicKey(path string, publicKey *rsa.PublicKey) error {
	sshKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return fmt.Errorf("failed to convert public key to OpenSSH format: %w", err)
	}

	// authorized_keys format: one line, safe to paste anywhere.
	// #nosec G306 -- public keys are meant to be shared.
	if err := os.WriteFile(path, ssh.MarshalAuthorizedKey(sshKey), 0644); err != nil {
		return fmt.Errorf("failed to write public key to %s: %w", path, err)
	}
	return nil
}

// Fingerprint returns the SHA256 fingerprint of an RSA public key in
// OpenSSH notation, or an empty string if the key cannot be converted.
func Fingerprint(publicKey *rsa.PublicKey) string {
	sshKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return ""
	}
	return ssh.FingerprintSHA256(sshKey)
}
