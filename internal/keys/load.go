package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"

	merrors "github.com/matai-dev/matai/internal/errors"
)

// LoadPublicKey loads a recipient public key from disk. Both the OpenSSH
// authorized_keys exchange format and PEM (PKIX or PKCS#1) are accepted.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", merrors.ErrKeyNotFound, path)
		}
		return nil, err
	}
	publicKey, err := ParsePublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return publicKey, nil
}

// ParsePublicKey converts public key text into the *rsa.PublicKey the OAEP
// primitive accepts. Recipient keys normally arrive as a single OpenSSH
// authorized_keys line; PEM blocks are accepted as a fallback.
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	if sshKey, _, _, _, err := ssh.ParseAuthorizedKey(data); err == nil {
		cryptoKey, ok := sshKey.(ssh.CryptoPublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported OpenSSH key type %s", merrors.ErrInvalidKeyFormat, sshKey.Type())
		}
		rsaKey, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s key where an RSA key is required", merrors.ErrInvalidKeyFormat, sshKey.Type())
		}
		return rsaKey, nil
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: neither OpenSSH nor PEM public key", merrors.ErrInvalidKeyFormat)
	}

	switch block.Type {
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", merrors.ErrInvalidKeyFormat, err)
		}
		rsaKey, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T key where an RSA key is required", merrors.ErrInvalidKeyFormat, parsed)
		}
		return rsaKey, nil
	case "RSA PUBLIC KEY":
		rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", merrors.ErrInvalidKeyFormat, err)
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", merrors.ErrInvalidKeyFormat, block.Type)
	}
}

// LoadPrivateKey loads an RSA private key from disk. PEM PKCS#1, PKCS#8 and
// the OpenSSH private key format are accepted; passphrase-protected keys
// are rejected because the artifact contract requires passphrase-less keys.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", merrors.ErrKeyNotFound, path)
		}
		return nil, err
	}
	privateKey, err := ParsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return privateKey, nil
}

// ParsePrivateKey parses private key text in any supported format.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	parsed, err := ssh.ParseRawPrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, merrors.ErrPrivateKeyEncrypted
		}
		return nil, fmt.Errorf("%w: %v", merrors.ErrInvalidKeyFormat, err)
	}

	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T key where an RSA key is required", merrors.ErrInvalidKeyFormat, parsed)
	}
	return rsaKey, nil
}
