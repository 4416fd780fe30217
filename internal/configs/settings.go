package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matai-dev/matai/internal/seal"
)

// Defaults applied when the user has no config file or leaves fields unset.
const (
	// DefaultRSABits is the modulus size for generated keypairs.
	DefaultRSABits = 2048

	// MinRSABits is the smallest modulus size accepted from config. Anything
	// below this cannot hold an OAEP-wrapped session key safely.
	MinRSABits = 2048

	// DefaultKDFIterations is the PBKDF2 iteration count used by both the
	// payload cipher and the openssl invocation embedded in artifacts.
	DefaultKDFIterations = seal.DefaultIterations

	// MinKDFIterations is the smallest iteration count accepted from config.
	MinKDFIterations = 1000

	// DefaultKeyName is the file stem used by `matai keygen` with no argument.
	DefaultKeyName = "key"
)

// Settings holds the user-level configuration for Matai.
type Settings struct {
	// RSABits is the modulus size for generated keypairs.
	RSABits int `toml:"rsa_bits"`

	// KDFIterations is the PBKDF2 iteration count. It is baked into every
	// emitted artifact, so artifacts remain decryptable if it changes later.
	KDFIterations int `toml:"kdf_iterations"`

	// DefaultKeyName is the file stem used by keygen with no argument.
	DefaultKeyName string `toml:"default_key_name"`
}

// ConfigDir returns the directory holding the user config file.
// MATAI_CONFIG_DIR overrides the default (os.UserConfigDir()/matai).
func ConfigDir() (string, error) {
	if dir := os.Getenv("MATAI_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(configDir, "matai"), nil
}

// StateDir returns the directory holding mutable state such as the audit log.
// MATAI_STATE_DIR overrides the default ($XDG_STATE_HOME/matai or
// ~/.local/state/matai).
func StateDir() (string, error) {
	if dir := os.Getenv("MATAI_STATE_DIR"); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "matai"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", "matai"), nil
}

// Load reads the user config, filling in defaults for anything unset or out
// of range. A missing config file is not an error: defaults are returned.
func Load() (*Settings, error) {
	settings := &Settings{
		RSABits:        DefaultRSABits,
		KDFIterations:  DefaultKDFIterations,
		DefaultKeyName: DefaultKeyName,
	}

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if err := LoadTOML(path, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}

	settings.clamp()
	return settings, nil
}

// Save writes the settings to the user config file.
func Save(settings *Settings) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return SaveTOML(filepath.Join(dir, "config.toml"), settings)
}

// clamp normalizes out-of-range or missing values back to safe defaults.
func (s *Settings) clamp() {
	if s.RSABits < MinRSABits {
		s.RSABits = DefaultRSABits
	}
	if s.KDFIterations < MinKDFIterations {
		s.KDFIterations = DefaultKDFIterations
	}
	if s.DefaultKeyName == "" {
		s.DefaultKeyName = DefaultKeyName
	}
}
