// Package configs manages user configuration for Matai.
//
// Configuration is stored in TOML format at $XDG_CONFIG_HOME/matai/config.toml
// (MATAI_CONFIG_DIR overrides the location, which keeps tests hermetic).
//
// The config covers three tunables:
//
//   - rsa_bits: modulus size for generated keypairs (default 2048)
//   - kdf_iterations: PBKDF2 iteration count (default 10000)
//   - default_key_name: file stem for `matai keygen` with no argument
//
// The iteration count is baked into every emitted artifact alongside the
// ciphertext, so changing it never orphans previously encrypted files.
// Out-of-range values are clamped back to defaults rather than rejected: a
// weak setting must never silently weaken the protocol.
package configs
