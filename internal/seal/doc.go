// Package seal implements the hybrid encryption protocol: a fresh 32-byte
// session key encrypts the payload symmetrically, and the session key is
// wrapped asymmetrically for the recipient so no shared secret ever travels.
//
// # Capability interfaces
//
// The protocol is expressed through two small interfaces, SymmetricCipher
// and AsymmetricCipher, so workflows and tests can substitute doubles for
// either half independently. The production implementations are:
//
//   - PBKDF2Cipher: AES-256-CBC with PBKDF2-HMAC-SHA256 key derivation, bit
//     compatible with `openssl enc -aes-256-cbc -md sha256 -pbkdf2 -salt`.
//     The ciphertext is self-describing: the 8-byte salt rides in the
//     standard Salted__ header, so decryption needs only the passphrase.
//   - OAEPWrapper: RSA-OAEP with SHA-256 for both the OAEP digest and MGF1,
//     matching `openssl pkeyutl -pkeyopt rsa_padding_mode:oaep`.
//
// Compatibility with the openssl command line is a hard requirement: the
// emitted decryption artifact recovers the plaintext using nothing but a
// POSIX shell and openssl, with no Matai binary on the recipient's machine.
//
// # Session keys
//
// SessionKey is a scoped secret buffer. Its transport form (standard base64)
// doubles as the passphrase fed into key derivation, which lets the session
// key pass through text-only interfaces such as openssl's passphrase file
// descriptor without ever appearing in process arguments. Callers must Zero
// the key on every exit path; the raw and passphrase buffers are both wiped.
//
// The payload cipher carries no authentication tag. Tampering surfaces as a
// padding error or garbage plaintext, never as a clean detected failure.
package seal
