// Package keys handles RSA keypair generation and key material parsing.
//
// Generated keypairs follow the interoperable exchange contract: the public
// key is a single OpenSSH authorized_keys line (what people already share),
// the private key is passphrase-less PEM. Loading converts either format
// into the *rsa types the seal package's OAEP primitive accepts; a key that
// cannot be converted surfaces as ErrInvalidKeyFormat.
package keys
