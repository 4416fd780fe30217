// Package artifact serializes a wrapped session key and an encrypted
// payload into a self-contained decryption artifact.
//
// The artifact is a POSIX shell document. Its comment body carries two
// uniquely delimited base64 blocks (the wrapped key and the payload); its
// executable tail extracts those blocks and reverses the protocol with
// openssl, taking the recipient's private key path as its only argument.
// Block content lines are always "# " plus base64 alphabet characters, so
// the delimiter lines can never occur inside embedded data.
//
// Building goes through a record plus text/template, never string pasting,
// and extraction is exact marker matching, so a block written by Build is
// always recovered losslessly, both by ExtractWrappedKey / ExtractPayload
// and by the sed pipeline inside the artifact itself.
package artifact
