// Package audit provides a best-effort, append-only operation log.
//
// Every encrypt and keygen operation appends one JSON Lines entry to
// $XDG_STATE_HOME/matai/audit.jsonl (MATAI_STATE_DIR overrides the
// location). Entries record what was done, never key material: an encrypt
// entry carries the artifact ID, the input name and the recipient's public
// key fingerprint.
//
// Logging is deliberately fire-and-forget. A full disk or unwritable state
// directory must never turn a successful encryption into a failure, so Log
// drops the entry silently on any error.
package audit
