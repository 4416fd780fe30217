// Package errors provides typed error values for the Matai application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: Key material issues (ErrKeyNotFound, ErrInvalidKeyFormat)
//   - Crypto errors: Protocol failures (ErrUnwrapFailed, ErrDecryptFailed)
//   - Environment errors: Missing tools or files (ErrMissingDependency)
//   - Artifact errors: Malformed artifact documents (ErrMalformedArtifact)
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, err := os.Stat(path); os.IsNotExist(err) {
//	    return nil, errors.ErrKeyNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Encrypt(ctx, opts)
//	if errors.Is(err, merrors.ErrInvalidKeyFormat) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading recipient key %s: %w", path, errors.ErrInvalidKeyFormat)
package errors
