package workflows

import (
	"crypto/rsa"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	merrors "github.com/matai-dev/matai/internal/errors"
	"github.com/matai-dev/matai/internal/keys"
)

// cipherTool is the external tool every emitted artifact depends on.
const cipherTool = "openssl"

// lookPath is swapped out in tests to simulate a missing cipher tool.
var lookPath = exec.LookPath

// encryptInputs holds everything preflight validated and loaded, so the
// orchestrator never touches the filesystem again after validation.
type encryptInputs struct {
	publicKey  *rsa.PublicKey
	plaintext  []byte
	sourceName string
}

// preflightEncrypt validates every input of an encryption up front and
// aggregates all failures into one error. No cryptographic work happens,
// and no artifact is emitted, unless preflight passes in full.
//
// Matai encrypts in-process, but the artifact it emits decrypts with the
// openssl command line; refusing to encrypt without openssl on PATH keeps
// the original contract that a missing cipher tool fails early, and means
// the sender can always verify an artifact before shipping it.
func preflightEncrypt(opts EncryptOptions) (*encryptInputs, error) {
	var merr *multierror.Error
	inputs := &encryptInputs{}

	if _, err := lookPath(cipherTool); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%w: %s", merrors.ErrMissingDependency, cipherTool))
	}

	publicKey, err := keys.LoadPublicKey(opts.PublicKeyPath)
	if err != nil {
		merr = multierror.Append(merr, err)
	} else {
		inputs.publicKey = publicKey
	}

	switch {
	case opts.PlaintextData != nil:
		inputs.plaintext = opts.PlaintextData
		inputs.sourceName = "stdin"
	default:
		plaintext, err := os.ReadFile(opts.InputPath)
		if err != nil {
			if os.IsNotExist(err) {
				merr = multierror.Append(merr, fmt.Errorf("%w: %s", merrors.ErrFileNotFound, opts.InputPath))
			} else {
				merr = multierror.Append(merr, fmt.Errorf("failed to read %s: %w", opts.InputPath, err))
			}
		} else {
			inputs.plaintext = plaintext
			inputs.sourceName = filepath.Base(opts.InputPath)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return inputs, nil
}
