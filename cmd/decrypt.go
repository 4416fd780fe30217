package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matai-dev/matai/internal/ui"
)

// decryptCmd always fails: decryption is deliberately not a matai
// capability. The artifact carries its own decryption routine so that
// recipients need no matai installation, and keeping decryption out of
// the tool keeps that promise honest.
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Not supported; artifacts decrypt themselves",
	Long: `Matai does not decrypt. Every artifact it emits carries its own
decryption routine, so the recipient runs the artifact, not matai:

  sh artifact.sh /path/to/key.PRIVATE > plaintext

Requirements on the recipient's side are a POSIX shell and openssl.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("matai does not decrypt: run the artifact itself, e.g. %s",
			ui.Code.Sprint("sh artifact.sh /path/to/key.PRIVATE > plaintext"))
	},
}
