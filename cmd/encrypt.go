package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matai-dev/matai/internal/ui"
	"github.com/matai-dev/matai/internal/utils"
	"github.com/matai-dev/matai/internal/workflows"
)

var encryptOutputPath string

var encryptCmd = &cobra.Command{
	Use:   "encrypt PUBKEY FILE",
	Short: "Encrypts a file for a recipient and emits the decryption artifact",
	Long: `Encrypts FILE for the holder of the private key matching PUBKEY and
writes a self-contained decryption artifact to stdout (or to --output).

PUBKEY is the recipient's RSA public key, as a single-line OpenSSH file
(the format keygen produces) or a PEM file. FILE of '-' reads the
plaintext from stdin.

The artifact is a shell document. The recipient decrypts with:

  sh artifact.sh /path/to/key.PRIVATE > plaintext`,
	Args: validateEncryptArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		opts := workflows.EncryptOptions{
			PublicKeyPath: args[0],
			InputPath:     args[1],
		}
		if args[1] == "-" {
			Logger.Debugf("Reading plaintext from stdin")
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read plaintext from stdin: %v", err)
			}
			opts.InputPath = ""
			opts.PlaintextData = data
		}

		// Spin only when the artifact has somewhere else to go; a spinner
		// is stderr noise when stdout is being piped into a file anyway.
		if encryptOutputPath != "" {
			spinner, cleanup := startSpinner("Encrypting "+args[1]+"...", verbose)
			defer cleanup()

			result, err := workflows.Encrypt(context.Background(), opts)
			if err != nil {
				return Logger.ErrorfAndReturn("Encryption failed: %v", err)
			}

			if err := os.WriteFile(encryptOutputPath, []byte(result.Artifact), 0644); err != nil {
				return Logger.ErrorfAndReturn("Failed to write artifact to %s: %v", encryptOutputPath, err)
			}

			finalMessage := ui.Success.Sprint("✓") + " Encrypted " + ui.Path.Sprint(result.SourceName) +
				" for " + ui.Highlight.Sprint(result.RecipientFingerprint) + "\n" +
				ui.Info.Sprint("→") + " Artifact written to " + ui.Path.Sprint(encryptOutputPath) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("chmod +x "+encryptOutputPath) +
				" to make it directly executable"
			spinner.FinalMSG = finalMessage
			return nil
		}

		result, err := workflows.Encrypt(context.Background(), opts)
		if err != nil {
			return Logger.ErrorfAndReturn("Encryption failed: %v", err)
		}

		Logger.Infof("Encrypted %d bytes from %s for %s",
			result.PlaintextBytes, result.SourceName, result.RecipientFingerprint)
		fmt.Print(result.Artifact)
		return nil
	},
}

// validateEncryptArgs names what is missing or extra instead of cobra's
// generic count message. Argument validation happens before any key is
// read or any random byte is drawn.
func validateEncryptArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("missing arguments: PUBKEY and FILE")
	case len(args) == 1:
		return fmt.Errorf("missing argument: FILE")
	case len(args) > 2:
		return fmt.Errorf("superfluous arguments: %s", strings.Join(args[2:], " "))
	}
	return nil
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptOutputPath, "output", "o", "", "write the artifact to a file instead of stdout")
}

// resetEncryptCommandState resets the encrypt command flags for testing.
func resetEncryptCommandState() {
	encryptOutputPath = ""
}
