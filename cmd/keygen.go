package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matai-dev/matai/internal/ui"
	"github.com/matai-dev/matai/internal/utils"
	"github.com/matai-dev/matai/internal/workflows"
)

var keygenForce bool

var keygenCmd = &cobra.Command{
	Use:   "keygen [NAME]",
	Short: "Generates a recipient RSA keypair",
	Long: `Generates an RSA keypair for receiving encrypted artifacts and writes
NAME.PRIVATE (the private key, PEM, never share this) and NAME.pub (the
public key, single OpenSSH line, hand this to senders). NAME defaults
to "key".

The private key is written without a passphrase: the decryption artifact
must be able to use it non-interactively.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("superfluous arguments: %s", strings.Join(args[1:], " "))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		spinner, cleanup := startSpinner("Generating RSA keypair...", verbose)
		defer cleanup()

		opts := workflows.KeygenOptions{Force: keygenForce}
		if len(args) == 1 {
			opts.Name = args[0]
		}

		result, err := workflows.Keygen(context.Background(), opts)
		if err != nil {
			return Logger.ErrorfAndReturn("Key generation failed: %v", err)
		}
		Logger.Infof("Wrote keypair files:%s",
			utils.FormatPaths([]string{result.PrivateKeyPath, result.PublicKeyPath}))

		finalMessage := ui.Success.Sprint("✓") + " Generated " +
			fmt.Sprintf("%d-bit RSA keypair ", result.Bits) + ui.Highlight.Sprint(result.Fingerprint) + "\n" +
			ui.Info.Sprint("→") + " Private key: " + ui.Path.Sprint(result.PrivateKeyPath) +
			" " + ui.Warning.Sprint("(never share this file)") + "\n" +
			ui.Info.Sprint("→") + " Public key:  " + ui.Path.Sprint(result.PublicKeyPath) +
			" (give this to anyone who should encrypt for you)"
		spinner.FinalMSG = finalMessage
		return nil
	},
}

func init() {
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "overwrite existing key files")
}

// resetKeygenCommandState resets the keygen command flags for testing.
func resetKeygenCommandState() {
	keygenForce = false
}
