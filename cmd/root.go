package cmd

import (
	logger "github.com/matai-dev/matai/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "matai",
		Short: "Matai - encrypt a file for one recipient as a self-decrypting artifact",
		Long: `Matai encrypts a file for a single recipient and emits a self-contained
decryption artifact: a shell document carrying the encrypted payload, the
RSA-wrapped session key, and the routine that recovers the plaintext.

The recipient needs no Matai installation. They run the artifact with
their private key as its only argument, using nothing but a POSIX shell
and the openssl command-line tool:

  sh artifact.sh /path/to/key.PRIVATE > plaintext

Usage:
  matai encrypt PUBKEY FILE > artifact.sh
  matai keygen [NAME]

Run 'matai help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing matai with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(versionCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetKeygenCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
