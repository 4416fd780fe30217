// Package logger provides leveled logging for Matai CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Because `matai encrypt` writes the decryption artifact to stdout,
// every log line goes to stderr so diagnostics can never corrupt an
// artifact captured with shell redirection.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()            // Shown with --verbose or --debug
//	Logger.Debugf()           // Shown only with --debug
//	Logger.Warnf()            // Shown with --verbose or --debug
//	Logger.WarnfAlways()      // Always shown (critical warnings)
//	Logger.Errorf()           // Always shown
//	Logger.ErrorfAndReturn()  // Logs and returns the error
//
// Commands create a logger in their PersistentPreRun from the --verbose and
// --debug flags and pass it to internal functions.
package logger
