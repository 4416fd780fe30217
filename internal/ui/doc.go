// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry meaning (Success, Error, Path, Code) rather than raw
// colors, so output degrades gracefully when color is unavailable: each
// formatter defines a plain-text fallback decoration used when NO_COLOR is
// set or the terminal cannot render color.
//
//	msg := ui.Success.Sprint("✓") + " Keypair generated: " + ui.Path.Sprint(pubPath)
package ui
