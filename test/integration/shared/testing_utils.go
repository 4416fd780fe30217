// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up isolated test
// environments, running the CLI, and capturing its output streams.
package shared

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/matai-dev/matai/cmd"
)

// SetupTestEnvironment isolates a test from the developer's real
// environment: config and state move to temp directories and the working
// directory becomes a fresh temp directory, restored on cleanup.
// Returns the working directory.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	t.Setenv("MATAI_CONFIG_DIR", t.TempDir())
	t.Setenv("MATAI_STATE_DIR", t.TempDir())

	workDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})
	return workDir
}

// RunCommand runs the real CLI with the given arguments.
func RunCommand(args ...string) error {
	cmd.ResetGlobalState()
	root := cmd.GetRootCmd()
	root.SetArgs(args)
	defer root.SetArgs(nil)
	return root.Execute()
}

// CaptureOutput captures stdout and stderr separately during function
// execution. The two streams matter independently here: stdout carries the
// artifact, stderr carries diagnostics, and nothing may cross over.
func CaptureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()

	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("Failed to create stdout pipe: %v", pipeErr)
	}
	stderrReader, stderrWriter, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("Failed to create stderr pipe: %v", pipeErr)
	}

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err = fn()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan, <-stderrChan, err
}
