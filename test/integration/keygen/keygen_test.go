package keygen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matai-dev/matai/internal/keys"
	"github.com/matai-dev/matai/test/integration/shared"
)

// TestKeygenDefaultName tests that bare `matai keygen` writes key.PRIVATE
// and key.pub in the working directory.
func TestKeygenDefaultName(t *testing.T) {
	workDir := shared.SetupTestEnvironment(t)

	_, stderr, err := shared.CaptureOutput(t, func() error {
		return shared.RunCommand("keygen")
	})
	if err != nil {
		t.Fatalf("keygen failed: %v\nstderr:\n%s", err, stderr)
	}

	privatePath := filepath.Join(workDir, "key.PRIVATE")
	info, err := os.Stat(privatePath)
	if err != nil {
		t.Fatalf("private key not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("private key mode = %o, want 0600", perm)
	}

	publicPath := filepath.Join(workDir, "key.pub")
	data, err := os.ReadFile(publicPath)
	if err != nil {
		t.Fatalf("public key not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "ssh-rsa ") {
		t.Errorf("public key is not a single-line OpenSSH key: %q", data)
	}
	if _, err := keys.ParsePublicKey(data); err != nil {
		t.Errorf("written public key does not parse: %v", err)
	}

	if !strings.Contains(stderr, "key.PRIVATE") || !strings.Contains(stderr, "key.pub") {
		t.Errorf("expected both file names in output, got:\n%s", stderr)
	}
}

// TestKeygenNamedStem tests that `matai keygen bob` uses the given stem.
func TestKeygenNamedStem(t *testing.T) {
	workDir := shared.SetupTestEnvironment(t)

	_, stderr, err := shared.CaptureOutput(t, func() error {
		return shared.RunCommand("keygen", "bob")
	})
	if err != nil {
		t.Fatalf("keygen failed: %v\nstderr:\n%s", err, stderr)
	}

	for _, name := range []string{"bob.PRIVATE", "bob.pub"} {
		if _, err := os.Stat(filepath.Join(workDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

// TestKeygenRefusesOverwrite tests that existing keys survive a second
// keygen unless --force is given.
func TestKeygenRefusesOverwrite(t *testing.T) {
	workDir := shared.SetupTestEnvironment(t)

	_, _, err := shared.CaptureOutput(t, func() error {
		return shared.RunCommand("keygen", "bob")
	})
	if err != nil {
		t.Fatalf("first keygen failed: %v", err)
	}

	before, err := os.ReadFile(filepath.Join(workDir, "bob.pub"))
	if err != nil {
		t.Fatalf("failed to read public key: %v", err)
	}

	_, _, err = shared.CaptureOutput(t, func() error {
		return shared.RunCommand("keygen", "bob")
	})
	if err == nil {
		t.Fatal("second keygen should have failed without --force")
	}

	after, err := os.ReadFile(filepath.Join(workDir, "bob.pub"))
	if err != nil {
		t.Fatalf("failed to re-read public key: %v", err)
	}
	if string(before) != string(after) {
		t.Error("public key changed despite the refusal")
	}

	_, _, err = shared.CaptureOutput(t, func() error {
		return shared.RunCommand("keygen", "bob", "--force")
	})
	if err != nil {
		t.Errorf("keygen --force failed: %v", err)
	}
}
