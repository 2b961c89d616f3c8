package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  sk-test-123  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "sk-test-123" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("sk-from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "api key", Value: "inline-ignored", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "sk-from-file" {
		t.Fatalf("expected file secret to win, got %q", secret)
	}
}

func TestLoadFailures(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected error when nothing is configured")
	}

	if _, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: empty}); err == nil {
		t.Fatalf("expected error for empty file")
	}
}
