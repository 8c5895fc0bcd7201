package gateways

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVerifyManifest tests SHA256 checksum verification of a manifest
func TestVerifyManifest(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "requirements.txt")

	content := []byte("ldap3==2.9.1\nrequests==2.31.0\n")
	if err := os.WriteFile(manifest, content, 0600); err != nil {
		t.Fatalf("Failed to create manifest: %v", err)
	}

	verifier := NewChecksumVerifier()

	actualSum, err := verifier.CalculateChecksum(manifest)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	if len(actualSum) != 64 {
		t.Errorf("CalculateChecksum() returned checksum length = %d, want 64 (SHA256 hex)", len(actualSum))
	}

	t.Run("valid checksum", func(t *testing.T) {
		if err := verifier.VerifyManifest(context.Background(), manifest, actualSum); err != nil {
			t.Errorf("VerifyManifest() with valid checksum error = %v", err)
		}
	})

	t.Run("case-insensitive digest", func(t *testing.T) {
		if err := verifier.VerifyManifest(context.Background(), manifest, strings.ToUpper(actualSum)); err != nil {
			t.Errorf("VerifyManifest() with uppercase digest error = %v", err)
		}
	})

	t.Run("invalid checksum", func(t *testing.T) {
		invalidSum := "0000000000000000000000000000000000000000000000000000000000000000"
		if err := verifier.VerifyManifest(context.Background(), manifest, invalidSum); err == nil {
			t.Error("VerifyManifest() with invalid checksum should return error")
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		if err := verifier.VerifyManifest(context.Background(), "/nonexistent/requirements.txt", actualSum); err == nil {
			t.Error("VerifyManifest() with non-existent file should return error")
		}
	})
}

func TestVerifyManifestWithSumFile(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "requirements.txt")
	if err := os.WriteFile(manifest, []byte("ldap3==2.9.1\n"), 0600); err != nil {
		t.Fatalf("Failed to create manifest: %v", err)
	}

	verifier := NewChecksumVerifier()
	digest, err := verifier.CalculateChecksum(manifest)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	t.Run("sha256sum format", func(t *testing.T) {
		sumPath := filepath.Join(tmpDir, "requirements.txt.sha256")
		if err := os.WriteFile(sumPath, []byte(digest+"  requirements.txt\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := verifier.VerifyManifestWithSumFile(context.Background(), manifest, sumPath); err != nil {
			t.Errorf("VerifyManifestWithSumFile() error = %v", err)
		}
	})

	t.Run("empty sum file", func(t *testing.T) {
		sumPath := filepath.Join(tmpDir, "empty.sha256")
		if err := os.WriteFile(sumPath, []byte(""), 0600); err != nil {
			t.Fatal(err)
		}

		if err := verifier.VerifyManifestWithSumFile(context.Background(), manifest, sumPath); err == nil {
			t.Error("VerifyManifestWithSumFile() with empty sum file should return error")
		}
	})

	t.Run("truncated digest", func(t *testing.T) {
		sumPath := filepath.Join(tmpDir, "short.sha256")
		if err := os.WriteFile(sumPath, []byte("abc123  requirements.txt\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := verifier.VerifyManifestWithSumFile(context.Background(), manifest, sumPath); err == nil {
			t.Error("VerifyManifestWithSumFile() with truncated digest should return error")
		}
	})
}
