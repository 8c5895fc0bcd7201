package gpg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_InvalidKey(t *testing.T) {
	v := NewVerifier()
	keyPath := filepath.Join(t.TempDir(), "invalid.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.ImportKeyFromFile(keyPath)
	if err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read key") {
		t.Errorf("Expected 'failed to read key' error, got: %v", err)
	}
	if v.KeyCount() != 0 {
		t.Errorf("KeyCount() = %d, want 0 after failed import", v.KeyCount())
	}
}

func TestVerifier_ImportKeysFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewVerifier()
	err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS")
	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Expected status error, got: %v", err)
	}
}

func TestVerifier_ImportKeysFromURL_UnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not a keyring"))
	}))
	defer server.Close()

	v := NewVerifier()
	err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS")
	if err == nil {
		t.Fatal("Expected error for unparseable KEYS file, got nil")
	}
}

func TestVerifier_VerifyManifestSignature_NoKeys(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "requirements.txt")
	sig := filepath.Join(tmpDir, "requirements.txt.asc")
	if err := os.WriteFile(manifest, []byte("ldap3==2.9.1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sig, []byte("-----BEGIN PGP SIGNATURE-----\n...\n"), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifier()
	err := v.VerifyManifestSignature(manifest, sig)
	if err == nil {
		t.Fatal("Expected error with empty keyring, got nil")
	}
	if !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

func TestVerifier_VerifyManifestSignature_MissingSignature(t *testing.T) {
	v := NewVerifier()
	// Put something in the keyring so the missing-file path is reached.
	v.keyring = append(v.keyring, nil)

	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(manifest, []byte("x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyManifestSignature(manifest, "/nonexistent/requirements.txt.asc")
	if err == nil {
		t.Fatal("Expected error for missing signature file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read signature file") {
		t.Errorf("Expected signature read error, got: %v", err)
	}
}

func TestVerifier_VerifyManifestSignature_TinySignature(t *testing.T) {
	v := NewVerifier()
	v.keyring = append(v.keyring, nil)

	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "requirements.txt")
	sig := filepath.Join(tmpDir, "requirements.txt.sig")
	if err := os.WriteFile(manifest, []byte("x\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sig, []byte("tiny"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifyManifestSignature(manifest, sig)
	if err == nil {
		t.Fatal("Expected error for undersized signature, got nil")
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Errorf("Expected 'too small' error, got: %v", err)
	}
}
