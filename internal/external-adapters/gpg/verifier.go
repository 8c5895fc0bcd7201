// Package gpg provides GPG signature verification for packaged manifests.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// sigMaxSize bounds signature reads; detached GPG signatures are
// typically under 1KB
const sigMaxSize = 10 * 1024

// keysMaxSize bounds KEYS file downloads; some projects publish large
// keyring files
const keysMaxSize = 10 * 1024 * 1024

const armorHeader = "-----BEGIN PGP SIGNATURE---"

// Verifier checks detached GPG signatures over manifest files (e.g. the
// pinned requirements manifest baked into the container image) using
// ProtonMail's go-crypto, a maintained fork of golang.org/x/crypto/openpgp.
// This lives in external-adapters to isolate the external dependency.
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// KeyCount returns the number of imported keys
func (v *Verifier) KeyCount() int {
	return len(v.keyring)
}

// ImportKeyFromFile imports a public key from a local file, accepting
// armored or binary keyrings
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Fall back to binary keyring format
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeysFromURL imports all keys from a published KEYS file, the
// convention used by projects that sign their release manifests
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, keysURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download KEYS file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("KEYS file download failed with status %d", resp.StatusCode)
	}

	entities, err := openpgp.ReadArmoredKeyRing(io.LimitReader(resp.Body, keysMaxSize))
	if err != nil {
		return fmt.Errorf("failed to parse KEYS file: %w", err)
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in KEYS file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifyManifestSignature verifies a detached signature file against a
// manifest. The signature may be armored (.asc) or binary (.sig).
func (v *Verifier) VerifyManifestSignature(manifestPath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, import a key first")
	}

	sigData, err := readBounded(sigPath, sigMaxSize)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}

	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be a valid GPG signature")
	}

	//nolint:gosec // G304: manifestPath is user-provided for verification
	manifest, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer manifest.Close()

	armored := len(sigData) >= len(armorHeader) && string(sigData[:len(armorHeader)]) == armorHeader

	var verifyErr error
	if armored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, manifest, bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, manifest, bytes.NewReader(sigData), nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

// readBounded reads a file, rejecting anything larger than limit
func readBounded(path string, limit int64) ([]byte, error) {
	//nolint:gosec // G304: path is user-provided
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file %s exceeds %d byte limit", path, limit)
	}

	return data, nil
}
