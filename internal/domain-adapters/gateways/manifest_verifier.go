package gateways

import (
	"context"
	"fmt"

	"github.com/osg-htc/scriptgate/internal/external-adapters/gpg"
)

// ManifestVerifier checks the integrity of a dependency manifest before
// it is baked into the container image: SHA256 checksum and, when a key
// is provided, a detached GPG signature.
type ManifestVerifier struct {
	checksum *checksumVerifier
	gpg      *gpg.Verifier
}

// NewManifestVerifier creates a new manifest verifier
func NewManifestVerifier() *ManifestVerifier {
	return &ManifestVerifier{
		checksum: NewChecksumVerifier(),
		gpg:      gpg.NewVerifier(),
	}
}

// ImportKeyFromFile loads a public key used for signature verification
func (m *ManifestVerifier) ImportKeyFromFile(keyPath string) error {
	return m.gpg.ImportKeyFromFile(keyPath)
}

// ImportKeysFromURL loads all public keys from a published KEYS file
func (m *ManifestVerifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	return m.gpg.ImportKeysFromURL(ctx, keysURL)
}

// VerifySignature verifies a detached signature over the manifest
func (m *ManifestVerifier) VerifySignature(manifestPath, sigPath string) error {
	if err := m.gpg.VerifyManifestSignature(manifestPath, sigPath); err != nil {
		return fmt.Errorf("manifest signature: %w", err)
	}
	return nil
}

// VerifyChecksum verifies the manifest against an expected SHA256 digest
func (m *ManifestVerifier) VerifyChecksum(ctx context.Context, manifestPath, expectedSum string) error {
	if err := m.checksum.VerifyManifest(ctx, manifestPath, expectedSum); err != nil {
		return fmt.Errorf("manifest checksum: %w", err)
	}
	return nil
}

// VerifyChecksumFile verifies the manifest against a sha256sum-style file
func (m *ManifestVerifier) VerifyChecksumFile(ctx context.Context, manifestPath, sumPath string) error {
	if err := m.checksum.VerifyManifestWithSumFile(ctx, manifestPath, sumPath); err != nil {
		return fmt.Errorf("manifest checksum: %w", err)
	}
	return nil
}
