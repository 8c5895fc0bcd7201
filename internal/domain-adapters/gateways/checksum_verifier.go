package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// checksumVerifier verifies the pinned dependency manifest shipped into
// the container image. Pure Go - no external sha256sum binary needed.
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyManifest verifies a manifest file's SHA256 checksum against an
// expected hex digest
func (v *checksumVerifier) VerifyManifest(_ context.Context, manifestPath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(manifestPath)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", manifestPath, expectedSum, actualSum)
	}

	return nil
}

// VerifyManifestWithSumFile verifies a manifest against a sha256sum-style
// sum file ("<hex digest>  <filename>"); only the digest field is used
func (v *checksumVerifier) VerifyManifestWithSumFile(ctx context.Context, manifestPath, sumPath string) error {
	//nolint:gosec // G304: sum file path is user-provided
	data, err := os.ReadFile(sumPath)
	if err != nil {
		return fmt.Errorf("failed to read sum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return fmt.Errorf("sum file %s is empty", sumPath)
	}

	expected := fields[0]
	if len(expected) != sha256.Size*2 {
		return fmt.Errorf("sum file %s does not contain a SHA256 digest", sumPath)
	}

	return v.VerifyManifest(ctx, manifestPath, expected)
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(path string) (string, error) {
	//nolint:gosec // G304: file path is user-provided for checksum calculation
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
