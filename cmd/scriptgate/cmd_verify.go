package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/osg-htc/scriptgate/internal/domain-adapters/gateways"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		manifest = fs.String("manifest", "requirements.txt", "Path to the dependency manifest")
		sig      = fs.String("signature", "", "Detached signature path (default <manifest>.asc)")
		key      = fs.String("key", "", "Armored public key file for signature verification")
		keysURL  = fs.String("keys-url", "", "URL of a published KEYS file to import")
		sum      = fs.String("sha256", "", "Expected SHA256 digest, or path to a .sha256 sum file")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptgate verify [options]

Verify the pinned dependency manifest before it is baked into the
container image. Checks a SHA256 digest and/or a detached GPG
signature, depending on which options are given.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  scriptgate verify --manifest requirements.txt --sha256 requirements.txt.sha256
  scriptgate verify --manifest requirements.txt --key release-key.asc
  scriptgate verify --manifest requirements.txt --keys-url https://example.org/KEYS
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *sum == "" && *key == "" && *keysURL == "" {
		fmt.Fprintf(os.Stderr, "Error: nothing to verify; provide --sha256, --key, or --keys-url\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeVerify(ctx, *manifest, *sig, *key, *keysURL, *sum); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Manifest verified: %s\n", *manifest)
}

func executeVerify(ctx context.Context, manifest, sig, key, keysURL, sum string) error {
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("failed to access manifest: %w", err)
	}

	verifier := gateways.NewManifestVerifier()

	if sum != "" {
		if looksLikeDigest(sum) {
			if err := verifier.VerifyChecksum(ctx, manifest, sum); err != nil {
				return err
			}
		} else {
			if err := verifier.VerifyChecksumFile(ctx, manifest, sum); err != nil {
				return err
			}
		}
		fmt.Printf("🔑 SHA256 checksum OK\n")
	}

	if key == "" && keysURL == "" {
		return nil
	}

	if key != "" {
		if err := verifier.ImportKeyFromFile(key); err != nil {
			return err
		}
	}
	if keysURL != "" {
		if err := verifier.ImportKeysFromURL(ctx, keysURL); err != nil {
			return err
		}
	}

	if sig == "" {
		sig = manifest + ".asc"
	}

	if err := verifier.VerifySignature(manifest, sig); err != nil {
		return err
	}
	fmt.Printf("🔐 GPG signature OK\n")

	return nil
}

// looksLikeDigest distinguishes an inline hex digest from a sum-file path
func looksLikeDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
