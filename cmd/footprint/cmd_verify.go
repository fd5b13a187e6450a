package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	adapters "github.com/ochairo/footprint/internal/domain-adapters/gateways"
	"github.com/ochairo/footprint/internal/external-adapters/gpg"
)

type verifyOptions struct {
	keyPaths     []string
	sigPath      string
	checksumPath string
}

func newVerifyCmd(a *app) *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify <report>",
		Short: "Verify the checksum and signature of a build report",
		Long: `Verify a written build report.

The checksum file (<report>.sha256) is checked when present. The detached
signature (<report>.asc) is checked when --key is given.`,
		Example: `  footprint verify BuildReports/build_metrics.json
  footprint verify BuildReports/build_metrics.json --key ci-key.pub.asc
  footprint verify build_metrics.json --sig build_metrics.json.sig --key ci-key.gpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.keyPaths, "key", nil, "public key file, armored or binary (repeatable)")
	f.StringVar(&opts.sigPath, "sig", "", "signature file (default is <report>.asc)")
	f.StringVar(&opts.checksumPath, "checksum", "", "checksum file (default is <report>"+adapters.ChecksumSuffix+")")

	return cmd
}

func (a *app) runVerify(ctx context.Context, reportPath string, opts verifyOptions) error {
	verified := 0
	failed := 0

	checksumPath := opts.checksumPath
	if checksumPath == "" && fileExists(reportPath+adapters.ChecksumSuffix) {
		checksumPath = reportPath + adapters.ChecksumSuffix
	}

	a.formatter.PrintInfo(fmt.Sprintf("🔍 Verifying %s\n", filepath.Base(reportPath)))

	// Verify checksum
	if checksumPath != "" {
		a.formatter.PrintInfo("📋 Verifying checksum...")
		if err := adapters.NewReportChecksum().VerifyChecksum(ctx, reportPath, checksumPath); err != nil {
			a.formatter.PrintInfo(fmt.Sprintf("❌ Checksum verification FAILED: %v\n", err))
			failed++
		} else {
			a.formatter.PrintInfo("✅ Checksum verified\n")
			verified++
		}
	}

	// Verify GPG signature
	if len(opts.keyPaths) > 0 {
		a.formatter.PrintInfo("🔐 Verifying GPG signature...")
		fingerprint, keys, err := verifySignature(reportPath, opts.sigPath, opts.keyPaths)
		if err != nil {
			a.formatter.PrintInfo(fmt.Sprintf("❌ GPG signature verification FAILED: %v\n", err))
			failed++
		} else {
			a.formatter.PrintInfo(fmt.Sprintf("✅ GPG signature verified (key %s, keyring size %d)\n", fingerprint, keys))
			verified++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d verification checks failed", failed)
	}

	if verified == 0 {
		return fmt.Errorf("no verification checks performed (no %s file found and no --key given)", adapters.ChecksumSuffix)
	}

	return nil
}

// verifySignature checks the detached signature and returns the signer fingerprint and how many
// keys were imported
func verifySignature(reportPath, sigPath string, keyPaths []string) (string, int, error) {
	if sigPath == "" {
		sigPath = reportPath + ".asc"
	}
	if !fileExists(sigPath) {
		return "", 0, fmt.Errorf("signature %s not found", sigPath)
	}

	verifier := gpg.NewVerifier()
	for _, k := range keyPaths {
		if err := verifier.ImportKeyFromFile(k); err != nil {
			return "", 0, fmt.Errorf("failed to import %s: %w", k, err)
		}
	}

	fingerprint, err := verifier.VerifyFile(reportPath, sigPath)
	return fingerprint, verifier.GetKeyringSize(), err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
