// Package gpg provides detached OpenPGP signing and verification of report files.
package gpg

import (
	"context"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer writes armored detached signatures using ProtonMail's go-crypto
// A maintained, modern fork of golang.org/x/crypto/openpgp
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile loads the first private key of an armored keyring and unlocks it with passphrase
func NewSignerFromFile(keyPath, passphrase string) (*Signer, error) {
	//nolint:gosec // G304: keyPath is user-provided signing key
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	var entity *openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return nil, fmt.Errorf("no private key found in %s", keyPath)
	}

	if err := entity.DecryptPrivateKeys([]byte(passphrase)); err != nil {
		return nil, fmt.Errorf("failed to unlock private key: %w", err)
	}

	return &Signer{entity: entity}, nil
}

// SignFile writes path + ".asc" holding an armored detached signature of path
func (s *Signer) SignFile(_ context.Context, path string) (string, error) {
	//nolint:gosec // G304: path is the report this tool just wrote
	data, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer data.Close()

	sigPath := path + ".asc"
	//nolint:gosec // G304: signature sits next to the signed report
	out, err := os.OpenFile(sigPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, data, nil); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to sign %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write signature: %w", err)
	}

	return sigPath, nil
}

// Fingerprint returns the signing key fingerprint in upper-case hex
func (s *Signer) Fingerprint() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.Fingerprint)
}
