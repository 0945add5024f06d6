package odbc

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	apperrors "appboot/errors"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// VerifyKeyFingerprint parses an ASCII-armored public key and compares the
// primary-key fingerprint of each entity against want. Fingerprints are
// compared case-insensitively with any spaces removed.
func VerifyKeyFingerprint(armoredKey []byte, want string) error {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(armoredKey))
	if err != nil {
		return fmt.Errorf("failed to parse signing key: %w", err)
	}
	if len(entities) == 0 {
		return fmt.Errorf("signing key contains no keys")
	}

	wantNormalized := normalizeFingerprint(want)
	for _, entity := range entities {
		got := strings.ToUpper(hex.EncodeToString(entity.PrimaryKey.Fingerprint))
		if got != wantNormalized {
			return &apperrors.KeyFingerprintMismatchError{Want: wantNormalized, Got: got}
		}
		slog.Debug("Signing key fingerprint verified: " + got)
	}

	return nil
}

func normalizeFingerprint(fingerprint string) string {
	return strings.ToUpper(strings.ReplaceAll(fingerprint, " ", ""))
}
