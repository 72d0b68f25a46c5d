package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"bostonfood/internal/models"
)

// Fingerprint derives a stable digest from the fields that identify a
// violation: business name, address, code and date. Name and address compare
// case- and whitespace-insensitively; a digest of the normalized fields keeps
// the value identical across runs and machines, unlike a process-local hash.
func Fingerprint(v models.Violation) string {
	h := sha256.New()
	for _, part := range []string{
		folded(v.BusinessName),
		folded(v.Address),
		trimmed(v.ViolationCode),
		trimmed(v.Date),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0x1f}) // field separator, keeps ("ab","c") != ("a","bc")
	}
	return hex.EncodeToString(h.Sum(nil))
}

func folded(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
