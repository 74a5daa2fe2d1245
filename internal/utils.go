package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateRunID creates an ID for one extraction run over root.
// Format: epochMillis_md5(root)[:8]
func GenerateRunID(root string) string {
	epochMillis := time.Now().UnixMilli()

	hash := md5.Sum([]byte(root))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
