// Package voucher generates exchange voucher codes.
package voucher

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"time"
)

const (
	// CodePrefix starts every exchange code
	CodePrefix = "EX"

	// CodeLength is the length of a generated code: prefix, YYYYMMDD and six hex digits
	CodeLength = len(CodePrefix) + 8 + 6

	randomBytes = 3
)

// Generator produces candidate exchange codes. Uniqueness is enforced by the
// caller against storage.
type Generator interface {
	Generate(now time.Time) string
}

// RandomGenerator builds codes from a cryptographically secure source
type RandomGenerator struct {
	source io.Reader
}

// NewGenerator returns a Generator backed by crypto/rand
func NewGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

// Generate returns EX + now as YYYYMMDD + six uppercase hex digits, e.g.
// EX20260126A1B2C3
func (g *RandomGenerator) Generate(now time.Time) string {
	var buf [randomBytes]byte
	if _, err := io.ReadFull(g.source, buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("voucher: reading random bytes: " + err.Error())
	}

	var b strings.Builder
	b.Grow(CodeLength)
	b.WriteString(CodePrefix)
	b.WriteString(now.Format("20060102"))
	b.WriteString(strings.ToUpper(hex.EncodeToString(buf[:])))
	return b.String()
}

// Normalize canonicalizes user-entered codes for lookup
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
