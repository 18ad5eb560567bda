package cases

import (
	"fmt"
	"io"
	"regexp"
	"time"
)

const (
	caseNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	caseNumberSuffix   = 6
	caseNumberAttempts = 3
)

// CaseNumberPattern matches every number NewCaseNumber produces.
var CaseNumberPattern = regexp.MustCompile(`^KES/\d{4}/[A-Z0-9]{6}$`)

// NewCaseNumber returns "KES/<year>/<6 chars>" with the suffix drawn from
// random. Uniqueness is enforced by the store, not here.
func NewCaseNumber(now time.Time, random io.Reader) (string, error) {
	buf := make([]byte, caseNumberSuffix)
	suffix := make([]byte, caseNumberSuffix)

	// Bytes at or above limit are discarded so each character is equally likely.
	const limit = 256 - 256%len(caseNumberAlphabet)

	for i := 0; i < caseNumberSuffix; {
		if _, err := io.ReadFull(random, buf); err != nil {
			return "", fmt.Errorf("read case number entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			suffix[i] = caseNumberAlphabet[int(b)%len(caseNumberAlphabet)]
			i++
			if i == caseNumberSuffix {
				break
			}
		}
	}

	return fmt.Sprintf("KES/%04d/%s", now.Year(), suffix), nil
}
