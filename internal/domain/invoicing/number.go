package invoicing

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FallbackInvoiceNumber is returned when no client is attached
const FallbackInvoiceNumber = "INV-0001"

// GenerateNumber derives a human-readable invoice number from the client's
// company name, the calendar year of now, and the current selection size:
// "{prefix}-{year}-{sequence}". The prefix is the first four characters of
// the company name with whitespace removed, uppercased; shorter names use
// what exists. The sequence is selectionCount+1, zero-padded to four digits.
//
// The function is total: it always returns a string. It is not a persisted
// monotonic counter - two drafts for the same client with the same
// selection count produce the same number. An operator override stored on
// the draft bypasses generation entirely.
func GenerateNumber(client *Client, selectionCount int, now time.Time) string {
	if client == nil {
		return FallbackInvoiceNumber
	}

	var b strings.Builder
	runes := 0
	for _, r := range client.CompanyName {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		runes++
		if runes == 4 {
			break
		}
	}

	return fmt.Sprintf("%s-%d-%04d", b.String(), now.Year(), selectionCount+1)
}
