// Package extract derives structured receipt fields from raw OCR text.
// Every extraction is independent and nullable; absence of a marker in the
// text yields nil rather than an error.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"receiptflow/internal/domain"
)

const entityNameMaxRunes = 100

var (
	// Thai tax-identifier label, with or without the อากร qualifier,
	// followed by exactly 13 digits. The label is matched case-sensitively.
	taxIDPattern = regexp.MustCompile(`เลขประจำตัวผู้เสียภาษี(?:อากร)?:?\s*([0-9]{13})`)

	// RECEIPT token optionally followed by a hyphen or space and alphanumerics.
	receiptCodePattern = regexp.MustCompile(`(?i)\bRECEIPT[-\s]?[A-Z0-9]+\b`)

	// Thai "number:" label followed by the reference up to the next whitespace.
	receiptNumberPattern = regexp.MustCompile(`(?i)เลขที่[:\s]*([A-Za-z0-9\-_/\\]+)`)

	// Fallback: first standalone 3-digit token anywhere in the text.
	threeDigitPattern = regexp.MustCompile(`\b\d{3}\b`)
)

// Fields runs all four extractions over text. One timestamp (the time of the
// extraction pass) is attached to the whole result.
func Fields(text string) domain.ExtractedFields {
	return domain.ExtractedFields{
		TaxID:           TaxID(text),
		Receipt:         ReceiptCode(text),
		Entity:          EntityName(text),
		NumberOfReceipt: ReceiptNumber(text),
		Timeprocess:     time.Now().UTC(),
	}
}

// TaxID returns the 13-digit tax identifier following the Thai tax label,
// or nil when the label is absent.
func TaxID(text string) *string {
	m := taxIDPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &m[1]
}

// ReceiptCode returns the matched RECEIPT token verbatim, or nil.
func ReceiptCode(text string) *string {
	m := receiptCodePattern.FindString(text)
	if m == "" {
		return nil
	}
	m = strings.TrimSpace(m)
	return &m
}

// EntityName returns the first line containing the Thai company marker whose
// trimmed length is under 100 characters. Lines at or over the limit do not
// qualify even when they carry the marker.
func EntityName(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "บริษัท") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) < entityNameMaxRunes {
			return &trimmed
		}
	}
	return nil
}

// ReceiptNumber returns the reference following the Thai "number:" label,
// falling back to the first standalone 3-digit token. The labeled value wins
// when both are present.
func ReceiptNumber(text string) *string {
	if m := receiptNumberPattern.FindStringSubmatch(text); m != nil {
		v := strings.TrimSpace(m[1])
		return &v
	}
	if m := threeDigitPattern.FindString(text); m != "" {
		return &m
	}
	return nil
}
