package services

import (
	"regexp"
	"strings"
)

// Maximum allowed OCR text length to prevent regex DoS
const maxOCRTextLength = 10000

var (
	// Set codes are 2-4 uppercase letters printed near the collector
	// number, e.g. "OGN", "SFD".
	setCodeRegex = regexp.MustCompile(`\b[A-Z]{2,4}\b`)

	// Collector numbers are 1-3 digits, optionally followed by the set
	// total, e.g. "002", "25/298".
	cardNumberRegex = regexp.MustCompile(`\b(\d{1,3})(?:\s*/\s*\d{1,3})?\b`)
)

// keywordVocabulary is the fixed set of ability keywords printed on cards.
// OCR fragments that exactly match one of these (case-insensitively) are
// recorded as keyword hits.
var keywordVocabulary = map[string]string{
	"quick":      "Quick",
	"guard":      "Guard",
	"overwhelm":  "Overwhelm",
	"elusive":    "Elusive",
	"fearsome":   "Fearsome",
	"lifesteal":  "Lifesteal",
	"challenger": "Challenger",
}

// ScanParse contains card information extracted from OCR text. Parsing is
// best-effort: an empty field means the text did not contain it, never an
// error.
type ScanParse struct {
	SetCode    string   `json:"set_code"`    // e.g. "SFD" if detected
	CardNumber string   `json:"card_number"` // zero-padded, e.g. "002" from "2/298"
	CardName   string   `json:"card_name"`
	Keywords   []string `json:"keywords"`
	Fragments  []string `json:"fragments"`
	RawText    string   `json:"raw_text"`
}

// ParseScanText extracts card information from individually OCR'd text
// fragments plus the concatenated full-text block.
func ParseScanText(fragments []string, fullText string) *ScanParse {
	// Truncate overly long text to prevent regex DoS
	if len(fullText) > maxOCRTextLength {
		fullText = fullText[:maxOCRTextLength]
	}

	result := &ScanParse{
		Fragments: fragments,
		RawText:   fullText,
	}

	joined := strings.Join(fragments, " ")
	if len(joined) > maxOCRTextLength {
		joined = joined[:maxOCRTextLength]
	}
	if strings.TrimSpace(joined) == "" {
		joined = fullText
	}

	// Set code: first 2-4 letter uppercase token in the fragments
	if match := setCodeRegex.FindString(joined); match != "" {
		result.SetCode = match
	}

	// Collector number: first 1-3 digit token, zero-padded to 3 digits
	if matches := cardNumberRegex.FindStringSubmatch(joined); len(matches) >= 2 {
		result.CardNumber = padCardNumber(matches[1])
	}

	result.CardName = extractCardName(fullText)
	result.Keywords = extractKeywords(fragments)

	return result
}

// extractCardName takes the first non-empty line of the full text, strips
// set code and collector number tokens, and keeps the residual only when
// more than 2 characters remain.
func extractCardName(fullText string) string {
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		residual := setCodeRegex.ReplaceAllString(line, "")
		residual = cardNumberRegex.ReplaceAllString(residual, "")
		residual = strings.TrimSpace(residual)
		if len(residual) > 2 {
			return residual
		}
		return ""
	}
	return ""
}

// extractKeywords returns the fragments whose normalized text exactly
// matches the keyword vocabulary, in canonical casing.
func extractKeywords(fragments []string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, fragment := range fragments {
		normalized := strings.ToLower(strings.TrimSpace(fragment))
		canonical, ok := keywordVocabulary[normalized]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		keywords = append(keywords, canonical)
	}
	return keywords
}

// padCardNumber left-pads a collector number with zeros to 3 digits, the
// format used in the card catalog.
func padCardNumber(number string) string {
	for len(number) < 3 {
		number = "0" + number
	}
	return number
}
