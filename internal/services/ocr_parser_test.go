package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseScanText(t *testing.T) {
	tests := []struct {
		name           string
		fragments      []string
		fullText       string
		wantSetCode    string
		wantCardNumber string
		wantCardName   string
		wantKeywords   []string
	}{
		{
			name:           "set code and plain number",
			fragments:      []string{"Darius", "OGN 045"},
			fullText:       "Darius\nOGN 045",
			wantSetCode:    "OGN",
			wantCardNumber: "045",
			wantCardName:   "Darius",
		},
		{
			name:           "number with set total",
			fragments:      []string{"Sunken Temple", "SFD", "2/298"},
			fullText:       "Sunken Temple\nSFD 2/298",
			wantSetCode:    "SFD",
			wantCardNumber: "002",
			wantCardName:   "Sunken Temple",
		},
		{
			name:           "keywords picked from vocabulary",
			fragments:      []string{"Vanguard Bannerman", "Guard", "overwhelm", "when played"},
			fullText:       "Vanguard Bannerman",
			wantCardName:   "Vanguard Bannerman",
			wantKeywords:   []string{"Guard", "Overwhelm"},
		},
		{
			name:         "duplicate keywords deduplicated",
			fragments:    []string{"Quick", "quick", "QUICK"},
			fullText:     "",
			wantKeywords: []string{"Quick"},
		},
		{
			name:           "empty fragments fall back to full text",
			fragments:      nil,
			fullText:       "Annie\nNOX 12",
			wantSetCode:    "NOX",
			wantCardNumber: "012",
			wantCardName:   "Annie",
		},
		{
			name:           "first line is set line, name too short after stripping",
			fragments:      []string{"OGN 1"},
			fullText:       "OGN 1\nDarius",
			wantSetCode:    "OGN",
			wantCardNumber: "001",
			wantCardName:   "",
		},
		{
			name:      "no recognizable tokens",
			fragments: []string{"..", "--"},
			fullText:  "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScanText(tt.fragments, tt.fullText)
			if got.SetCode != tt.wantSetCode {
				t.Errorf("SetCode = %q, want %q", got.SetCode, tt.wantSetCode)
			}
			if got.CardNumber != tt.wantCardNumber {
				t.Errorf("CardNumber = %q, want %q", got.CardNumber, tt.wantCardNumber)
			}
			if got.CardName != tt.wantCardName {
				t.Errorf("CardName = %q, want %q", got.CardName, tt.wantCardName)
			}
			if !reflect.DeepEqual(got.Keywords, tt.wantKeywords) {
				t.Errorf("Keywords = %v, want %v", got.Keywords, tt.wantKeywords)
			}
		})
	}
}

func TestParseScanTextTruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", maxOCRTextLength+500)
	got := ParseScanText(nil, long)
	if len(got.RawText) != maxOCRTextLength {
		t.Errorf("RawText length = %d, want %d", len(got.RawText), maxOCRTextLength)
	}
}

func TestPadCardNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "002"},
		{"45", "045"},
		{"298", "298"},
	}
	for _, tt := range tests {
		if got := padCardNumber(tt.in); got != tt.want {
			t.Errorf("padCardNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
