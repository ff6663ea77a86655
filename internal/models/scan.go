package models

type MatchType string

const (
	MatchExact   MatchType = "EXACT"
	MatchFuzzy   MatchType = "FUZZY"
	MatchPartial MatchType = "PARTIAL"
)

// CardMatch is one identification candidate with its confidence score.
type CardMatch struct {
	Card       Card      `json:"card"`
	Confidence float64   `json:"confidence"`
	MatchType  MatchType `json:"match_type"`
}

// ScanResult is the response for a single card identification. Success is
// false when no candidate cleared any matching tier; that is a valid
// outcome, not an error.
type ScanResult struct {
	Success      bool        `json:"success"`
	BestMatch    *CardMatch  `json:"best_match,omitempty"`
	Alternatives []CardMatch `json:"alternatives"`
	SetCode      string      `json:"set_code,omitempty"`
	CardNumber   string      `json:"card_number,omitempty"`
	CardName     string      `json:"card_name,omitempty"`
	Keywords     []string    `json:"keywords,omitempty"`
	ImagePath    string      `json:"image_path,omitempty"`
	Message      string      `json:"message,omitempty"`
}

type ScanBulkResponse struct {
	Results   []ScanResult `json:"results"`
	Processed int          `json:"processed"`
	Matched   int          `json:"matched"`
}
