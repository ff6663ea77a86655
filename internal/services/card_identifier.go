package services

import (
	"sort"
	"strings"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

const (
	// maxMatches caps how many candidates each tier may return
	maxMatches = 5
	// nameMatchThreshold is the minimum similarity for a name candidate
	nameMatchThreshold = 0.6
	// fuzzyMatchThreshold separates FUZZY from PARTIAL name matches
	fuzzyMatchThreshold = 0.9
	// setOnlyConfidence is the fixed confidence for set-code-only matches
	setOnlyConfidence = 0.5
)

// IdentifyCard resolves the most likely catalog entries for a parsed scan.
// Matching is tiered: an exact set code + collector number hit wins
// outright; otherwise candidates are scored by name similarity; as a last
// resort cards from the detected set are offered. An empty result means no
// identification was possible and is not an error.
func IdentifyCard(parse *ScanParse, catalog []models.Card) []models.CardMatch {
	if parse == nil || len(catalog) == 0 {
		return nil
	}

	// Tier 1: exact set code + collector number lookup
	if parse.SetCode != "" && parse.CardNumber != "" {
		for i := range catalog {
			if strings.EqualFold(catalog[i].SetCode, parse.SetCode) &&
				strings.EqualFold(catalog[i].CardNumber, parse.CardNumber) {
				return []models.CardMatch{{
					Card:       catalog[i],
					Confidence: 1.0,
					MatchType:  models.MatchExact,
				}}
			}
		}
	}

	var matches []models.CardMatch

	// Tier 2: fuzzy name matching against the whole catalog
	if parse.CardName != "" {
		parsedName := strings.ToLower(parse.CardName)
		for i := range catalog {
			score := Similarity(strings.ToLower(catalog[i].Name), parsedName)
			if score < nameMatchThreshold {
				continue
			}
			matchType := models.MatchPartial
			if score >= fuzzyMatchThreshold {
				matchType = models.MatchFuzzy
			}
			matches = append(matches, models.CardMatch{
				Card:       catalog[i],
				Confidence: score,
				MatchType:  matchType,
			})
		}
		// Stable sort keeps catalog order for equal scores
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Confidence > matches[j].Confidence
		})
		if len(matches) > maxMatches {
			matches = matches[:maxMatches]
		}
	}

	// Tier 3: set code only, when nothing else matched
	if len(matches) == 0 && parse.SetCode != "" {
		for i := range catalog {
			if !strings.EqualFold(catalog[i].SetCode, parse.SetCode) {
				continue
			}
			matches = append(matches, models.CardMatch{
				Card:       catalog[i],
				Confidence: setOnlyConfidence,
				MatchType:  models.MatchPartial,
			})
			if len(matches) == maxMatches {
				break
			}
		}
	}

	return matches
}

// BuildScanResult shapes identifier output into the API response: the top
// match plus up to 3 alternatives, re-sorted by confidence defensively.
func BuildScanResult(parse *ScanParse, matches []models.CardMatch) models.ScanResult {
	result := models.ScanResult{
		Alternatives: []models.CardMatch{},
	}
	if parse != nil {
		result.SetCode = parse.SetCode
		result.CardNumber = parse.CardNumber
		result.CardName = parse.CardName
		result.Keywords = parse.Keywords
	}

	if len(matches) == 0 {
		result.Message = "no matching cards found"
		return result
	}

	sorted := make([]models.CardMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	result.Success = true
	result.BestMatch = &sorted[0]
	alternatives := sorted[1:]
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}
	result.Alternatives = alternatives
	return result
}
