package services

import (
	"math"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

// ComputeDeckStats reduces a deck's card list into quantity-weighted
// distributions. Cards in unrecognized zones are skipped by the zone
// breakdown but still count toward every other distribution.
func ComputeDeckStats(cards []models.DeckCard) models.DeckStats {
	stats := models.DeckStats{
		CardsByZone: map[models.Zone]int{
			models.ZoneMain:        0,
			models.ZoneRune:        0,
			models.ZoneBattlefield: 0,
		},
		CardsByType:        make(map[models.CardType]int),
		DomainDistribution: make(map[models.Domain]int),
		ManaCurve:          make(map[int]int),
	}

	total := 0.0
	for i := range cards {
		qty := cards[i].Quantity
		card := &cards[i].Card

		stats.TotalCards += qty

		if models.KnownZone(cards[i].Zone) {
			stats.CardsByZone[cards[i].Zone] += qty
		}

		stats.CardsByType[card.CardType] += qty

		// A card contributes its quantity once per domain it has
		for _, domain := range card.Domains {
			stats.DomainDistribution[domain] += qty
		}

		cost := 0
		if card.EnergyCost != nil {
			cost = *card.EnergyCost
		}
		stats.ManaCurve[cost] += qty

		if card.MarketPrice != nil {
			total += float64(qty) * *card.MarketPrice
		}
	}

	stats.EstimatedValue = roundCents(total)
	return stats
}

// roundCents rounds a dollar amount to 2 decimal places, half away from
// zero at the cent boundary.
func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
