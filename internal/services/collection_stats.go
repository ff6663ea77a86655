package services

import (
	"github.com/codyseavey/riftbound-tracker/internal/models"
)

// ComputeCollectionStats reduces a collection's items into
// quantity-weighted distributions. Uses the same cent rounding as deck
// value estimation.
func ComputeCollectionStats(items []models.CollectionItem) models.CollectionStats {
	stats := models.CollectionStats{
		CardsByRarity:    make(map[string]int),
		CardsByType:      make(map[models.CardType]int),
		CardsByCondition: make(map[models.Condition]int),
	}

	total := 0.0
	for i := range items {
		qty := items[i].Quantity
		card := &items[i].Card

		stats.TotalUniqueCards++
		stats.TotalQuantity += qty
		stats.CardsByRarity[card.Rarity] += qty
		stats.CardsByType[card.CardType] += qty
		stats.CardsByCondition[items[i].Condition] += qty

		if card.MarketPrice != nil {
			total += float64(qty) * *card.MarketPrice
		}
	}

	stats.EstimatedMarketValue = roundCents(total)
	return stats
}
