package services

import (
	"testing"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

func TestComputeCollectionStats(t *testing.T) {
	items := []models.CollectionItem{
		{
			CardID: "ogn-001",
			Card: models.Card{
				ID:          "ogn-001",
				Name:        "Darius",
				CardType:    models.CardTypeLegend,
				Rarity:      "LEGENDARY",
				MarketPrice: floatPtr(12.5),
			},
			Quantity:  1,
			Condition: models.ConditionNearMint,
		},
		{
			CardID: "ogn-003",
			Card: models.Card{
				ID:          "ogn-003",
				Name:        "Vanguard Bannerman",
				CardType:    models.CardTypeUnit,
				Rarity:      "COMMON",
				MarketPrice: floatPtr(0.1),
			},
			Quantity:  4,
			Condition: models.ConditionNearMint,
		},
		{
			// Same card in a different condition stays a separate item
			CardID: "ogn-003",
			Card: models.Card{
				ID:       "ogn-003",
				Name:     "Vanguard Bannerman",
				CardType: models.CardTypeUnit,
				Rarity:   "COMMON",
			},
			Quantity:  2,
			Condition: models.ConditionPlayed,
		},
	}

	stats := ComputeCollectionStats(items)

	if stats.TotalUniqueCards != 3 {
		t.Errorf("TotalUniqueCards = %d, want 3", stats.TotalUniqueCards)
	}
	if stats.TotalQuantity != 7 {
		t.Errorf("TotalQuantity = %d, want 7", stats.TotalQuantity)
	}
	if stats.CardsByRarity["COMMON"] != 6 || stats.CardsByRarity["LEGENDARY"] != 1 {
		t.Errorf("CardsByRarity = %v", stats.CardsByRarity)
	}
	if stats.CardsByType[models.CardTypeUnit] != 6 {
		t.Errorf("CardsByType[UNIT] = %d, want 6", stats.CardsByType[models.CardTypeUnit])
	}
	if stats.CardsByCondition[models.ConditionNearMint] != 5 ||
		stats.CardsByCondition[models.ConditionPlayed] != 2 {
		t.Errorf("CardsByCondition = %v", stats.CardsByCondition)
	}
	// 1*12.50 + 4*0.10; the item without a price contributes nothing
	if stats.EstimatedMarketValue != 12.9 {
		t.Errorf("EstimatedMarketValue = %v, want 12.9", stats.EstimatedMarketValue)
	}

	// Every group total agrees with the overall quantity
	for name, group := range map[string]int{
		"rarity":    sumByRarity(stats.CardsByRarity),
		"type":      sumByType(stats.CardsByType),
		"condition": sumByCondition(stats.CardsByCondition),
	} {
		if group != stats.TotalQuantity {
			t.Errorf("%s group sums to %d, want %d", name, group, stats.TotalQuantity)
		}
	}
}

func TestComputeCollectionStatsEmpty(t *testing.T) {
	stats := ComputeCollectionStats(nil)
	if stats.TotalUniqueCards != 0 || stats.TotalQuantity != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.EstimatedMarketValue != 0 {
		t.Errorf("EstimatedMarketValue = %v, want 0", stats.EstimatedMarketValue)
	}
	if stats.CardsByRarity == nil || stats.CardsByType == nil || stats.CardsByCondition == nil {
		t.Error("group maps must be initialized even for an empty collection")
	}
}

func sumByRarity(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func sumByType(m map[models.CardType]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func sumByCondition(m map[models.Condition]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
