package models

import (
	"time"
)

type Condition string

const (
	ConditionMint      Condition = "M"
	ConditionNearMint  Condition = "NM"
	ConditionExcellent Condition = "EX"
	ConditionGood      Condition = "GD"
	ConditionPlayed    Condition = "PL"
)

type CollectionItem struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID           string    `json:"card_id" gorm:"not null;index"`
	Card             Card      `json:"card" gorm:"foreignKey:CardID"`
	Quantity         int       `json:"quantity" gorm:"default:1"`
	Condition        Condition `json:"condition" gorm:"default:'NM'"`
	Notes            string    `json:"notes"`
	AddedAt          time.Time `json:"added_at"`
	ScannedImagePath string    `json:"scanned_image_path" gorm:"default:null"`
}

// CollectionStats is a quantity-weighted reduction of a collection's items.
type CollectionStats struct {
	TotalUniqueCards     int               `json:"total_unique_cards"`
	TotalQuantity        int               `json:"total_quantity"`
	CardsByRarity        map[string]int    `json:"cards_by_rarity"`
	CardsByType          map[CardType]int  `json:"cards_by_type"`
	CardsByCondition     map[Condition]int `json:"cards_by_condition"`
	EstimatedMarketValue float64           `json:"estimated_market_value"`
}

type AddToCollectionRequest struct {
	CardID           string    `json:"card_id" binding:"required"`
	Quantity         int       `json:"quantity"`
	Condition        Condition `json:"condition"`
	Notes            string    `json:"notes"`
	ScannedImageData string    `json:"scanned_image_data,omitempty"` // base64 encoded
}

type UpdateCollectionRequest struct {
	Quantity  *int       `json:"quantity"`
	Condition *Condition `json:"condition"`
	Notes     *string    `json:"notes"`
}
