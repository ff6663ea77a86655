package models

import (
	"time"
)

type Zone string

const (
	ZoneMain        Zone = "MAIN"
	ZoneRune        Zone = "RUNE"
	ZoneBattlefield Zone = "BATTLEFIELD"
)

// KnownZone reports whether z is one of the recognized deck zones.
func KnownZone(z Zone) bool {
	switch z {
	case ZoneMain, ZoneRune, ZoneBattlefield:
		return true
	}
	return false
}

type Deck struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name" gorm:"not null"`
	LegendID  string     `json:"legend_id"`
	Legend    *Card      `json:"legend" gorm:"foreignKey:LegendID"`
	Cards     []DeckCard `json:"cards" gorm:"foreignKey:DeckID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DeckCard is one card entry in a deck zone. At most one row exists
// per (deck, card, zone) combination.
type DeckCard struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	DeckID   uint   `json:"deck_id" gorm:"not null;uniqueIndex:idx_deck_card_zone"`
	CardID   string `json:"card_id" gorm:"not null;uniqueIndex:idx_deck_card_zone"`
	Card     Card   `json:"card" gorm:"foreignKey:CardID"`
	Zone     Zone   `json:"zone" gorm:"not null;uniqueIndex:idx_deck_card_zone"`
	Quantity int    `json:"quantity" gorm:"default:1"`
}

type CreateDeckRequest struct {
	Name     string `json:"name" binding:"required"`
	LegendID string `json:"legend_id"`
}

type UpdateDeckRequest struct {
	Name     *string `json:"name"`
	LegendID *string `json:"legend_id"`
}

type AddDeckCardRequest struct {
	CardID   string `json:"card_id" binding:"required"`
	Zone     Zone   `json:"zone" binding:"required"`
	Quantity int    `json:"quantity"`
}

type RuleID string

const (
	RuleMainDeckSize      RuleID = "MAIN_DECK_SIZE"
	RuleRuneDeckSize      RuleID = "RUNE_DECK_SIZE"
	RuleBattlefieldSize   RuleID = "BATTLEFIELD_SIZE"
	RuleLegendRequired    RuleID = "LEGEND_REQUIRED"
	RuleLegendType        RuleID = "LEGEND_TYPE"
	RuleCardCopies        RuleID = "CARD_COPIES"
	RuleDomainRestriction RuleID = "DOMAIN_RESTRICTION"
	RuleZoneMatching      RuleID = "ZONE_MATCHING"
)

// ValidationError is one rule violation. Details carries a typed payload
// specific to the rule (SizeRuleDetails, CopyRuleDetails, ...).
type ValidationError struct {
	Rule    RuleID `json:"rule"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type SizeRuleDetails struct {
	Current int `json:"current"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

type BattlefieldRuleDetails struct {
	Current  int `json:"current"`
	Required int `json:"required"`
}

type CopyRuleDetails struct {
	CardID   string `json:"card_id"`
	CardName string `json:"card_name"`
	Zone     Zone   `json:"zone"`
	Current  int    `json:"current"`
	Max      int    `json:"max"`
}

type DomainRuleDetails struct {
	CardID        string     `json:"card_id"`
	CardName      string     `json:"card_name"`
	CardDomains   DomainList `json:"card_domains"`
	LegendDomains DomainList `json:"legend_domains"`
}

type ZoneRuleDetails struct {
	CardID       string   `json:"card_id"`
	CardName     string   `json:"card_name"`
	CardType     CardType `json:"card_type"`
	CurrentZone  Zone     `json:"current_zone"`
	RequiredZone Zone     `json:"required_zone"`
}

type DeckValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors"`
}

// DeckStats is a quantity-weighted reduction of a deck's card list.
type DeckStats struct {
	TotalCards         int              `json:"total_cards"`
	CardsByZone        map[Zone]int     `json:"cards_by_zone"`
	CardsByType        map[CardType]int `json:"cards_by_type"`
	DomainDistribution map[Domain]int   `json:"domain_distribution"`
	ManaCurve          map[int]int      `json:"mana_curve"`
	EstimatedValue     float64          `json:"estimated_value"`
}
