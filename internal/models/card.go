package models

import (
	"strings"
	"time"
)

type CardType string

const (
	CardTypeUnit        CardType = "UNIT"
	CardTypeLegend      CardType = "LEGEND"
	CardTypeSpell       CardType = "SPELL"
	CardTypeRune        CardType = "RUNE"
	CardTypeBattlefield CardType = "BATTLEFIELD"
	CardTypeGear        CardType = "GEAR"
)

type Domain string

const (
	DomainFury  Domain = "FURY"
	DomainCalm  Domain = "CALM"
	DomainMind  Domain = "MIND"
	DomainBody  Domain = "BODY"
	DomainOrder Domain = "ORDER"
	DomainChaos Domain = "CHAOS"
)

// DomainList is a card's set of domain tags. Order is irrelevant.
type DomainList []Domain

// Intersects reports whether the two domain sets share at least one domain.
func (d DomainList) Intersects(other DomainList) bool {
	for _, a := range d {
		for _, b := range other {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Contains reports whether the list includes the given domain.
func (d DomainList) Contains(domain Domain) bool {
	for _, a := range d {
		if a == domain {
			return true
		}
	}
	return false
}

func (d DomainList) String() string {
	parts := make([]string, len(d))
	for i, domain := range d {
		parts[i] = string(domain)
	}
	return strings.Join(parts, ", ")
}

type Card struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;index"`
	CardType    CardType   `json:"card_type" gorm:"not null;index"`
	Domains     DomainList `json:"domains" gorm:"serializer:json"`
	Region      string     `json:"region"`
	Rarity      string     `json:"rarity"`
	SetCode     string     `json:"set_code" gorm:"index:idx_set_number"`
	CardNumber  string     `json:"card_number" gorm:"index:idx_set_number"` // zero-padded to 3 digits, e.g. "002"
	EnergyCost  *int       `json:"energy_cost"`
	MarketPrice *float64   `json:"market_price"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CardSearchResult struct {
	Cards      []Card `json:"cards"`
	TotalCount int    `json:"total_count"`
	HasMore    bool   `json:"has_more"`
}
