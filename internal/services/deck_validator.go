package services

import (
	"fmt"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

const (
	minMainDeckSize      = 30
	maxMainDeckSize      = 40
	minRuneDeckSize      = 10
	maxRuneDeckSize      = 12
	requiredBattlefields = 1
	maxCardCopies        = 3
)

// cardZoneKey identifies a (card, zone) group for copy counting.
type cardZoneKey struct {
	cardID string
	zone   models.Zone
}

// copyTally accumulates the total quantity for one (card, zone) group.
type copyTally struct {
	cardID string
	zone   models.Zone
	name   string
	count  int
}

// ValidateDeck evaluates a deck's card list and resolved legend against the
// construction rules and returns every violation found. Rules never
// short-circuit each other; an invalid deck is data, not an error.
//
// Cards in unrecognized zones are excluded from the zone size rules but
// still counted by the copy and zone-matching rules, matching how zone
// bucketing has always behaved.
func ValidateDeck(legend *models.Card, cards []models.DeckCard) models.DeckValidationResult {
	var errors []models.ValidationError

	mainCount := 0
	runeCount := 0
	battlefieldCount := 0
	for i := range cards {
		switch cards[i].Zone {
		case models.ZoneMain:
			mainCount += cards[i].Quantity
		case models.ZoneRune:
			runeCount += cards[i].Quantity
		case models.ZoneBattlefield:
			battlefieldCount += cards[i].Quantity
		}
	}

	if mainCount < minMainDeckSize || mainCount > maxMainDeckSize {
		errors = append(errors, models.ValidationError{
			Rule: models.RuleMainDeckSize,
			Message: fmt.Sprintf("main deck has %d cards, must have between %d and %d",
				mainCount, minMainDeckSize, maxMainDeckSize),
			Details: models.SizeRuleDetails{Current: mainCount, Min: minMainDeckSize, Max: maxMainDeckSize},
		})
	}

	if runeCount < minRuneDeckSize || runeCount > maxRuneDeckSize {
		errors = append(errors, models.ValidationError{
			Rule: models.RuleRuneDeckSize,
			Message: fmt.Sprintf("rune deck has %d cards, must have between %d and %d",
				runeCount, minRuneDeckSize, maxRuneDeckSize),
			Details: models.SizeRuleDetails{Current: runeCount, Min: minRuneDeckSize, Max: maxRuneDeckSize},
		})
	}

	if battlefieldCount != requiredBattlefields {
		errors = append(errors, models.ValidationError{
			Rule: models.RuleBattlefieldSize,
			Message: fmt.Sprintf("deck has %d battlefields, must have exactly %d",
				battlefieldCount, requiredBattlefields),
			Details: models.BattlefieldRuleDetails{Current: battlefieldCount, Required: requiredBattlefields},
		})
	}

	if legend == nil {
		errors = append(errors, models.ValidationError{
			Rule:    models.RuleLegendRequired,
			Message: "deck must have a legend",
			Details: nil,
		})
	} else if legend.CardType != models.CardTypeLegend {
		errors = append(errors, models.ValidationError{
			Rule: models.RuleLegendType,
			Message: fmt.Sprintf("legend card %q has type %s, must be %s",
				legend.Name, legend.CardType, models.CardTypeLegend),
			Details: models.ZoneRuleDetails{
				CardID:   legend.ID,
				CardName: legend.Name,
				CardType: legend.CardType,
			},
		})
	}

	errors = append(errors, checkCardCopies(cards)...)

	if legend != nil {
		errors = append(errors, checkDomainRestriction(legend, cards)...)
	}

	errors = append(errors, checkZoneMatching(cards)...)

	return models.DeckValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// checkCardCopies groups the full card list by (card, zone) and flags every
// group whose summed quantity exceeds the copy limit. Groups are reported
// in first-appearance order.
func checkCardCopies(cards []models.DeckCard) []models.ValidationError {
	tallies := make(map[cardZoneKey]*copyTally)
	var order []cardZoneKey

	for i := range cards {
		key := cardZoneKey{cardID: cards[i].CardID, zone: cards[i].Zone}
		tally, ok := tallies[key]
		if !ok {
			tally = &copyTally{
				cardID: cards[i].CardID,
				zone:   cards[i].Zone,
				name:   cards[i].Card.Name,
			}
			tallies[key] = tally
			order = append(order, key)
		}
		tally.count += cards[i].Quantity
	}

	var errors []models.ValidationError
	for _, key := range order {
		tally := tallies[key]
		if tally.count <= maxCardCopies {
			continue
		}
		errors = append(errors, models.ValidationError{
			Rule: models.RuleCardCopies,
			Message: fmt.Sprintf("%q has %d copies in %s, maximum is %d",
				tally.name, tally.count, tally.zone, maxCardCopies),
			Details: models.CopyRuleDetails{
				CardID:   tally.cardID,
				CardName: tally.name,
				Zone:     tally.zone,
				Current:  tally.count,
				Max:      maxCardCopies,
			},
		})
	}
	return errors
}

// checkDomainRestriction flags every non-legend card whose domains do not
// intersect the legend's domains.
func checkDomainRestriction(legend *models.Card, cards []models.DeckCard) []models.ValidationError {
	var errors []models.ValidationError
	for i := range cards {
		card := &cards[i].Card
		if card.CardType == models.CardTypeLegend {
			continue
		}
		if card.Domains.Intersects(legend.Domains) {
			continue
		}
		errors = append(errors, models.ValidationError{
			Rule: models.RuleDomainRestriction,
			Message: fmt.Sprintf("%q domains [%s] do not match legend domains [%s]",
				card.Name, card.Domains, legend.Domains),
			Details: models.DomainRuleDetails{
				CardID:        card.ID,
				CardName:      card.Name,
				CardDomains:   card.Domains,
				LegendDomains: legend.Domains,
			},
		})
	}
	return errors
}

// requiredZoneFor maps a card type to the zone it must occupy. Legends are
// not deck cards and have no required zone.
func requiredZoneFor(cardType models.CardType) (models.Zone, bool) {
	switch cardType {
	case models.CardTypeLegend:
		return "", false
	case models.CardTypeRune:
		return models.ZoneRune, true
	case models.CardTypeBattlefield:
		return models.ZoneBattlefield, true
	default:
		return models.ZoneMain, true
	}
}

// checkZoneMatching flags every card sitting in a zone its type does not
// belong to.
func checkZoneMatching(cards []models.DeckCard) []models.ValidationError {
	var errors []models.ValidationError
	for i := range cards {
		card := &cards[i].Card
		required, ok := requiredZoneFor(card.CardType)
		if !ok || cards[i].Zone == required {
			continue
		}
		errors = append(errors, models.ValidationError{
			Rule: models.RuleZoneMatching,
			Message: fmt.Sprintf("%q is a %s and belongs in %s, not %s",
				card.Name, card.CardType, required, cards[i].Zone),
			Details: models.ZoneRuleDetails{
				CardID:       card.ID,
				CardName:     card.Name,
				CardType:     card.CardType,
				CurrentZone:  cards[i].Zone,
				RequiredZone: required,
			},
		})
	}
	return errors
}
