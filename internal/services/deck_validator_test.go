package services

import (
	"fmt"
	"testing"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

func furyLegend() *models.Card {
	return &models.Card{
		ID:       "ogn-001",
		Name:     "Darius",
		CardType: models.CardTypeLegend,
		Domains:  models.DomainList{models.DomainFury},
	}
}

func mainCard(id, name string, domains ...models.Domain) models.Card {
	return models.Card{ID: id, Name: name, CardType: models.CardTypeUnit, Domains: domains}
}

// validDeckCards builds a deck that satisfies every rule for a FURY legend:
// 30 main cards, 10 runes, 1 battlefield, no group over 3 copies.
func validDeckCards() []models.DeckCard {
	var cards []models.DeckCard
	for i := 0; i < 10; i++ {
		cards = append(cards, models.DeckCard{
			CardID:   fmt.Sprintf("unit-%02d", i),
			Card:     mainCard(fmt.Sprintf("unit-%02d", i), fmt.Sprintf("Unit %d", i), models.DomainFury),
			Zone:     models.ZoneMain,
			Quantity: 3,
		})
	}
	for i := 0; i < 5; i++ {
		cards = append(cards, models.DeckCard{
			CardID: fmt.Sprintf("rune-%02d", i),
			Card: models.Card{
				ID:       fmt.Sprintf("rune-%02d", i),
				Name:     fmt.Sprintf("Rune %d", i),
				CardType: models.CardTypeRune,
				Domains:  models.DomainList{models.DomainFury},
			},
			Zone:     models.ZoneRune,
			Quantity: 2,
		})
	}
	cards = append(cards, models.DeckCard{
		CardID: "bf-01",
		Card: models.Card{
			ID:       "bf-01",
			Name:     "Sunken Temple",
			CardType: models.CardTypeBattlefield,
			Domains:  models.DomainList{models.DomainFury},
		},
		Zone:     models.ZoneBattlefield,
		Quantity: 1,
	})
	return cards
}

func errorsByRule(result models.DeckValidationResult) map[models.RuleID][]models.ValidationError {
	grouped := make(map[models.RuleID][]models.ValidationError)
	for _, e := range result.Errors {
		grouped[e.Rule] = append(grouped[e.Rule], e)
	}
	return grouped
}

func TestValidateDeckValid(t *testing.T) {
	result := ValidateDeck(furyLegend(), validDeckCards())
	if !result.IsValid {
		t.Fatalf("expected valid deck, got errors: %+v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %d", len(result.Errors))
	}
}

func TestValidateDeckMainDeckTooSmall(t *testing.T) {
	cards := validDeckCards()
	// Drop the quantity of the last two main groups: 30 -> 25
	cards[8].Quantity = 1
	cards[9].Quantity = 0

	result := ValidateDeck(furyLegend(), cards)
	if result.IsValid {
		t.Fatal("expected invalid deck")
	}
	grouped := errorsByRule(result)
	if len(grouped[models.RuleMainDeckSize]) != 1 {
		t.Fatalf("expected exactly one main deck size error, got %d", len(grouped[models.RuleMainDeckSize]))
	}
	details, ok := grouped[models.RuleMainDeckSize][0].Details.(models.SizeRuleDetails)
	if !ok {
		t.Fatalf("details type = %T, want SizeRuleDetails", grouped[models.RuleMainDeckSize][0].Details)
	}
	if details.Current != 25 || details.Min != 30 || details.Max != 40 {
		t.Errorf("details = %+v, want {25 30 40}", details)
	}
	// The size violation must not suppress the other rules
	if len(result.Errors) != 1 {
		t.Errorf("expected only the size error, got %+v", result.Errors)
	}
}

func TestValidateDeckRuneDeckTooLarge(t *testing.T) {
	cards := validDeckCards()
	for i := 10; i < 15; i++ {
		cards[i].Quantity = 3 // 15 runes total
	}

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleRuneDeckSize]) != 1 {
		t.Fatalf("expected a rune deck size error, got %+v", result.Errors)
	}
	details := grouped[models.RuleRuneDeckSize][0].Details.(models.SizeRuleDetails)
	if details.Current != 15 || details.Min != 10 || details.Max != 12 {
		t.Errorf("details = %+v, want {15 10 12}", details)
	}
}

func TestValidateDeckBattlefieldCount(t *testing.T) {
	cards := validDeckCards()
	cards[15].Quantity = 2 // two battlefields

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleBattlefieldSize]) != 1 {
		t.Fatalf("expected a battlefield size error, got %+v", result.Errors)
	}
	details := grouped[models.RuleBattlefieldSize][0].Details.(models.BattlefieldRuleDetails)
	if details.Current != 2 || details.Required != 1 {
		t.Errorf("details = %+v, want {2 1}", details)
	}
}

func TestValidateDeckLegendRequired(t *testing.T) {
	result := ValidateDeck(nil, validDeckCards())
	grouped := errorsByRule(result)
	if len(grouped[models.RuleLegendRequired]) != 1 {
		t.Fatalf("expected a legend required error, got %+v", result.Errors)
	}
	// No legend means the domain restriction cannot be evaluated
	if len(grouped[models.RuleDomainRestriction]) != 0 {
		t.Errorf("domain restriction should be skipped without a legend")
	}
}

func TestValidateDeckLegendWrongType(t *testing.T) {
	legend := furyLegend()
	legend.CardType = models.CardTypeUnit

	result := ValidateDeck(legend, validDeckCards())
	grouped := errorsByRule(result)
	if len(grouped[models.RuleLegendType]) != 1 {
		t.Fatalf("expected a legend type error, got %+v", result.Errors)
	}
	// A mistyped legend still has domains, so the restriction still runs
	if len(grouped[models.RuleDomainRestriction]) != 0 {
		t.Errorf("unexpected domain errors: %+v", grouped[models.RuleDomainRestriction])
	}
}

func TestValidateDeckCardCopiesAcrossRows(t *testing.T) {
	cards := validDeckCards()
	// A second row for the same (card, zone): 3 + 1 = 4 copies total
	cards = append(cards, models.DeckCard{
		CardID:   "unit-00",
		Card:     mainCard("unit-00", "Unit 0", models.DomainFury),
		Zone:     models.ZoneMain,
		Quantity: 1,
	})
	// compensate so only the copy rule fires
	cards[9].Quantity = 2

	result := ValidateDeck(furyLegend(), cards)
	if result.IsValid {
		t.Fatal("expected invalid deck")
	}
	grouped := errorsByRule(result)
	if len(grouped[models.RuleCardCopies]) != 1 {
		t.Fatalf("expected exactly one copy error, got %+v", result.Errors)
	}
	details := grouped[models.RuleCardCopies][0].Details.(models.CopyRuleDetails)
	if details.CardID != "unit-00" || details.Zone != models.ZoneMain || details.Current != 4 || details.Max != 3 {
		t.Errorf("details = %+v, want unit-00 in MAIN with 4/3", details)
	}
}

func TestValidateDeckCopiesPerZoneIndependent(t *testing.T) {
	cards := validDeckCards()
	// Same card id in a different zone, totals within the limit per zone
	cards = append(cards, models.DeckCard{
		CardID:   "unit-00",
		Card:     mainCard("unit-00", "Unit 0", models.DomainFury),
		Zone:     models.ZoneRune,
		Quantity: 2,
	})

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleCardCopies]) != 0 {
		t.Errorf("copies are counted per zone, got %+v", grouped[models.RuleCardCopies])
	}
}

func TestValidateDeckDomainRestriction(t *testing.T) {
	cards := validDeckCards()
	cards[0].Card.Domains = models.DomainList{models.DomainCalm}

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleDomainRestriction]) != 1 {
		t.Fatalf("expected one domain error, got %+v", result.Errors)
	}
	details := grouped[models.RuleDomainRestriction][0].Details.(models.DomainRuleDetails)
	if details.CardID != "unit-00" {
		t.Errorf("details = %+v, want unit-00", details)
	}
}

func TestValidateDeckDomainRestrictionMultiDomain(t *testing.T) {
	legend := furyLegend()
	legend.Domains = models.DomainList{models.DomainFury, models.DomainOrder}
	cards := validDeckCards()
	cards[0].Card.Domains = models.DomainList{models.DomainOrder, models.DomainChaos}

	result := ValidateDeck(legend, cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleDomainRestriction]) != 0 {
		t.Errorf("any shared domain satisfies the restriction, got %+v", grouped[models.RuleDomainRestriction])
	}
}

func TestValidateDeckZoneMatching(t *testing.T) {
	cards := validDeckCards()
	// A rune card sitting in the main deck
	cards[0].Card.CardType = models.CardTypeRune

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleZoneMatching]) != 1 {
		t.Fatalf("expected one zone matching error, got %+v", result.Errors)
	}
	details := grouped[models.RuleZoneMatching][0].Details.(models.ZoneRuleDetails)
	if details.CurrentZone != models.ZoneMain || details.RequiredZone != models.ZoneRune {
		t.Errorf("details = %+v, want MAIN vs RUNE", details)
	}
}

func TestValidateDeckUnknownZone(t *testing.T) {
	cards := validDeckCards()
	// 4 copies of a spell in an unrecognized zone: excluded from the size
	// buckets but still visible to the copy and zone rules.
	cards = append(cards, models.DeckCard{
		CardID: "spell-01",
		Card: models.Card{
			ID:       "spell-01",
			Name:     "Decimate",
			CardType: models.CardTypeSpell,
			Domains:  models.DomainList{models.DomainFury},
		},
		Zone:     models.Zone("SIDEBOARD"),
		Quantity: 4,
	})

	result := ValidateDeck(furyLegend(), cards)
	grouped := errorsByRule(result)
	if len(grouped[models.RuleMainDeckSize]) != 0 {
		t.Errorf("unknown zone must not count toward main deck size: %+v", grouped[models.RuleMainDeckSize])
	}
	if len(grouped[models.RuleCardCopies]) != 1 {
		t.Errorf("expected the copy rule to see the unknown zone, got %+v", grouped[models.RuleCardCopies])
	}
	if len(grouped[models.RuleZoneMatching]) != 1 {
		t.Errorf("expected the zone rule to see the unknown zone, got %+v", grouped[models.RuleZoneMatching])
	}
}

func TestValidateDeckAccumulatesAllViolations(t *testing.T) {
	// Empty deck, no legend: size rules, battlefield rule, and legend rule
	// all fire in one pass.
	result := ValidateDeck(nil, nil)
	if result.IsValid {
		t.Fatal("expected invalid deck")
	}
	wantRules := []models.RuleID{
		models.RuleMainDeckSize,
		models.RuleRuneDeckSize,
		models.RuleBattlefieldSize,
		models.RuleLegendRequired,
	}
	if len(result.Errors) != len(wantRules) {
		t.Fatalf("expected %d errors, got %+v", len(wantRules), result.Errors)
	}
	for i, rule := range wantRules {
		if result.Errors[i].Rule != rule {
			t.Errorf("error %d rule = %s, want %s", i, result.Errors[i].Rule, rule)
		}
	}
}
