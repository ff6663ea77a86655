package database

import (
	"log"

	"gorm.io/gorm"
)

// cleanupDuplicateDeckCards merges duplicate deck_cards rows before the
// unique (deck_id, card_id, zone) constraint is added. This runs BEFORE
// AutoMigrate to prevent constraint violations.
func cleanupDuplicateDeckCards(db *gorm.DB) error {
	// Check if the table exists
	if !db.Migrator().HasTable("deck_cards") {
		return nil // No table, no duplicates to clean
	}

	// Fold duplicate quantities into the newest row for each group
	result := db.Exec(`
		UPDATE deck_cards
		SET quantity = (
			SELECT SUM(d2.quantity)
			FROM deck_cards d2
			WHERE d2.deck_id = deck_cards.deck_id
			AND d2.card_id = deck_cards.card_id
			AND d2.zone = deck_cards.zone
		)
		WHERE id IN (
			SELECT MAX(id)
			FROM deck_cards
			GROUP BY deck_id, card_id, zone
			HAVING COUNT(*) > 1
		)
	`)
	if result.Error != nil {
		return result.Error
	}

	// Remove the now-redundant older rows
	result = db.Exec(`
		DELETE FROM deck_cards
		WHERE id NOT IN (
			SELECT MAX(id)
			FROM deck_cards
			GROUP BY deck_id, card_id, zone
		)
	`)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Merged %d duplicate deck_cards entries", result.RowsAffected)
	}

	return nil
}

// RunMigrations runs any custom data migrations after schema changes
func RunMigrations(db *gorm.DB) error {
	if err := migrateZoneValues(db); err != nil {
		return err
	}
	if err := migrateConditionValues(db); err != nil {
		return err
	}
	return nil
}

// migrateZoneValues upper-cases legacy lowercase zone strings so the zone
// enum comparisons hold. Safe to run multiple times.
func migrateZoneValues(db *gorm.DB) error {
	if !db.Migrator().HasColumn("deck_cards", "zone") {
		return nil
	}

	result := db.Exec(`UPDATE deck_cards SET zone = UPPER(zone) WHERE zone != UPPER(zone)`)
	if result.Error != nil {
		log.Printf("Warning: failed to normalize deck_cards zone values: %v", result.Error)
		return nil
	}
	if result.RowsAffected > 0 {
		log.Printf("Normalized %d deck_cards zone values", result.RowsAffected)
	}
	return nil
}

// migrateConditionValues backfills a default condition on collection items
func migrateConditionValues(db *gorm.DB) error {
	if !db.Migrator().HasColumn("collection_items", "condition") {
		return nil
	}

	db.Exec(`UPDATE collection_items SET condition = 'NM' WHERE condition IS NULL OR condition = ''`)
	return nil
}
