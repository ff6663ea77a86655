package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

var DB *gorm.DB

func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	// Clean up legacy data before the unique constraints are applied
	if err := cleanupDuplicateDeckCards(DB); err != nil {
		return err
	}

	// Auto-migrate the schema
	err = DB.AutoMigrate(
		&models.Card{},
		&models.Deck{},
		&models.DeckCard{},
		&models.CollectionItem{},
		&models.CollectionValueSnapshot{},
	)
	if err != nil {
		return err
	}

	if err := RunMigrations(DB); err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
