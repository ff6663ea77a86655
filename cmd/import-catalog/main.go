// import-catalog bulk-loads card catalog set files into the SQLite cards
// table so deck and collection rows can reference them without the server
// running.
//
// Usage: go run main.go -db=<path> -data=<dir> [-dry-run]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/codyseavey/riftbound-tracker/internal/database"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

func main() {
	dbPath := flag.String("db", "", "Path to SQLite database (required)")
	dataDir := flag.String("data", "", "Path to catalog set files directory (required)")
	dryRun := flag.Bool("dry-run", false, "Report what would be imported without writing")
	flag.Parse()

	if *dbPath == "" || *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	catalog, err := services.NewCardCatalog(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	cards := catalog.Cards()
	if len(cards) == 0 {
		log.Fatalf("No cards found in %s", *dataDir)
	}

	if *dryRun {
		fmt.Printf("Would import %d cards from %d sets (dry run)\n",
			catalog.CardCount(), catalog.SetCount())
		return
	}

	if err := database.Initialize(*dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	imported := 0
	for i := range cards {
		if err := db.Save(&cards[i]).Error; err != nil {
			log.Printf("Warning: failed to import card %s: %v", cards[i].ID, err)
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d of %d cards from %d sets\n",
		imported, len(cards), catalog.SetCount())
}
