package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/riftbound-tracker/internal/api"
	"github.com/codyseavey/riftbound-tracker/internal/database"
	"github.com/codyseavey/riftbound-tracker/internal/metrics"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./riftbound_tracker.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Load the card catalog from local set files
	dataDir := os.Getenv("CATALOG_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data/sets"
	}

	catalog, err := services.NewCardCatalog(dataDir)
	if err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}
	log.Printf("Loaded %d cards from %d sets", catalog.CardCount(), catalog.SetCount())
	metrics.CatalogSize.Set(float64(catalog.CardCount()))

	// Initialize OCR sidecar client for card scanning
	ocrClient := services.NewOCRClient()
	if !ocrClient.IsConfigured() {
		log.Println("OCR service not configured, image scanning disabled (set OCR_SERVICE_URL)")
	}

	// Initialize image storage for scanned card photos
	imageStorage := services.NewImageStorageService()

	// Initialize snapshot service for daily value tracking
	snapshotService := services.NewSnapshotService()

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start snapshot service in background
	go snapshotService.Start(ctx)

	// Setup router
	router := api.SetupRouter(catalog, ocrClient, imageStorage, snapshotService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the snapshot worker
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
