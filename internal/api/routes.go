package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/riftbound-tracker/internal/api/handlers"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

func SetupRouter(catalog *services.CardCatalog, ocrClient *services.OCRClient, imageStorage *services.ImageStorageService, snapshotService *services.SnapshotService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	router.Use(prometheusMiddleware())

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(catalog)
	scanHandler := handlers.NewScanHandler(catalog, ocrClient, imageStorage)
	deckHandler := handlers.NewDeckHandler(catalog)
	collectionHandler := handlers.NewCollectionHandler(catalog, imageStorage, snapshotService)

	// Serve scanned images
	if imageStorage != nil {
		router.Static("/images/scanned", imageStorage.GetStorageDir())
	}

	// API routes
	api := router.Group("/api")
	{
		// Card routes
		cards := api.Group("/cards")
		{
			cards.GET("/search", cardHandler.SearchCards)
			cards.GET("/:id", cardHandler.GetCard)
			cards.POST("/identify", cardHandler.IdentifyCard)
		}

		// Scan routes
		scan := api.Group("/scan")
		{
			scan.POST("", scanHandler.ScanCard)
			scan.POST("/bulk", scanHandler.ScanBulk)
			scan.GET("/status", scanHandler.GetScanStatus)
		}

		// Deck routes
		decks := api.Group("/decks")
		{
			decks.GET("", deckHandler.ListDecks)
			decks.POST("", deckHandler.CreateDeck)
			decks.GET("/:id", deckHandler.GetDeck)
			decks.PUT("/:id", deckHandler.UpdateDeck)
			decks.DELETE("/:id", deckHandler.DeleteDeck)
			decks.POST("/:id/cards", deckHandler.AddCard)
			decks.DELETE("/:id/cards/:cardId", deckHandler.RemoveCard)
			decks.GET("/:id/validate", deckHandler.ValidateDeck)
			decks.GET("/:id/stats", deckHandler.GetDeckStats)
		}

		// Collection routes
		collection := api.Group("/collection")
		{
			collection.GET("", collectionHandler.GetCollection)
			collection.POST("", collectionHandler.AddToCollection)
			collection.PUT("/:id", collectionHandler.UpdateCollectionItem)
			collection.DELETE("/:id", collectionHandler.DeleteCollectionItem)
			collection.GET("/stats", collectionHandler.GetStats)
			collection.GET("/value-history", collectionHandler.GetValueHistory)
			collection.POST("/snapshot", collectionHandler.TakeSnapshot)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
