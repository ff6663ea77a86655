package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/riftbound-tracker/internal/database"
	"github.com/codyseavey/riftbound-tracker/internal/metrics"
	"github.com/codyseavey/riftbound-tracker/internal/models"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

// Maximum quantity allowed per deck card row
const maxDeckCardQuantity = 3

type DeckHandler struct {
	catalog *services.CardCatalog
}

func NewDeckHandler(catalog *services.CardCatalog) *DeckHandler {
	return &DeckHandler{
		catalog: catalog,
	}
}

// cacheCard saves a catalog card to the database so deck and collection
// rows can reference it by foreign key.
func (h *DeckHandler) cacheCard(card *models.Card) {
	db := database.GetDB()
	if err := db.Save(card).Error; err != nil {
		log.Printf("Warning: failed to cache card %s: %v", card.ID, err)
	}
}

func (h *DeckHandler) ListDecks(c *gin.Context) {
	db := database.GetDB()

	var decks []models.Deck
	if err := db.Preload("Legend").Order("updated_at DESC").Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, decks)
}

func (h *DeckHandler) CreateDeck(c *gin.Context) {
	var req models.CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deck := models.Deck{Name: req.Name}

	if req.LegendID != "" {
		legend := h.catalog.GetCard(req.LegendID)
		if legend == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "legend card not found in catalog"})
			return
		}
		h.cacheCard(legend)
		deck.LegendID = req.LegendID
	}

	db := database.GetDB()
	if err := db.Create(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Legend").First(&deck, deck.ID)
	c.JSON(http.StatusCreated, deck)
}

func (h *DeckHandler) GetDeck(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (h *DeckHandler) UpdateDeck(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	var req models.UpdateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		deck.Name = *req.Name
	}
	if req.LegendID != nil {
		if *req.LegendID == "" {
			deck.LegendID = ""
			deck.Legend = nil
		} else {
			legend := h.catalog.GetCard(*req.LegendID)
			if legend == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "legend card not found in catalog"})
				return
			}
			h.cacheCard(legend)
			deck.LegendID = *req.LegendID
		}
	}

	db := database.GetDB()
	if err := db.Save(deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Legend").Preload("Cards.Card").First(deck, deck.ID)
	c.JSON(http.StatusOK, deck)
}

func (h *DeckHandler) DeleteDeck(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	db := database.GetDB()
	if err := db.Where("deck_id = ?", deck.ID).Delete(&models.DeckCard{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := db.Delete(deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deck deleted"})
}

// AddCard adds copies of a card to a deck zone, merging into the existing
// row for that (card, zone) if one exists.
func (h *DeckHandler) AddCard(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	var req models.AddDeckCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.KnownZone(req.Zone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone must be MAIN, RUNE or BATTLEFIELD"})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	card := h.catalog.GetCard(req.CardID)
	if card == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card not found in catalog"})
		return
	}
	h.cacheCard(card)

	db := database.GetDB()

	var existing models.DeckCard
	err := db.Where("deck_id = ? AND card_id = ? AND zone = ?", deck.ID, req.CardID, req.Zone).
		First(&existing).Error
	if err == nil {
		existing.Quantity += quantity
		if existing.Quantity > maxDeckCardQuantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a zone holds at most 3 copies of a card"})
			return
		}
		if err := db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		db.Preload("Card").First(&existing, existing.ID)
		c.JSON(http.StatusOK, existing)
		return
	}

	if quantity > maxDeckCardQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a zone holds at most 3 copies of a card"})
		return
	}

	entry := models.DeckCard{
		DeckID:   deck.ID,
		CardID:   req.CardID,
		Zone:     req.Zone,
		Quantity: quantity,
	}
	if err := db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Card").First(&entry, entry.ID)
	c.JSON(http.StatusCreated, entry)
}

// RemoveCard removes a card row from a deck zone.
func (h *DeckHandler) RemoveCard(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	cardID := c.Param("cardId")
	zone := models.Zone(c.Query("zone"))
	if !models.KnownZone(zone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone query parameter must be MAIN, RUNE or BATTLEFIELD"})
		return
	}

	db := database.GetDB()
	result := db.Where("deck_id = ? AND card_id = ? AND zone = ?", deck.ID, cardID, zone).
		Delete(&models.DeckCard{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not in deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card removed"})
}

// ValidateDeck runs the construction rules against the deck and returns
// every violation. An invalid deck is a 200 with is_valid=false.
func (h *DeckHandler) ValidateDeck(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	result := services.ValidateDeck(deck.Legend, deck.Cards)

	outcome := "valid"
	if !result.IsValid {
		outcome = "invalid"
	}
	metrics.DeckValidationsTotal.WithLabelValues(outcome).Inc()
	for _, e := range result.Errors {
		metrics.DeckValidationErrors.WithLabelValues(string(e.Rule)).Inc()
	}

	c.JSON(http.StatusOK, result)
}

// GetDeckStats returns the deck's zone/type/domain/cost/value breakdown.
func (h *DeckHandler) GetDeckStats(c *gin.Context) {
	deck, ok := h.loadDeck(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, services.ComputeDeckStats(deck.Cards))
}

// loadDeck fetches the deck in the :id route parameter with its cards and
// legend resolved. Writes the error response itself when loading fails.
func (h *DeckHandler) loadDeck(c *gin.Context) (*models.Deck, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}

	db := database.GetDB()
	var deck models.Deck
	if err := db.Preload("Legend").Preload("Cards.Card").First(&deck, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deck not found"})
		return nil, false
	}

	return &deck, true
}
