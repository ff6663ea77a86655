package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/riftbound-tracker/internal/database"
	"github.com/codyseavey/riftbound-tracker/internal/metrics"
	"github.com/codyseavey/riftbound-tracker/internal/models"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

// Maximum quantity allowed per collection item
const maxQuantity = 9999

type CollectionHandler struct {
	catalog         *services.CardCatalog
	imageStorage    *services.ImageStorageService
	snapshotService *services.SnapshotService
}

func NewCollectionHandler(catalog *services.CardCatalog, imageStorage *services.ImageStorageService, snapshot *services.SnapshotService) *CollectionHandler {
	return &CollectionHandler{
		catalog:         catalog,
		imageStorage:    imageStorage,
		snapshotService: snapshot,
	}
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	db := database.GetDB()

	var items []models.CollectionItem
	query := db.Preload("Card").Order("added_at DESC")

	// Optional filters
	if setCode := c.Query("set"); setCode != "" {
		query = query.Joins("JOIN cards ON cards.id = collection_items.card_id").
			Where("cards.set_code = ?", setCode)
	}

	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *CollectionHandler) AddToCollection(c *gin.Context) {
	var req models.AddToCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := h.catalog.GetCard(req.CardID)
	if card == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card not found in catalog"})
		return
	}

	db := database.GetDB()
	if err := db.Save(card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Validate and set defaults
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	if quantity > maxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity exceeds maximum allowed (9999)"})
		return
	}
	condition := req.Condition
	if condition == "" {
		condition = models.ConditionNearMint
	}

	// Handle scanned image FIRST - if provided, we NEVER merge (each scan
	// is a unique physical card)
	var scannedImagePath string
	hasScannedImage := false
	if req.ScannedImageData != "" && h.imageStorage != nil {
		imageData, err := base64.StdEncoding.DecodeString(req.ScannedImageData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
			return
		}
		filename, err := h.imageStorage.SaveImage(imageData)
		if err == nil {
			scannedImagePath = filename
			hasScannedImage = true
		}
	}

	// A scanned card always gets its own item (qty=1) so the physical
	// card stays individually tracked
	if hasScannedImage {
		item := models.CollectionItem{
			CardID:           req.CardID,
			Quantity:         1,
			Condition:        condition,
			Notes:            req.Notes,
			AddedAt:          time.Now(),
			ScannedImagePath: scannedImagePath,
		}

		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		db.Preload("Card").First(&item, item.ID)
		c.JSON(http.StatusCreated, item)
		return
	}

	// No scanned image - try to merge into existing non-scanned stack
	var existingItem models.CollectionItem
	err := db.Where("card_id = ? AND condition = ? AND (scanned_image_path IS NULL OR scanned_image_path = '')",
		req.CardID, condition).
		First(&existingItem).Error

	if err == nil {
		existingItem.Quantity += quantity
		if err := db.Save(&existingItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		db.Preload("Card").First(&existingItem, existingItem.ID)
		c.JSON(http.StatusOK, existingItem)
		return
	}

	item := models.CollectionItem{
		CardID:           req.CardID,
		Quantity:         quantity,
		Condition:        condition,
		Notes:            req.Notes,
		AddedAt:          time.Now(),
		ScannedImagePath: "",
	}

	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Card").First(&item, item.ID)
	c.JSON(http.StatusCreated, item)
}

func (h *CollectionHandler) UpdateCollectionItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var item models.CollectionItem
	if err := db.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		if *req.Quantity > maxQuantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity exceeds maximum allowed (9999)"})
			return
		}
		// Quantity zero removes the item
		if *req.Quantity == 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "item removed"})
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Card").First(&item, item.ID)
	c.JSON(http.StatusOK, item)
}

func (h *CollectionHandler) DeleteCollectionItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()
	result := db.Delete(&models.CollectionItem{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// GetStats computes the collection's rarity/type/condition/value breakdown.
func (h *CollectionHandler) GetStats(c *gin.Context) {
	db := database.GetDB()

	var items []models.CollectionItem
	if err := db.Preload("Card").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := services.ComputeCollectionStats(items)

	metrics.CollectionCardsTotal.Set(float64(stats.TotalQuantity))
	metrics.CollectionValueUSD.Set(stats.EstimatedMarketValue)

	c.JSON(http.StatusOK, stats)
}

// GetValueHistory returns stored daily value snapshots.
func (h *CollectionHandler) GetValueHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	snapshots, err := h.snapshotService.GetHistory(period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ValueHistoryResponse{
		Snapshots: snapshots,
		Period:    period,
	})
}

// TakeSnapshot records a value snapshot immediately.
func (h *CollectionHandler) TakeSnapshot(c *gin.Context) {
	if err := h.snapshotService.ForceTakeSnapshot(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.snapshotService.GetLastSnapshot())
}
