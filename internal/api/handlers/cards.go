package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/riftbound-tracker/internal/metrics"
	"github.com/codyseavey/riftbound-tracker/internal/models"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

type CardHandler struct {
	catalog *services.CardCatalog
}

func NewCardHandler(catalog *services.CardCatalog) *CardHandler {
	return &CardHandler{
		catalog: catalog,
	}
}

func (h *CardHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	result, err := h.catalog.SearchCards(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CardHandler) GetCard(c *gin.Context) {
	id := c.Param("id")

	card := h.catalog.GetCard(id)
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, card)
}

// IdentifyCard identifies a card from already-extracted OCR text. The
// client sends the individual text fragments plus the concatenated full
// text; the catalog is matched in-process.
func (h *CardHandler) IdentifyCard(c *gin.Context) {
	var req struct {
		Fragments []string `json:"fragments"`
		FullText  string   `json:"full_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	parse := services.ParseScanText(req.Fragments, req.FullText)
	matches := services.IdentifyCard(parse, h.catalog.Cards())
	result := services.BuildScanResult(parse, matches)
	metrics.ScanProcessingDuration.Observe(time.Since(start).Seconds())

	recordScanMetrics("text", result)

	c.JSON(http.StatusOK, result)
}

// recordScanMetrics tracks identification outcomes for dashboards
func recordScanMetrics(scanType string, result models.ScanResult) {
	outcome := "unmatched"
	if result.Success {
		outcome = "matched"
		metrics.ScanMatchConfidence.Observe(result.BestMatch.Confidence)
	}
	metrics.ScanRequestsTotal.WithLabelValues(scanType, outcome).Inc()
}
