package handlers

import (
	"bytes"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/riftbound-tracker/internal/metrics"
	"github.com/codyseavey/riftbound-tracker/internal/models"
	"github.com/codyseavey/riftbound-tracker/internal/services"
)

// Maximum number of images accepted in one bulk scan request
const maxBulkImages = 20

type ScanHandler struct {
	catalog      *services.CardCatalog
	ocrClient    *services.OCRClient
	imageStorage *services.ImageStorageService
}

func NewScanHandler(catalog *services.CardCatalog, ocr *services.OCRClient, imageStorage *services.ImageStorageService) *ScanHandler {
	return &ScanHandler{
		catalog:      catalog,
		ocrClient:    ocr,
		imageStorage: imageStorage,
	}
}

// GetScanStatus reports whether image scanning is available.
func (h *ScanHandler) GetScanStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"configured": h.ocrClient.IsConfigured(),
		"healthy":    h.ocrClient.IsHealthy(),
		"languages":  h.ocrClient.Languages(),
	})
}

// ScanCard identifies a card from an uploaded photo: the OCR sidecar
// extracts text, then the catalog is matched in-process.
func (h *ScanHandler) ScanCard(c *gin.Context) {
	if !h.ocrClient.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Card scanning is not available",
			"message": "OCR service not configured",
		})
		return
	}

	imageBytes, ok := readImage(c)
	if !ok {
		return
	}

	start := time.Now()
	result, err := h.scanImage(c, imageBytes)
	if err != nil {
		log.Printf("Scan failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Card scan failed",
			"details": err.Error(),
		})
		return
	}
	metrics.ScanProcessingDuration.Observe(time.Since(start).Seconds())

	// Keep the photo so the identified card can be traced to its scan
	if result.Success && h.imageStorage != nil {
		if filename, err := h.imageStorage.SaveImage(imageBytes); err == nil {
			result.ImagePath = filename
		}
	}

	recordScanMetrics("image", *result)

	c.JSON(http.StatusOK, result)
}

// ScanBulk identifies a batch of photos. Images are processed one at a
// time; the OCR client's limiter bounds load on the sidecar.
func (h *ScanHandler) ScanBulk(c *gin.Context) {
	if !h.ocrClient.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Card scanning is not available",
			"message": "OCR service not configured",
		})
		return
	}

	var req struct {
		Images []string `json:"images" binding:"required"` // base64 encoded
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Images) > maxBulkImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many images, maximum is 20"})
		return
	}

	response := models.ScanBulkResponse{
		Results: make([]models.ScanResult, 0, len(req.Images)),
	}

	for _, encoded := range req.Images {
		imageBytes, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			response.Results = append(response.Results, models.ScanResult{
				Alternatives: []models.CardMatch{},
				Message:      "invalid base64 image data",
			})
			response.Processed++
			continue
		}

		result, err := h.scanImage(c, imageBytes)
		if err != nil {
			log.Printf("Bulk scan: image failed: %v", err)
			result = &models.ScanResult{
				Alternatives: []models.CardMatch{},
				Message:      err.Error(),
			}
		}

		response.Results = append(response.Results, *result)
		response.Processed++
		if result.Success {
			response.Matched++
		}
		recordScanMetrics("bulk", *result)
	}

	c.JSON(http.StatusOK, response)
}

func (h *ScanHandler) scanImage(c *gin.Context, imageBytes []byte) (*models.ScanResult, error) {
	extraction, err := h.ocrClient.ExtractText(c.Request.Context(), imageBytes)
	if err != nil {
		return nil, err
	}

	parse := services.ParseScanText(extraction.Fragments, extraction.FullText)
	matches := services.IdentifyCard(parse, h.catalog.Cards())
	result := services.BuildScanResult(parse, matches)
	return &result, nil
}

// readImage accepts either a multipart file upload or a base64 JSON body.
func readImage(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("image")
	if err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return nil, false
		}
		defer src.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(src); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return nil, false
		}
		return buf.Bytes(), true
	}

	var req struct {
		Image string `json:"image"` // Base64 encoded image
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No image provided",
			"message": "Upload an image file or provide base64 encoded image in JSON body",
		})
		return nil, false
	}

	imageBytes, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 image data"})
		return nil, false
	}
	return imageBytes, true
}
