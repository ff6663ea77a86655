package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// OCRExtraction is the text the OCR sidecar pulled out of a card photo.
type OCRExtraction struct {
	Fragments  []string `json:"fragments"`
	FullText   string   `json:"full_text"`
	Confidence float64  `json:"confidence"`
}

type ocrHealthResponse struct {
	Status    string   `json:"status"`
	Languages []string `json:"languages"`
}

// OCRClient talks to the external OCR sidecar that turns card photos into
// text fragments. Extraction requests are rate limited to one at a time so
// bulk scans do not overload the sidecar.
type OCRClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	// Cached health status
	mu              sync.RWMutex
	lastHealthCheck time.Time
	cachedHealthy   bool
	cachedLanguages []string
}

func NewOCRClient() *OCRClient {
	baseURL := os.Getenv("OCR_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8099"
	}

	svc := &OCRClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}

	// Run initial health check in background
	go svc.checkHealth()

	return svc
}

func (s *OCRClient) IsConfigured() bool {
	if s.baseURL == "" {
		return false
	}
	// Default is local dev; treat as "not configured" unless explicitly set.
	return os.Getenv("OCR_SERVICE_URL") != ""
}

// IsHealthy returns true if the OCR sidecar is reachable. Uses cached
// result (refreshed every 60 seconds) to avoid blocking on every request.
func (s *OCRClient) IsHealthy() bool {
	s.mu.RLock()
	if time.Since(s.lastHealthCheck) < 60*time.Second {
		healthy := s.cachedHealthy
		s.mu.RUnlock()
		return healthy
	}
	s.mu.RUnlock()

	return s.checkHealth()
}

// Languages returns the OCR languages the sidecar reports as loaded.
func (s *OCRClient) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cachedLanguages
}

func (s *OCRClient) checkHealth() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		s.updateHealthCache(false, nil)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[OCR] health check failed: %v", err)
		s.updateHealthCache(false, nil)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.updateHealthCache(false, nil)
		return false
	}

	var health ocrHealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		s.updateHealthCache(false, nil)
		return false
	}

	healthy := health.Status == "ok"
	s.updateHealthCache(healthy, health.Languages)
	return healthy
}

func (s *OCRClient) updateHealthCache(healthy bool, languages []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHealthCheck = time.Now()
	s.cachedHealthy = healthy
	s.cachedLanguages = languages
}

// ExtractText sends a card image to the sidecar and returns the OCR'd
// fragments. Waits on the limiter first so concurrent bulk scans are
// processed one image at a time.
func (s *OCRClient) ExtractText(ctx context.Context, img []byte) (*OCRExtraction, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for ocr slot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 25*time.Second)
	defer cancel()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("image", "card.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(img); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/extract-text", &buf)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract text request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return nil, fmt.Errorf("extract text failed status=%d", resp.StatusCode)
	}

	var out OCRExtraction
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode extract text response: %w", err)
	}

	return &out, nil
}
