package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStorageService stores the photos that scanned collection items came
// from, so a physical card can always be traced back to its scan.
type ImageStorageService struct {
	storageDir string
}

func NewImageStorageService() *ImageStorageService {
	storageDir := os.Getenv("SCANNED_IMAGES_DIR")
	if storageDir == "" {
		storageDir = "./data/scanned_images"
	}

	// Ensure the storage directory exists
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		// Don't fail here - writes will surface the error
		log.Printf("Warning: could not create scanned images directory: %v", err)
	}

	return &ImageStorageService{
		storageDir: storageDir,
	}
}

// SaveImage saves image data to disk and returns the generated filename.
func (s *ImageStorageService) SaveImage(imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	filename := uuid.New().String() + ".jpg"
	filePath := filepath.Join(s.storageDir, filename)

	if err := os.WriteFile(filePath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return filename, nil
}

// GetStorageDir returns the storage directory path
func (s *ImageStorageService) GetStorageDir() string {
	return s.storageDir
}
