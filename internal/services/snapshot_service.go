package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codyseavey/riftbound-tracker/internal/database"
	"github.com/codyseavey/riftbound-tracker/internal/models"
)

// SnapshotService records daily collection value snapshots so value
// history can be charted over time.
type SnapshotService struct {
	mu            sync.RWMutex
	lastSnapshot  time.Time
	snapshotHour  int // Hour of day to take snapshot (0-23)
	checkInterval time.Duration
}

func NewSnapshotService() *SnapshotService {
	return &SnapshotService{
		snapshotHour:  23, // Default: 11 PM
		checkInterval: 15 * time.Minute,
	}
}

// Start begins the background snapshot worker
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily collection value")

	// Check if we need to take a snapshot for today on startup
	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

func (s *SnapshotService) checkAndSnapshot() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.hasSnapshotForDate(today) {
		return
	}

	// Only take automatic snapshots at or after the configured hour
	if now.Hour() >= s.snapshotHour {
		if err := s.TakeSnapshot(); err != nil {
			log.Printf("Snapshot service: failed to take snapshot: %v", err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(date time.Time) bool {
	db := database.GetDB()

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var count int64
	db.Model(&models.CollectionValueSnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date < ?", startOfDay, endOfDay).
		Count(&count)

	return count > 0
}

// TakeSnapshot records the current collection value, computed through the
// same stats reduction the collection stats endpoint uses.
func (s *SnapshotService) TakeSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := database.GetDB()
	now := time.Now()
	snapshotDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var items []models.CollectionItem
	if err := db.Preload("Card").Find(&items).Error; err != nil {
		return err
	}
	stats := ComputeCollectionStats(items)

	snapshot := models.CollectionValueSnapshot{
		SnapshotDate:  snapshotDate,
		TotalQuantity: stats.TotalQuantity,
		UniqueCards:   stats.TotalUniqueCards,
		TotalValue:    stats.EstimatedMarketValue,
		CreatedAt:     now,
	}

	// Use upsert to handle duplicate dates
	result := db.Where("DATE(snapshot_date) = DATE(?)", snapshotDate).
		Assign(models.CollectionValueSnapshot{
			TotalQuantity: snapshot.TotalQuantity,
			UniqueCards:   snapshot.UniqueCards,
			TotalValue:    snapshot.TotalValue,
		}).
		FirstOrCreate(&snapshot)

	if result.Error != nil {
		return result.Error
	}

	s.lastSnapshot = now
	log.Printf("Snapshot service: recorded value snapshot for %s (total: $%.2f, cards: %d)",
		snapshotDate.Format("2006-01-02"), stats.EstimatedMarketValue, stats.TotalQuantity)

	return nil
}

// GetHistory retrieves value snapshots for a given period
func (s *SnapshotService) GetHistory(period string) ([]models.CollectionValueSnapshot, error) {
	db := database.GetDB()
	var snapshots []models.CollectionValueSnapshot

	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "3month":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{} // No filter
	default:
		startDate = now.AddDate(0, -1, 0) // Default to 1 month
	}

	query := db.Order("snapshot_date ASC")
	if !startDate.IsZero() {
		query = query.Where("snapshot_date >= ?", startDate)
	}

	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

// GetLastSnapshot returns the most recent snapshot
func (s *SnapshotService) GetLastSnapshot() *models.CollectionValueSnapshot {
	db := database.GetDB()
	var snapshot models.CollectionValueSnapshot

	if err := db.Order("snapshot_date DESC").First(&snapshot).Error; err != nil {
		return nil
	}

	return &snapshot
}

// ForceTakeSnapshot takes a snapshot regardless of timing (for manual triggers)
func (s *SnapshotService) ForceTakeSnapshot() error {
	return s.TakeSnapshot()
}
