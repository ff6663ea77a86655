package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codyseavey/riftbound-tracker/internal/models"
)

const searchCacheSize = 256

// localCatalogCard is the on-disk JSON shape of one catalog entry
type localCatalogCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Domains     []string `json:"domains"`
	Region      string   `json:"region"`
	Rarity      string   `json:"rarity"`
	Number      string   `json:"number"`
	EnergyCost  *int     `json:"energy_cost"`
	MarketPrice *float64 `json:"market_price"`
	ImageURL    string   `json:"image_url"`
}

// localCatalogSet is one set file in the catalog data directory
type localCatalogSet struct {
	Code  string             `json:"code"`
	Name  string             `json:"name"`
	Cards []localCatalogCard `json:"cards"`
}

// CardCatalog serves the card catalog from local JSON set files. The
// catalog is loaded once at startup and is read-only afterwards, so
// lookups are safe from any goroutine.
type CardCatalog struct {
	mu          sync.RWMutex
	cards       []models.Card
	byID        map[string]int
	bySetNumber map[string]int
	setNames    map[string]string
	searchCache *lru.Cache[string, []models.Card]
}

// NewCardCatalog loads every *.json set file from dataDir.
func NewCardCatalog(dataDir string) (*CardCatalog, error) {
	cache, err := lru.New[string, []models.Card](searchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}

	catalog := &CardCatalog{
		byID:        make(map[string]int),
		bySetNumber: make(map[string]int),
		setNames:    make(map[string]string),
		searchCache: cache,
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dataDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		if err := catalog.loadSetFile(path); err != nil {
			log.Printf("Catalog: skipping %s: %v", entry.Name(), err)
		}
	}

	log.Printf("Catalog: loaded %d cards from %d sets", len(catalog.cards), len(catalog.setNames))
	return catalog, nil
}

func (c *CardCatalog) loadSetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read set file: %w", err)
	}

	var set localCatalogSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parse set file: %w", err)
	}
	if set.Code == "" {
		return fmt.Errorf("set file has no code")
	}

	c.setNames[strings.ToUpper(set.Code)] = set.Name

	for _, lc := range set.Cards {
		card := convertLocalCard(lc, set.Code)
		idx := len(c.cards)
		c.cards = append(c.cards, card)
		c.byID[card.ID] = idx
		c.bySetNumber[setNumberKey(card.SetCode, card.CardNumber)] = idx
	}
	return nil
}

func convertLocalCard(lc localCatalogCard, setCode string) models.Card {
	domains := make(models.DomainList, 0, len(lc.Domains))
	for _, d := range lc.Domains {
		domains = append(domains, models.Domain(strings.ToUpper(d)))
	}

	return models.Card{
		ID:          lc.ID,
		Name:        lc.Name,
		CardType:    models.CardType(strings.ToUpper(lc.Type)),
		Domains:     domains,
		Region:      lc.Region,
		Rarity:      lc.Rarity,
		SetCode:     strings.ToUpper(setCode),
		CardNumber:  padCardNumber(lc.Number),
		EnergyCost:  lc.EnergyCost,
		MarketPrice: lc.MarketPrice,
		ImageURL:    lc.ImageURL,
	}
}

func setNumberKey(setCode, number string) string {
	return strings.ToLower(setCode) + "/" + strings.ToLower(number)
}

// Cards returns the full catalog in load order. The caller must treat the
// slice as read-only.
func (c *CardCatalog) Cards() []models.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cards
}

// GetCard returns the catalog entry with the given id, or nil.
func (c *CardCatalog) GetCard(id string) *models.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return nil
	}
	card := c.cards[idx]
	return &card
}

// FindBySetAndNumber returns the unique entry with the given set code and
// collector number (case-insensitive), or nil.
func (c *CardCatalog) FindBySetAndNumber(setCode, number string) *models.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.bySetNumber[setNumberKey(setCode, number)]
	if !ok {
		return nil
	}
	card := c.cards[idx]
	return &card
}

// SetName returns the display name for a set code, or "".
func (c *CardCatalog) SetName(setCode string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.setNames[strings.ToUpper(setCode)]
}

// SearchCards finds catalog entries whose name contains the query,
// case-insensitively. Results are cached per normalized query.
func (c *CardCatalog) SearchCards(query string) (*models.CardSearchResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return &models.CardSearchResult{Cards: []models.Card{}}, nil
	}

	if cached, ok := c.searchCache.Get(normalized); ok {
		return &models.CardSearchResult{
			Cards:      cached,
			TotalCount: len(cached),
		}, nil
	}

	c.mu.RLock()
	matches := []models.Card{}
	for i := range c.cards {
		if strings.Contains(strings.ToLower(c.cards[i].Name), normalized) {
			matches = append(matches, c.cards[i])
		}
	}
	c.mu.RUnlock()

	c.searchCache.Add(normalized, matches)
	return &models.CardSearchResult{
		Cards:      matches,
		TotalCount: len(matches),
	}, nil
}

// CardCount returns the number of loaded catalog entries.
func (c *CardCatalog) CardCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// SetCount returns the number of loaded sets.
func (c *CardCatalog) SetCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.setNames)
}
