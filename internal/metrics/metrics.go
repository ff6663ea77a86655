// Package metrics provides Prometheus metrics for the Riftbound Tracker
// backend. Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftbound_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riftbound_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Scan Metrics
	ScanRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftbound_scan_requests_total",
			Help: "Total number of card identification requests",
		},
		[]string{"type", "result"}, // type: "text", "image" or "bulk", result: "matched" or "unmatched"
	)

	ScanProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riftbound_scan_processing_duration_seconds",
			Help:    "Time taken to process identification requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)

	ScanMatchConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riftbound_scan_match_confidence",
			Help:    "Confidence scores of best identification matches",
			Buckets: []float64{0.1, 0.3, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
		},
	)

	// Deck Validation Metrics
	DeckValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftbound_deck_validations_total",
			Help: "Total deck validation runs",
		},
		[]string{"result"}, // "valid" or "invalid"
	)

	DeckValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riftbound_deck_validation_errors_total",
			Help: "Deck validation errors by rule",
		},
		[]string{"rule"},
	)

	// Collection Metrics
	CollectionCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "riftbound_collection_cards_total",
			Help: "Total number of cards in collection",
		},
	)

	CollectionValueUSD = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "riftbound_collection_value_usd",
			Help: "Total estimated value of collection in USD",
		},
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "riftbound_catalog_size",
			Help: "Number of cards in the loaded catalog",
		},
	)
)
