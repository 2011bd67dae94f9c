// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes
const (
	OutcomeSuccess       = "success"
	OutcomeConfiguration = "configuration"
	OutcomeService       = "service"
	OutcomeParse         = "parse"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_compass_recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_compass_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests, including retries",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120, 180},
		},
	)

	RecommendationEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_compass_recommendation_entries",
			Help:    "Number of accepted entries per batch",
			Buckets: []float64{0, 5, 10, 15, 20, 25, 30},
		},
	)

	RecommendationRejectedEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_compass_recommendation_rejected_entries_total",
			Help: "Total number of entries dropped during validation",
		},
	)

	RecommendationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "career_compass_recommendations_in_flight",
			Help: "Number of recommendation requests awaiting the model",
		},
	)

	ServiceAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_compass_service_attempts_total",
			Help: "Total number of calls to the reasoning service by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_compass_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "career_compass_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_compass_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)
