package models

import "time"

// SystemMetrics is a lightweight snapshot of service counters for the
// health/metrics surface.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DocumentsParsed          uint64    `json:"documents_parsed"`
	SchedulesGenerated       uint64    `json:"schedules_generated"`
	EmailsSent               uint64    `json:"emails_sent"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
