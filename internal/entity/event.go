package entity

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEvent represents a single ingested security log event.
// Events are append-only: created once at ingestion and never mutated.
type SecurityEvent struct {
	EventID   uuid.UUID `json:"event_id" ch:"event_id"`
	Timestamp time.Time `json:"timestamp" ch:"timestamp"`

	// Network
	SrcIP    string `json:"source_ip" ch:"source_ip"`
	DstIP    string `json:"destination_ip" ch:"destination_ip"`
	SrcPort  uint16 `json:"source_port" ch:"source_port"`
	DstPort  uint16 `json:"destination_port" ch:"destination_port"`
	Protocol string `json:"protocol" ch:"protocol"`

	// Classification
	EventType      string `json:"event_type" ch:"event_type"`
	Severity       string `json:"severity" ch:"severity"`
	SeverityScore  uint8  `json:"severity_score" ch:"severity_score"`
	ThreatCategory string `json:"threat_category" ch:"threat_category"`
	ActionTaken    string `json:"action_taken" ch:"action_taken"`

	// Context
	Description string `json:"description" ch:"description"`
	UserAgent   string `json:"user_agent,omitempty" ch:"user_agent"`
	GeoCountry  string `json:"geo_country" ch:"geo_country"`
	RawLog      string `json:"raw_log,omitempty" ch:"raw_log"`
}

// EventFilters narrows an event query. Zero-valued fields are ignored.
type EventFilters struct {
	Severity  string    `json:"severity"`
	EventType string    `json:"event_type"`
	SrcIP     string    `json:"source_ip"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Matches reports whether an event satisfies every set filter.
func (f EventFilters) Matches(e SecurityEvent) bool {
	if f.Severity != "" && e.Severity != f.Severity {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.SrcIP != "" && e.SrcIP != f.SrcIP {
		return false
	}
	if !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime) {
		return false
	}
	if !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime) {
		return false
	}
	return true
}

// Severity tiers, ordered from most to least severe.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Severities lists all tiers in critical→low order.
var Severities = []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ScoreRange returns the inclusive severity-score bounds for a tier.
// Unknown tiers return (0, 0).
func ScoreRange(severity string) (min, max uint8) {
	switch severity {
	case SeverityLow:
		return 1, 3
	case SeverityMedium:
		return 4, 5
	case SeverityHigh:
		return 6, 8
	case SeverityCritical:
		return 9, 10
	}
	return 0, 0
}

// SeverityForScore returns the tier whose range contains score, or "" when
// the score is outside 1–10.
func SeverityForScore(score uint8) string {
	switch {
	case score >= 1 && score <= 3:
		return SeverityLow
	case score <= 5:
		return SeverityMedium
	case score <= 8:
		return SeverityHigh
	case score <= 10:
		return SeverityCritical
	}
	return ""
}

// ValidScore reports whether a score lies within its tier's range.
func ValidScore(severity string, score uint8) bool {
	min, max := ScoreRange(severity)
	return min != 0 && score >= min && score <= max
}
