// Package analytics implements the aggregation core of the platform: the
// windowing, ranking and categorical statistics computed over the security
// event stream. Every aggregation is a pure function of an event slice and
// its parameters; the Engine binds them to an EventStore and bounds
// concurrent store scans.
package analytics

import (
	"math"
	"time"

	"github.com/secintel/secintel/internal/entity"
)

// TrendBucket is one (hour, severity) row of the severity trend.
type TrendBucket struct {
	Bucket       time.Time `json:"hour_bucket"`
	Severity     string    `json:"severity"`
	Count        uint64    `json:"event_count"`
	RunningTotal uint64    `json:"running_total"`
	MovingAvg    float64   `json:"moving_avg_7h"`
}

// AttackerStat is the ranked summary for one source address.
type AttackerStat struct {
	SrcIP             string    `json:"source_ip"`
	TotalEvents       uint64    `json:"total_events"`
	CriticalEvents    uint64    `json:"critical_events"`
	HighEvents        uint64    `json:"high_events"`
	UniqueAttackTypes uint64    `json:"unique_attack_types"`
	FirstSeen         time.Time `json:"first_seen"`
	LastSeen          time.Time `json:"last_seen"`
	Rank              int       `json:"attack_rank"`
	Percentile        float64   `json:"percentile"`
	PctOfTotal        float64   `json:"pct_of_total"`
}

// CategoryStat is one row of a categorical breakdown, ordered by count
// descending with a cumulative share in that order.
type CategoryStat struct {
	Value         string  `json:"value"`
	Count         uint64  `json:"count"`
	Percentage    float64 `json:"percentage"`
	CumulativePct float64 `json:"cumulative_pct"`
}

// SeveritySlice is one tier of the severity distribution.
type SeveritySlice struct {
	Severity   string  `json:"severity"`
	Count      uint64  `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Summary is the single-row KPI rollup. All fields are zero for an empty
// dataset.
type Summary struct {
	TotalEvents            uint64  `json:"total_events"`
	CriticalEvents         uint64  `json:"critical_events"`
	HighEvents             uint64  `json:"high_events"`
	MediumEvents           uint64  `json:"medium_events"`
	LowEvents              uint64  `json:"low_events"`
	AvgSeverityScore       float64 `json:"avg_severity_score"`
	UniqueSourceIPs        uint64  `json:"unique_source_ips"`
	UniqueDestIPs          uint64  `json:"unique_dest_ips"`
	UniqueEventTypes       uint64  `json:"unique_event_types"`
	UniqueThreatCategories uint64  `json:"unique_threat_categories"`
	EventsLast24h          uint64  `json:"events_last_24h"`
	SevereLast24h          uint64  `json:"severe_last_24h"`
	AvgEventsPerHour       float64 `json:"avg_events_per_hour"`
}

// PageParams selects one page of filtered events.
type PageParams struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	Severity  string `json:"severity,omitempty"`
	EventType string `json:"event_type,omitempty"`
}

// PageMeta carries pagination metadata alongside a page of records.
type PageMeta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      uint64 `json:"total"`
	TotalPages uint64 `json:"total_pages"`
}

// EventPage is one page of matching events plus its metadata.
type EventPage struct {
	Data       []entity.SecurityEvent `json:"data"`
	Pagination PageMeta               `json:"pagination"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
