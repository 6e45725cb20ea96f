package analytics

import (
	"time"

	"github.com/secintel/secintel/internal/entity"
)

// Summarize computes the single-row KPI rollup over the full event set.
// The trailing-24h counts are measured back from now. An empty dataset
// yields an all-zero Summary. The events-per-hour divisor is the span
// between the oldest and newest event, clamped to a minimum of one hour so
// a sub-hour corpus still produces a finite rate.
func Summarize(events []entity.SecurityEvent, now time.Time) Summary {
	if len(events) == 0 {
		return Summary{}
	}

	var s Summary
	var scoreSum uint64
	srcIPs := make(map[string]struct{})
	dstIPs := make(map[string]struct{})
	eventTypes := make(map[string]struct{})
	categories := make(map[string]struct{})
	cutoff24 := now.Add(-24 * time.Hour)
	oldest, newest := events[0].Timestamp, events[0].Timestamp

	for _, e := range events {
		s.TotalEvents++
		switch e.Severity {
		case entity.SeverityCritical:
			s.CriticalEvents++
		case entity.SeverityHigh:
			s.HighEvents++
		case entity.SeverityMedium:
			s.MediumEvents++
		case entity.SeverityLow:
			s.LowEvents++
		}
		scoreSum += uint64(e.SeverityScore)
		srcIPs[e.SrcIP] = struct{}{}
		dstIPs[e.DstIP] = struct{}{}
		eventTypes[e.EventType] = struct{}{}
		categories[e.ThreatCategory] = struct{}{}

		if !e.Timestamp.Before(cutoff24) {
			s.EventsLast24h++
			if e.Severity == entity.SeverityCritical || e.Severity == entity.SeverityHigh {
				s.SevereLast24h++
			}
		}
		if e.Timestamp.Before(oldest) {
			oldest = e.Timestamp
		}
		if e.Timestamp.After(newest) {
			newest = e.Timestamp
		}
	}

	s.AvgSeverityScore = round2(float64(scoreSum) / float64(s.TotalEvents))
	s.UniqueSourceIPs = uint64(len(srcIPs))
	s.UniqueDestIPs = uint64(len(dstIPs))
	s.UniqueEventTypes = uint64(len(eventTypes))
	s.UniqueThreatCategories = uint64(len(categories))

	spanHours := newest.Sub(oldest).Hours()
	if spanHours < 1 {
		spanHours = 1
	}
	s.AvgEventsPerHour = round2(float64(s.TotalEvents) / spanHours)
	return s
}
