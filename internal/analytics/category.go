package analytics

import (
	"sort"

	"github.com/secintel/secintel/internal/entity"
)

// Dimension selects the categorical field of a breakdown.
type Dimension string

// Supported breakdown dimensions.
const (
	DimensionThreatCategory Dimension = "threat_category"
	DimensionEventType      Dimension = "event_type"
	DimensionGeoCountry     Dimension = "geo_country"
)

// Valid reports whether the dimension is one of the supported selectors.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionThreatCategory, DimensionEventType, DimensionGeoCountry:
		return true
	}
	return false
}

func (d Dimension) valueOf(e entity.SecurityEvent) string {
	switch d {
	case DimensionEventType:
		return e.EventType
	case DimensionGeoCountry:
		return e.GeoCountry
	default:
		return e.ThreatCategory
	}
}

// CategoryBreakdown counts events per value of the given dimension and
// derives each value's percentage of the total plus the cumulative percentage
// in count-descending order.
func CategoryBreakdown(events []entity.SecurityEvent, dimension Dimension) []CategoryStat {
	if len(events) == 0 {
		return nil
	}

	counts := make(map[string]uint64)
	for _, e := range events {
		counts[dimension.valueOf(e)]++
	}

	out := make([]CategoryStat, 0, len(counts))
	for value, count := range counts {
		out = append(out, CategoryStat{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	total := float64(len(events))
	var cumulative float64
	for i := range out {
		out[i].Percentage = round2(float64(out[i].Count) / total * 100)
		cumulative += float64(out[i].Count) / total * 100
		out[i].CumulativePct = round2(cumulative)
	}
	return out
}

// SeverityDistribution counts events per severity tier with each tier's
// percentage of the total, ordered critical→high→medium→low. Tiers absent
// from the data are omitted.
func SeverityDistribution(events []entity.SecurityEvent) []SeveritySlice {
	if len(events) == 0 {
		return nil
	}

	counts := make(map[string]uint64)
	for _, e := range events {
		counts[e.Severity]++
	}

	total := float64(len(events))
	var out []SeveritySlice
	for _, severity := range entity.Severities {
		count, ok := counts[severity]
		if !ok {
			continue
		}
		out = append(out, SeveritySlice{
			Severity:   severity,
			Count:      count,
			Percentage: round2(float64(count) / total * 100),
		})
	}
	return out
}
