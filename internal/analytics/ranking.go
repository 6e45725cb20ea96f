package analytics

import (
	"sort"

	"github.com/secintel/secintel/internal/entity"
)

// TopAttackers groups events by source address and ranks the resulting
// attacker statistics by total event count.
//
// Rank uses competition ("RANK") semantics: equal totals share a rank and the
// next distinct total skips ahead by the size of the tie group. Percentile is
// the percent-rank of the total in ascending order, (r-1)/(n-1) over the n
// attackers, 0 when n == 1. PctOfTotal is the attacker's share of all events.
//
// Every attacker whose rank is at or below limit is returned, so a tie group
// straddling the limit can push the result past limit rows. That is the
// intended contract, not an off-by-one.
func TopAttackers(events []entity.SecurityEvent, limit int) []AttackerStat {
	if len(events) == 0 || limit < 1 {
		return nil
	}

	type acc struct {
		stat  AttackerStat
		types map[string]struct{}
	}
	bySource := make(map[string]*acc)
	var grandTotal uint64
	for _, e := range events {
		a, ok := bySource[e.SrcIP]
		if !ok {
			a = &acc{
				stat: AttackerStat{
					SrcIP:     e.SrcIP,
					FirstSeen: e.Timestamp,
					LastSeen:  e.Timestamp,
				},
				types: make(map[string]struct{}),
			}
			bySource[e.SrcIP] = a
		}
		a.stat.TotalEvents++
		grandTotal++
		switch e.Severity {
		case entity.SeverityCritical:
			a.stat.CriticalEvents++
		case entity.SeverityHigh:
			a.stat.HighEvents++
		}
		a.types[e.EventType] = struct{}{}
		if e.Timestamp.Before(a.stat.FirstSeen) {
			a.stat.FirstSeen = e.Timestamp
		}
		if e.Timestamp.After(a.stat.LastSeen) {
			a.stat.LastSeen = e.Timestamp
		}
	}

	stats := make([]AttackerStat, 0, len(bySource))
	for _, a := range bySource {
		a.stat.UniqueAttackTypes = uint64(len(a.types))
		stats = append(stats, a.stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalEvents != stats[j].TotalEvents {
			return stats[i].TotalEvents > stats[j].TotalEvents
		}
		return stats[i].SrcIP < stats[j].SrcIP
	})

	// smallerThan[t] = number of attackers with a total strictly below t,
	// which is the ascending competition rank minus one.
	n := len(stats)
	smallerThan := make(map[uint64]int, n)
	for i := n - 1; i >= 0; i-- {
		if _, ok := smallerThan[stats[i].TotalEvents]; !ok {
			smallerThan[stats[i].TotalEvents] = n - 1 - i
		}
	}

	var out []AttackerStat
	for i := range stats {
		if i > 0 && stats[i].TotalEvents == stats[i-1].TotalEvents {
			stats[i].Rank = stats[i-1].Rank
		} else {
			stats[i].Rank = i + 1
		}
		if n > 1 {
			stats[i].Percentile = round4(float64(smallerThan[stats[i].TotalEvents]) / float64(n-1))
		}
		stats[i].PctOfTotal = round4(float64(stats[i].TotalEvents) / float64(grandTotal) * 100)

		if stats[i].Rank <= limit {
			out = append(out, stats[i])
		}
	}
	return out
}
