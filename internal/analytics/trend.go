package analytics

import (
	"sort"
	"time"

	"github.com/secintel/secintel/internal/entity"
)

// movingAvgWindow is the trailing window of the per-severity moving average:
// the current bucket plus the six preceding ones.
const movingAvgWindow = 7

// TrendBuckets groups events into hourly buckets per severity tier and
// computes, within each severity partition independently, a running total and
// a trailing 7-bucket moving average. Only buckets at or after the newest
// bucket minus lookbackHours are returned, ordered by bucket ascending then
// severity ascending. An empty input yields an empty result.
func TrendBuckets(events []entity.SecurityEvent, lookbackHours int) []TrendBucket {
	if len(events) == 0 {
		return nil
	}

	type groupKey struct {
		bucket   time.Time
		severity string
	}
	counts := make(map[groupKey]uint64)
	var maxBucket time.Time
	for _, e := range events {
		bucket := e.Timestamp.UTC().Truncate(time.Hour)
		counts[groupKey{bucket, e.Severity}]++
		if bucket.After(maxBucket) {
			maxBucket = bucket
		}
	}

	// Partition buckets by severity, each sorted by time ascending.
	partitions := make(map[string][]TrendBucket)
	for key, count := range counts {
		partitions[key.severity] = append(partitions[key.severity], TrendBucket{
			Bucket:   key.bucket,
			Severity: key.severity,
			Count:    count,
		})
	}

	// Running totals and moving averages are computed over the full history
	// of each partition; the lookback cutoff is applied afterwards so the
	// first returned bucket still carries its true cumulative value.
	cutoff := maxBucket.Add(-time.Duration(lookbackHours) * time.Hour)

	var out []TrendBucket
	for _, partition := range partitions {
		sort.Slice(partition, func(i, j int) bool {
			return partition[i].Bucket.Before(partition[j].Bucket)
		})

		var runningTotal uint64
		var windowSum uint64
		for i := range partition {
			runningTotal += partition[i].Count
			partition[i].RunningTotal = runningTotal

			windowSum += partition[i].Count
			if i >= movingAvgWindow {
				windowSum -= partition[i-movingAvgWindow].Count
			}
			windowLen := i + 1
			if windowLen > movingAvgWindow {
				windowLen = movingAvgWindow
			}
			partition[i].MovingAvg = round2(float64(windowSum) / float64(windowLen))

			if !partition[i].Bucket.Before(cutoff) {
				out = append(out, partition[i])
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Bucket.Equal(out[j].Bucket) {
			return out[i].Bucket.Before(out[j].Bucket)
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}
