// Package nps implements Net Promoter Score arithmetic over response rows:
// the score itself, promoter/passive/detractor partitioning, and the
// time-bucketed trend series used by dashboards.
package nps

import (
	"math"
	"sort"
	"time"

	"github.com/meunps/platform/internal/domain"
)

// Category thresholds on the 0-10 scale.
const (
	promoterMin  = 9
	detractorMax = 6
)

// MinBucketWidth is the narrowest trend bucket. Short campaigns still get
// week-wide buckets so single-day noise doesn't dominate the chart.
const MinBucketWidth = 7 * 24 * time.Hour

// Breakdown holds the category counts for a set of responses.
type Breakdown struct {
	Promoters  int `json:"promoters"`
	Passives   int `json:"passives"`
	Detractors int `json:"detractors"`
	Total      int `json:"total"`
}

// TrendPoint is one bucket of the NPS-over-time series.
type TrendPoint struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
}

// Calculate returns round(((promoters - detractors) / total) * 100).
// Empty input yields 0. Rounding is half-away-from-zero (math.Round),
// matching the original platform's behavior.
func Calculate(responses []domain.NpsResponse) int {
	if len(responses) == 0 {
		return 0
	}
	b := Categorize(responses)
	return int(math.Round(float64(b.Promoters-b.Detractors) / float64(b.Total) * 100))
}

// Categorize partitions responses into promoters (score >= 9), passives
// (7-8) and detractors (<= 6). The partition is exhaustive and disjoint:
// Promoters + Passives + Detractors == Total for any input.
func Categorize(responses []domain.NpsResponse) Breakdown {
	b := Breakdown{Total: len(responses)}
	for _, r := range responses {
		switch {
		case r.Score >= promoterMin:
			b.Promoters++
		case r.Score <= detractorMax:
			b.Detractors++
		default:
			b.Passives++
		}
	}
	return b
}

// OverTime computes the NPS trend: the span from the earliest response to
// now is divided into periods equal-width buckets (each at least
// MinBucketWidth wide) and Calculate runs per bucket. Bucket membership is
// created_at >= start && created_at < end. Empty input yields an empty
// series.
func OverTime(responses []domain.NpsResponse, periods int) []TrendPoint {
	if len(responses) == 0 || periods <= 0 {
		return nil
	}

	sorted := make([]domain.NpsResponse, len(responses))
	copy(sorted, responses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	start := sorted[0].CreatedAt
	end := time.Now()
	width := end.Sub(start) / time.Duration(periods)
	if width < MinBucketWidth {
		width = MinBucketWidth
	}

	points := make([]TrendPoint, 0, periods)
	for i := 0; i < periods; i++ {
		bucketStart := start.Add(time.Duration(i) * width)
		bucketEnd := bucketStart.Add(width)

		var bucket []domain.NpsResponse
		for _, r := range sorted {
			if !r.CreatedAt.Before(bucketStart) && r.CreatedAt.Before(bucketEnd) {
				bucket = append(bucket, r)
			}
		}

		points = append(points, TrendPoint{
			PeriodStart: bucketStart,
			PeriodEnd:   bucketEnd,
			Score:       Calculate(bucket),
			Total:       len(bucket),
		})
	}
	return points
}
