package stats

import (
	"slices"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Bucket is one distinct value and how often it occurred.
type Bucket struct {
	Value int `yaml:"value"`
	Count int `yaml:"count"`
}

// Median returns the median of vals; the two middle values are averaged
// for an even count. An empty slice has median 0. vals is not modified.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := slices.Clone(vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MinMax returns the smallest and largest of vals, or 0, 0 when empty.
func MinMax(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	return floats.Min(vals), floats.Max(vals)
}

// Frequencies counts each distinct value, sorted by value.
func Frequencies(vals []int) []Bucket {
	counts := lo.CountValues(vals)
	buckets := lo.MapToSlice(counts, func(v int, c int) Bucket {
		return Bucket{Value: v, Count: c}
	})
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Value < buckets[j].Value
	})
	return buckets
}

// Floats converts integer samples for the float helpers.
func Floats(vals []int) []float64 {
	return lo.Map(vals, func(v int, _ int) float64 { return float64(v) })
}
