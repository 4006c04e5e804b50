package report

import (
	"github.com/samber/lo"

	"github.com/domino14/yahtzee/scoring"
	"github.com/domino14/yahtzee/stats"
)

// Summary aggregates many games. Per-category maps are keyed by category
// code.
type Summary struct {
	Games     int     `yaml:"games"`
	Mean      float64 `yaml:"mean"`
	Median    float64 `yaml:"median"`
	Min       int     `yaml:"min"`
	Max       int     `yaml:"max"`
	Stdev     float64 `yaml:"stdev"`
	CI99      float64 `yaml:"ci99"`
	BonusRate float64 `yaml:"bonus_rate"`

	MeanByCategory     map[string]float64        `yaml:"mean_by_category"`
	ZeroRateByCategory map[string]float64        `yaml:"zero_rate_by_category"`
	TotalHistogram     []stats.Bucket            `yaml:"total_histogram"`
	CategoryHistograms map[string][]stats.Bucket `yaml:"category_histograms"`
}

func Summarize(records []GameRecord) *Summary {
	s := &Summary{
		Games:              len(records),
		MeanByCategory:     map[string]float64{},
		ZeroRateByCategory: map[string]float64{},
		CategoryHistograms: map[string][]stats.Bucket{},
	}
	if len(records) == 0 {
		return s
	}

	totals := lo.Map(records, func(r GameRecord, _ int) int { return r.Total })
	var total stats.Statistic
	for _, t := range totals {
		total.PushInt(t)
	}
	fl := stats.Floats(totals)
	lowest, highest := stats.MinMax(fl)

	s.Mean = total.Mean()
	s.Median = stats.Median(fl)
	s.Min, s.Max = int(lowest), int(highest)
	s.Stdev = total.Stdev()
	s.CI99 = total.ConfidenceInterval(99)
	s.BonusRate = rate(records, func(r GameRecord) bool { return r.Bonus > 0 })
	s.TotalHistogram = stats.Frequencies(totals)

	for _, c := range scoring.AllCategories() {
		scores := make([]int, len(records))
		var st stats.Statistic
		for i, r := range records {
			scores[i] = r.Scores[c]
			st.PushInt(r.Scores[c])
		}
		s.MeanByCategory[c.Code()] = st.Mean()
		s.ZeroRateByCategory[c.Code()] = rate(records, func(r GameRecord) bool { return r.Scores[c] == 0 })
		s.CategoryHistograms[c.Code()] = stats.Frequencies(scores)
	}
	return s
}

func rate(records []GameRecord, pred func(GameRecord) bool) float64 {
	return float64(lo.CountBy(records, pred)) / float64(len(records))
}
