package report

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/yahtzee/scoring"
	"github.com/domino14/yahtzee/stats"
)

const histogramWidth = 50

// WriteText writes a human-readable summary.
func (s *Summary) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.English)
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = p.Fprintf(w, format, args...)
		}
	}

	printf("Games played: %d\n", s.Games)
	if s.Games == 0 {
		return err
	}
	printf("Mean score: %.2f ± %.2f (99%%)\n", s.Mean, s.CI99)
	printf("Median score: %.1f\n", s.Median)
	printf("Stdev: %.2f\n", s.Stdev)
	printf("Min / Max: %d / %d\n", s.Min, s.Max)
	printf("Upper bonus rate: %.2f%%\n", 100*s.BonusRate)
	printf("\n%-20s %8s %8s\n", "Category", "Mean", "Zero %")
	for _, c := range scoring.AllCategories() {
		printf("%-20s %8.2f %7.2f%%\n", c, s.MeanByCategory[c.Code()], 100*s.ZeroRateByCategory[c.Code()])
	}
	return err
}

func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteHistogram draws the distribution of total scores in bins buckets.
func WriteHistogram(w io.Writer, records []GameRecord, bins int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no games")
		return err
	}
	totals := stats.Floats(lo.Map(records, func(r GameRecord, _ int) int { return r.Total }))
	lowest, highest := stats.MinMax(totals)
	if lowest == highest {
		// every game scored the same; there is nothing to bucket.
		_, err := fmt.Fprintf(w, "%v: %d\n", lowest, len(totals))
		return err
	}
	h := histogram.Hist(bins, totals)
	return histogram.Fprint(w, h, histogram.Linear(histogramWidth))
}
