package automatic

import (
	"fmt"
	"os"

	"github.com/domino14/yahtzee/report"
)

// AnalyzeLogFile re-aggregates a games.csv written by a batch run.
func AnalyzeLogFile(path string) (*report.Summary, []report.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	records, err := report.ReadCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return report.Summarize(records), records, nil
}
