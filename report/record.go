// Package report turns finished games into records, aggregates them, and
// renders the results as CSV, text, YAML and a histogram.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"

	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

const idColumn = "gameID"

var ErrBadRecord = errors.New("bad game record")

// GameRecord is the final state of one game's sheet.
type GameRecord struct {
	ID     string
	Total  int
	Upper  int
	Bonus  int
	Scores [scoring.NumCategories]int
}

// RecordFromSheet captures a sheet. Unfilled categories count as zero.
func RecordFromSheet(id string, s *game.Sheet) GameRecord {
	rec := GameRecord{
		ID:    id,
		Total: s.TotalScore(),
		Upper: s.UpperSectionTotal(),
	}
	if s.HasBonus() {
		rec.Bonus = scoring.UpperBonus
	}
	for _, c := range scoring.AllCategories() {
		rec.Scores[c], _ = s.Score(c)
	}
	return rec
}

func (g GameRecord) Score(c scoring.Category) int {
	return g.Scores[c]
}

// CSVHeader is gameID,total,upper,bonus followed by one column per
// category code.
func CSVHeader() []string {
	header := []string{idColumn, "total", "upper", "bonus"}
	return append(header, lo.Map(scoring.AllCategories(), func(c scoring.Category, _ int) string {
		return c.Code()
	})...)
}

func WriteCSVHeader(w *csv.Writer) error {
	return w.Write(CSVHeader())
}

func (g GameRecord) CSVRow() []string {
	row := []string{g.ID, strconv.Itoa(g.Total), strconv.Itoa(g.Upper), strconv.Itoa(g.Bonus)}
	for _, score := range g.Scores {
		row = append(row, strconv.Itoa(score))
	}
	return row
}

// ReadCSV reads records written with WriteCSVHeader and CSVRow. Header
// lines are skipped wherever they appear, so concatenated files are fine.
func ReadCSV(r io.Reader) ([]GameRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader())
	var records []GameRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if row[0] == idColumn {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (GameRecord, error) {
	nums := make([]int, len(row)-1)
	for i, field := range row[1:] {
		n, err := strconv.Atoi(field)
		if err != nil {
			return GameRecord{}, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		nums[i] = n
	}
	rec := GameRecord{ID: row[0], Total: nums[0], Upper: nums[1], Bonus: nums[2]}
	copy(rec.Scores[:], nums[3:])

	for _, c := range scoring.AllCategories() {
		if score := rec.Score(c); score < 0 || score > c.MaxScore() {
			return GameRecord{}, fmt.Errorf("%w: %s score %d out of range 0-%d",
				ErrBadRecord, c, score, c.MaxScore())
		}
	}
	upper := lo.SumBy(scoring.UpperCategories(), rec.Score)
	if upper != rec.Upper {
		return GameRecord{}, fmt.Errorf("%w: upper %d does not match its categories (%d)",
			ErrBadRecord, rec.Upper, upper)
	}
	bonus := 0
	if upper >= scoring.UpperBonusThreshold {
		bonus = scoring.UpperBonus
	}
	if rec.Bonus != bonus {
		return GameRecord{}, fmt.Errorf("%w: bonus %d does not match upper %d",
			ErrBadRecord, rec.Bonus, upper)
	}
	if sum := lo.Sum(rec.Scores[:]) + rec.Bonus; sum != rec.Total {
		return GameRecord{}, fmt.Errorf("%w: total %d does not match its categories (%d)",
			ErrBadRecord, rec.Total, sum)
	}
	return rec, nil
}
