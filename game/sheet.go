package game

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/scoring"
)

type slot struct {
	score  int
	filled bool
}

// Sheet is a single game's score sheet. Each category is filled exactly
// once, through Commit; everything else is a read.
type Sheet struct {
	slots [scoring.NumCategories]slot
}

func NewSheet() *Sheet {
	return &Sheet{}
}

// ScoreFor is what the roll would score in category c. It does not look at
// whether c is filled.
func (s *Sheet) ScoreFor(r dice.Roll, c scoring.Category) int {
	return scoring.Score(r, c)
}

// Commit fills category c with the roll's score and returns that score.
func (s *Sheet) Commit(r dice.Roll, c scoring.Category) (int, error) {
	if s.slots[c].filled {
		return 0, fmt.Errorf("%w: %v", ErrCategoryFilled, c)
	}
	score := scoring.Score(r, c)
	s.slots[c] = slot{score: score, filled: true}
	return score, nil
}

// Score returns the stored score for c and whether c has been filled.
func (s *Sheet) Score(c scoring.Category) (int, bool) {
	return s.slots[c].score, s.slots[c].filled
}

func (s *Sheet) Filled(c scoring.Category) bool {
	return s.slots[c].filled
}

// AvailableCategories lists the unfilled categories in sheet order.
func (s *Sheet) AvailableCategories() []scoring.Category {
	return lo.Filter(scoring.AllCategories(), func(c scoring.Category, _ int) bool {
		return !s.slots[c].filled
	})
}

// AvailableCategoriesWithPositiveScore maps each unfilled category that the
// roll would score in to that score.
func (s *Sheet) AvailableCategoriesWithPositiveScore(r dice.Roll) map[scoring.Category]int {
	out := map[scoring.Category]int{}
	for _, c := range s.AvailableCategories() {
		if score := scoring.Score(r, c); score > 0 {
			out[c] = score
		}
	}
	return out
}

func (s *Sheet) UpperSectionTotal() int {
	return lo.SumBy(scoring.UpperCategories(), func(c scoring.Category) int {
		return s.slots[c].score
	})
}

func (s *Sheet) HasBonus() bool {
	return s.UpperSectionTotal() >= scoring.UpperBonusThreshold
}

// TotalScore is the sum of all filled categories plus the upper bonus.
func (s *Sheet) TotalScore() int {
	total := lo.SumBy(s.slots[:], func(sl slot) int {
		return sl.score
	})
	if s.HasBonus() {
		total += scoring.UpperBonus
	}
	return total
}

func (s *Sheet) NumFilled() int {
	return lo.CountBy(s.slots[:], func(sl slot) bool {
		return sl.filled
	})
}

func (s *Sheet) IsComplete() bool {
	return s.NumFilled() == scoring.NumCategories
}
