// Package strategy has a few ready-made players for the turn engine. None
// of them is meant to be strong; they exist to drive simulations.
package strategy

import (
	"github.com/samber/lo"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

// LeastWorthCategory returns the category with the lowest possible max
// score. Ties go to the earlier category. cats must not be empty.
func LeastWorthCategory(cats []scoring.Category) scoring.Category {
	return lo.MinBy(cats, func(a, b scoring.Category) bool {
		return a.MaxScore() < b.MaxScore()
	})
}

// BestScoringCategory picks the available category that scores the most
// for this roll, or throws away the least valuable category if nothing
// scores.
func BestScoringCategory(r dice.Roll, sheet *game.Sheet) scoring.Category {
	avail := sheet.AvailableCategories()
	possible := sheet.AvailableCategoriesWithPositiveScore(r)
	if len(possible) == 0 {
		return LeastWorthCategory(avail)
	}
	candidates := lo.Filter(avail, func(c scoring.Category, _ int) bool {
		_, ok := possible[c]
		return ok
	})
	return lo.MaxBy(candidates, func(a, b scoring.Category) bool {
		return possible[a] > possible[b]
	})
}

// mostCommonFace returns the face showing most often; ties go to the
// higher face.
func mostCommonFace(r dice.Roll) (face, count int) {
	counts := r.Counts()
	for f := dice.NumFaces; f >= 1; f-- {
		if counts[f] > count {
			face, count = f, counts[f]
		}
	}
	return face, count
}

func repeat(face, n int) []int {
	return lo.Times(n, func(int) int { return face })
}
