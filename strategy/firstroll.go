package strategy

import (
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

// FirstRoll never rerolls. It scores the first roll in whatever available
// category is worth the most.
type FirstRoll struct{}

func (FirstRoll) ShouldFinishTurn(dice.Roll, int, *game.Sheet) bool {
	return true
}

func (FirstRoll) ChooseDiceToKeep(r dice.Roll, _ int, _ *game.Sheet) []int {
	return r.Values()
}

func (FirstRoll) ChooseCategory(r dice.Roll, sheet *game.Sheet) scoring.Category {
	return BestScoringCategory(r, sheet)
}
