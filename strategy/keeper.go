package strategy

import (
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

// Keeper chases multiples: it holds every die of its most common face and
// rerolls the rest. It stops early once the roll completes one of the
// fixed-shape categories it still needs.
type Keeper struct{}

var keeperStops = []scoring.Category{
	scoring.Yahtzee, scoring.LargeStraight, scoring.SmallStraight, scoring.FullHouse,
}

func (Keeper) ShouldFinishTurn(r dice.Roll, _ int, sheet *game.Sheet) bool {
	for _, c := range keeperStops {
		if !sheet.Filled(c) && sheet.ScoreFor(r, c) > 0 {
			return true
		}
	}
	return false
}

func (Keeper) ChooseDiceToKeep(r dice.Roll, _ int, _ *game.Sheet) []int {
	face, count := mostCommonFace(r)
	if count < 2 {
		return nil
	}
	return repeat(face, count)
}

func (Keeper) ChooseCategory(r dice.Roll, sheet *game.Sheet) scoring.Category {
	return BestScoringCategory(r, sheet)
}
