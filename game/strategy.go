package game

import (
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/scoring"
)

// Strategy makes the three decisions of a turn. The turn engine calls it;
// it must never modify the sheet it is handed.
type Strategy interface {
	// ShouldFinishTurn reports whether to stop rolling and score the
	// current dice. It is only asked while rolls remain.
	ShouldFinishTurn(r dice.Roll, rollsLeft int, sheet *Sheet) bool
	// ChooseDiceToKeep returns the dice values to hold before the next
	// roll. It may be empty or hold all five.
	ChooseDiceToKeep(r dice.Roll, rollsLeft int, sheet *Sheet) []int
	// ChooseCategory picks an unfilled category for the final roll.
	ChooseCategory(r dice.Roll, sheet *Sheet) scoring.Category
}
