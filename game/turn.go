package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/scoring"
)

// RollsPerTurn is how many times the dice may be rolled in one turn.
const RollsPerTurn = 3

// TurnRecord describes one finished turn.
type TurnRecord struct {
	Turn int
	// Rolls holds every roll seen this turn; the last one was scored.
	Rolls []dice.Roll
	// Kept holds the dice held before each reroll.
	Kept     [][]int
	Category scoring.Category
	Score    int
}

func (t *TurnRecord) FinalRoll() dice.Roll {
	return t.Rolls[len(t.Rolls)-1]
}

func (t *TurnRecord) NumRolls() int {
	return len(t.Rolls)
}

// PlayTurn plays a single turn: roll, then alternate between asking the
// strategy whether to stop and rerolling the dice it does not keep, until
// it stops or the rolls run out. The chosen category is committed to the
// sheet. Errors from the strategy's choices are returned as-is and leave
// the game unusable.
func (g *Game) PlayTurn() (*TurnRecord, error) {
	if g.sheet.IsComplete() {
		return nil, ErrGameOver
	}
	g.turnnum++
	rec := &TurnRecord{Turn: g.turnnum}

	roll := g.roller.RollAll()
	rollsLeft := RollsPerTurn - 1
	rec.Rolls = append(rec.Rolls, roll)

	for rollsLeft > 0 {
		if g.strategy.ShouldFinishTurn(roll, rollsLeft, g.sheet) {
			break
		}
		kept := g.strategy.ChooseDiceToKeep(roll, rollsLeft, g.sheet)
		if err := validateKeep(roll, kept); err != nil {
			return nil, err
		}
		var err error
		roll, err = g.roller.Reroll(kept)
		if err != nil {
			return nil, err
		}
		rollsLeft--
		rec.Kept = append(rec.Kept, append([]int(nil), kept...))
		rec.Rolls = append(rec.Rolls, roll)
	}

	cat := g.strategy.ChooseCategory(roll, g.sheet)
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(cat))
	}
	score, err := g.sheet.Commit(roll, cat)
	if err != nil {
		return nil, err
	}
	rec.Category = cat
	rec.Score = score
	log.Debug().Int("turn", rec.Turn).Stringer("roll", roll).Int("rolls", rec.NumRolls()).
		Stringer("category", cat).Int("score", score).Msg("turn-committed")
	return rec, nil
}

// validateKeep checks that the kept dice are a sub-multiset of the roll.
func validateKeep(r dice.Roll, kept []int) error {
	if len(kept) > dice.NumDice {
		return fmt.Errorf("%w: %d", dice.ErrTooManyKept, len(kept))
	}
	counts := r.Counts()
	for _, v := range kept {
		if !dice.ValidFace(v) || counts[v] == 0 {
			return fmt.Errorf("%w: kept %v from %v", ErrMalformedKeep, kept, r)
		}
		counts[v]--
	}
	return nil
}
