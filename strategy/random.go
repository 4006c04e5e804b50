package strategy

import (
	"math/rand/v2"

	"lukechampine.com/frand"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

// Random makes every decision with a coin flip. It is a floor for the
// other strategies.
type Random struct {
	rng *rand.Rand
}

// NewRandom uses rng for its decisions. A nil rng gets a randomly seeded
// one.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		var seed [32]byte
		frand.Read(seed[:])
		rng = rand.New(rand.NewChaCha8(seed))
	}
	return &Random{rng: rng}
}

func (s *Random) ShouldFinishTurn(dice.Roll, int, *game.Sheet) bool {
	return s.rng.IntN(2) == 0
}

func (s *Random) ChooseDiceToKeep(r dice.Roll, _ int, _ *game.Sheet) []int {
	kept := []int{}
	for _, v := range r {
		if s.rng.IntN(2) == 0 {
			kept = append(kept, v)
		}
	}
	return kept
}

func (s *Random) ChooseCategory(_ dice.Roll, sheet *game.Sheet) scoring.Category {
	avail := sheet.AvailableCategories()
	return avail[s.rng.IntN(len(avail))]
}

// Reseed restarts the decision stream from seed, so a batch run can tie
// each game's choices to its seed.
func (s *Random) Reseed(seed [32]byte) {
	s.rng = rand.New(rand.NewChaCha8(seed))
}
