package dice

import (
	"fmt"
	"math/rand/v2"

	"lukechampine.com/frand"
)

// Roller rolls dice from a seeded ChaCha8 stream. Two rollers with the same
// seed produce the same sequence of rolls. A Roller is not safe for
// concurrent use; give each goroutine its own.
type Roller struct {
	seed [32]byte
	rng  *rand.Rand
}

func NewRoller(seed [32]byte) *Roller {
	return &Roller{
		seed: seed,
		rng:  rand.New(rand.NewChaCha8(seed)),
	}
}

// NewRandomRoller seeds a roller from a cryptographically secure source.
func NewRandomRoller() *Roller {
	var seed [32]byte
	frand.Read(seed[:])
	return NewRoller(seed)
}

func (r *Roller) Seed() [32]byte {
	return r.seed
}

// Die rolls a single die.
func (r *Roller) Die() int {
	return 1 + r.rng.IntN(NumFaces)
}

// RollAll rolls all five dice.
func (r *Roller) RollAll() Roll {
	var roll Roll
	for i := range roll {
		roll[i] = r.Die()
	}
	return roll
}

// Reroll keeps the given dice, in order, and rolls fresh dice for the
// remaining positions.
func (r *Roller) Reroll(kept []int) (Roll, error) {
	var roll Roll
	if len(kept) > NumDice {
		return roll, fmt.Errorf("%w: %d", ErrTooManyKept, len(kept))
	}
	for i, v := range kept {
		if !ValidFace(v) {
			return roll, fmt.Errorf("%w: kept face %d out of range", ErrInvalidRoll, v)
		}
		roll[i] = v
	}
	for i := len(kept); i < NumDice; i++ {
		roll[i] = r.Die()
	}
	return roll, nil
}
