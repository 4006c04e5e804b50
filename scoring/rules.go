package scoring

import (
	"fmt"

	"github.com/domino14/yahtzee/dice"
)

type faceCounts = [dice.NumFaces + 1]int

// rule scores a roll given its face counts. Rules are pure.
type rule func(r dice.Roll, counts faceCounts) int

var rules = [NumCategories]rule{
	Ones:          upper(1),
	Twos:          upper(2),
	Threes:        upper(3),
	Fours:         upper(4),
	Fives:         upper(5),
	Sixes:         upper(6),
	Pair:          ofAKind(2),
	TwoPair:       twoPair,
	ThreeOfAKind:  ofAKind(3),
	FourOfAKind:   ofAKind(4),
	FullHouse:     fullHouse,
	SmallStraight: straight(1, 15),
	LargeStraight: straight(2, 20),
	Chance:        chance,
	Yahtzee:       yahtzee,
}

// Score returns what the roll is worth in the given category. It never
// mutates anything. An out-of-range category is a programming error and
// panics.
func Score(r dice.Roll, c Category) int {
	if !c.Valid() {
		panic(fmt.Sprintf("scoring: %v: %d", ErrUnknownCategory, int(c)))
	}
	return rules[c](r, r.Counts())
}

func upper(face int) rule {
	return func(_ dice.Roll, counts faceCounts) int {
		return counts[face] * face
	}
}

// ofAKind scores n times the highest face that shows at least n times.
func ofAKind(n int) rule {
	return func(_ dice.Roll, counts faceCounts) int {
		for face := dice.NumFaces; face >= 1; face-- {
			if counts[face] >= n {
				return n * face
			}
		}
		return 0
	}
}

// twoPair needs two distinct faces showing at least twice each. Four or
// five of one face is still a single pair candidate.
func twoPair(_ dice.Roll, counts faceCounts) int {
	found, score := 0, 0
	for face := dice.NumFaces; face >= 1 && found < 2; face-- {
		if counts[face] >= 2 {
			found++
			score += 2 * face
		}
	}
	if found < 2 {
		return 0
	}
	return score
}

// fullHouse is exactly three of one face and two of another. Five of a
// kind does not count.
func fullHouse(r dice.Roll, counts faceCounts) int {
	three, two := false, false
	for face := 1; face <= dice.NumFaces; face++ {
		switch counts[face] {
		case 3:
			three = true
		case 2:
			two = true
		}
	}
	if three && two {
		return r.Sum()
	}
	return 0
}

// straight scores when the faces are exactly low..low+4.
func straight(low, points int) rule {
	return func(_ dice.Roll, counts faceCounts) int {
		for face := low; face < low+dice.NumDice; face++ {
			if counts[face] != 1 {
				return 0
			}
		}
		return points
	}
}

func chance(r dice.Roll, _ faceCounts) int {
	return r.Sum()
}

func yahtzee(_ dice.Roll, counts faceCounts) int {
	for face := 1; face <= dice.NumFaces; face++ {
		if counts[face] == dice.NumDice {
			return 50
		}
	}
	return 0
}
