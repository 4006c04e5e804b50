// Package scoring defines the fifteen categories of a score sheet and the
// rules that score a roll against each of them.
package scoring

import (
	"errors"
	"fmt"
	"strings"
)

type Category int

const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	Pair
	TwoPair
	ThreeOfAKind
	FourOfAKind
	FullHouse
	SmallStraight
	LargeStraight
	Chance
	Yahtzee

	NumCategories = int(Yahtzee) + 1
)

const (
	UpperBonusThreshold = 63
	UpperBonus          = 50
)

var ErrUnknownCategory = errors.New("unknown category")

type categoryInfo struct {
	name       string
	code       string
	maxScore   int
	minNonZero int
}

var categories = [NumCategories]categoryInfo{
	Ones:          {"Ones", "ones", 5, 1},
	Twos:          {"Twos", "twos", 10, 2},
	Threes:        {"Threes", "threes", 15, 3},
	Fours:         {"Fours", "fours", 20, 4},
	Fives:         {"Fives", "fives", 25, 5},
	Sixes:         {"Sixes", "sixes", 30, 6},
	Pair:          {"Pair", "pair", 12, 2},
	TwoPair:       {"Two Pair", "two_pair", 22, 6},
	ThreeOfAKind:  {"Three of a Kind", "three_kind", 18, 3},
	FourOfAKind:   {"Four of a Kind", "four_kind", 24, 4},
	FullHouse:     {"Full House", "full_house", 28, 7},
	SmallStraight: {"Small Straight", "small_straight", 15, 15},
	LargeStraight: {"Large Straight", "large_straight", 20, 20},
	Chance:        {"Chance", "chance", 30, 5},
	Yahtzee:       {"Yahtzee", "yahtzee", 50, 50},
}

// AllCategories returns every category in sheet order.
func AllCategories() []Category {
	cats := make([]Category, NumCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

func UpperCategories() []Category {
	return []Category{Ones, Twos, Threes, Fours, Fives, Sixes}
}

func (c Category) Valid() bool {
	return c >= Ones && c <= Yahtzee
}

func (c Category) info() categoryInfo {
	if !c.Valid() {
		panic(fmt.Sprintf("scoring: %v: %d", ErrUnknownCategory, int(c)))
	}
	return categories[c]
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categories[c].name
}

// Code is the short machine name, used in files and scripts.
func (c Category) Code() string {
	return c.info().code
}

// MaxScore is the most this category can ever score.
func (c Category) MaxScore() int {
	return c.info().maxScore
}

// MinNonZero is the smallest non-zero score this category can take. The
// rules never use it; strategies may.
func (c Category) MinNonZero() int {
	return c.info().minNonZero
}

func (c Category) IsUpper() bool {
	return c >= Ones && c <= Sixes
}

// ParseCategory accepts either a code ("two_pair") or a display name
// ("Two Pair"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range categories {
		if s == info.code || s == strings.ToLower(info.name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
