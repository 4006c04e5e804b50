package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/scoring"
)

func fillUpper(t *testing.T, s *Sheet, ones dice.Roll) {
	t.Helper()
	is := is.New(t)
	rolls := []dice.Roll{
		ones,
		{2, 2, 2, 1, 3},
		{3, 3, 3, 1, 2},
		{4, 4, 4, 1, 2},
		{5, 5, 5, 1, 2},
		{6, 6, 6, 1, 2},
	}
	for i, c := range scoring.UpperCategories() {
		_, err := s.Commit(rolls[i], c)
		is.NoErr(err)
	}
}

func TestCommitTwiceFails(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	score, err := s.Commit(dice.Roll{3, 3, 3, 5, 5}, scoring.FullHouse)
	is.NoErr(err)
	is.Equal(score, 19)

	_, err = s.Commit(dice.Roll{2, 2, 2, 6, 6}, scoring.FullHouse)
	is.True(errors.Is(err, ErrCategoryFilled))

	got, ok := s.Score(scoring.FullHouse)
	is.True(ok)
	is.Equal(got, 19) // never rescored
}

func TestBonusAtThreshold(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	fillUpper(t, s, dice.Roll{1, 1, 1, 2, 3})
	is.Equal(s.UpperSectionTotal(), 63)
	is.True(s.HasBonus())
	is.Equal(s.TotalScore(), 63+scoring.UpperBonus)
}

func TestNoBonusBelowThreshold(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	fillUpper(t, s, dice.Roll{1, 1, 2, 3, 4})
	is.Equal(s.UpperSectionTotal(), 62)
	is.True(!s.HasBonus())
	is.Equal(s.TotalScore(), 62)
}

func TestAvailableCategories(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	is.Equal(s.AvailableCategories(), scoring.AllCategories())
	is.True(!s.IsComplete())

	_, err := s.Commit(dice.Roll{6, 6, 6, 6, 6}, scoring.Yahtzee)
	is.NoErr(err)
	_, err = s.Commit(dice.Roll{1, 2, 3, 4, 5}, scoring.Ones)
	is.NoErr(err)

	avail := s.AvailableCategories()
	is.Equal(len(avail), 13)
	is.Equal(avail[0], scoring.Twos)
	is.Equal(avail[len(avail)-1], scoring.Chance)
	is.Equal(s.NumFilled(), 2)
}

func TestAvailableCategoriesWithPositiveScore(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	_, err := s.Commit(dice.Roll{1, 1, 1, 1, 1}, scoring.Chance)
	is.NoErr(err)

	got := s.AvailableCategoriesWithPositiveScore(dice.Roll{3, 3, 4, 4, 6})
	is.Equal(got, map[scoring.Category]int{
		scoring.Threes:  6,
		scoring.Fours:   8,
		scoring.Sixes:   6,
		scoring.Pair:    8,
		scoring.TwoPair: 14,
	})
}

func TestScoreForIsIdempotent(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	r := dice.Roll{2, 3, 4, 5, 6}
	is.Equal(s.ScoreFor(r, scoring.LargeStraight), 20)
	is.Equal(s.ScoreFor(r, scoring.LargeStraight), 20)
	is.Equal(s.NumFilled(), 0)
	_, filled := s.Score(scoring.LargeStraight)
	is.True(!filled)

	_, err := s.Commit(r, scoring.LargeStraight)
	is.NoErr(err)
	// ScoreFor ignores fill state.
	is.Equal(s.ScoreFor(r, scoring.LargeStraight), 20)
}

func TestCompleteSheet(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	for _, c := range scoring.AllCategories() {
		_, err := s.Commit(dice.Roll{6, 6, 6, 6, 6}, c)
		is.NoErr(err)
	}
	is.True(s.IsComplete())
	is.Equal(len(s.AvailableCategories()), 0)
	// Sixes 30, Pair 12, 3k 18, 4k 24, Chance 30, Yahtzee 50.
	is.Equal(s.TotalScore(), 30+12+18+24+30+50)
	is.True(!s.HasBonus())
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	s := NewSheet()
	_, err := s.Commit(dice.Roll{1, 2, 3, 5, 6}, scoring.Chance)
	is.NoErr(err)
	txt := s.ToDisplayText()
	is.True(len(txt) > 0)
	is.True(containsLine(txt, "Chance               17"))
	is.True(containsLine(txt, "Ones                 -"))
	is.True(containsLine(txt, "Total Score          17"))
}
