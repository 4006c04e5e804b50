package strategy

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
)

func playFull(t *testing.T, s game.Strategy, seed byte) *game.Sheet {
	t.Helper()
	is := is.New(t)
	sheet, err := game.NewGame(s, dice.NewRoller([32]byte{seed})).PlayGame()
	is.NoErr(err)
	is.True(sheet.IsComplete())
	return sheet
}

func TestLeastWorthCategory(t *testing.T) {
	is := is.New(t)
	is.Equal(LeastWorthCategory(scoring.AllCategories()), scoring.Ones)
	is.Equal(LeastWorthCategory([]scoring.Category{scoring.Yahtzee, scoring.Pair, scoring.Twos}), scoring.Twos)
	// Threes and Small Straight both max out at 15; the first listed wins.
	is.Equal(LeastWorthCategory([]scoring.Category{scoring.SmallStraight, scoring.Threes, scoring.Chance}), scoring.SmallStraight)
}

func TestBestScoringCategory(t *testing.T) {
	is := is.New(t)
	sheet := game.NewSheet()
	is.Equal(BestScoringCategory(dice.Roll{6, 6, 6, 6, 6}, sheet), scoring.Yahtzee)
	is.Equal(BestScoringCategory(dice.Roll{3, 3, 3, 5, 5}, sheet), scoring.FullHouse)

	_, err := sheet.Commit(dice.Roll{3, 3, 3, 5, 5}, scoring.FullHouse)
	is.NoErr(err)
	// Chance 19 now beats Two Pair 16.
	is.Equal(BestScoringCategory(dice.Roll{3, 3, 3, 5, 5}, sheet), scoring.Chance)
}

func TestBestScoringCategoryFallsBack(t *testing.T) {
	is := is.New(t)
	sheet := game.NewSheet()
	for _, c := range scoring.AllCategories() {
		if c == scoring.Yahtzee || c == scoring.LargeStraight {
			continue
		}
		_, err := sheet.Commit(dice.Roll{1, 1, 1, 1, 1}, c)
		is.NoErr(err)
	}
	is.Equal(BestScoringCategory(dice.Roll{1, 2, 3, 4, 6}, sheet), scoring.LargeStraight)
}

func TestFirstRoll(t *testing.T) {
	is := is.New(t)
	s := FirstRoll{}
	is.True(s.ShouldFinishTurn(dice.Roll{1, 2, 3, 4, 5}, 2, game.NewSheet()))
	sheet := playFull(t, s, 1)
	is.True(sheet.TotalScore() > 0)
}

func TestKeeper(t *testing.T) {
	is := is.New(t)
	s := Keeper{}
	sheet := game.NewSheet()
	is.Equal(s.ChooseDiceToKeep(dice.Roll{2, 5, 5, 2, 1}, 2, sheet), []int{5, 5})
	is.Equal(s.ChooseDiceToKeep(dice.Roll{4, 4, 4, 1, 6}, 2, sheet), []int{4, 4, 4})
	is.Equal(len(s.ChooseDiceToKeep(dice.Roll{1, 2, 3, 4, 6}, 2, sheet)), 0)

	is.True(s.ShouldFinishTurn(dice.Roll{2, 3, 4, 5, 6}, 2, sheet))
	is.True(!s.ShouldFinishTurn(dice.Roll{2, 2, 4, 5, 6}, 2, sheet))
	_, err := sheet.Commit(dice.Roll{2, 3, 4, 5, 6}, scoring.LargeStraight)
	is.NoErr(err)
	is.True(!s.ShouldFinishTurn(dice.Roll{2, 3, 4, 5, 6}, 2, sheet))

	playFull(t, s, 2)
}

func TestRandom(t *testing.T) {
	is := is.New(t)
	seed := [32]byte{5}
	a := playFull(t, NewRandom(rand.New(rand.NewChaCha8(seed))), 3)
	b := playFull(t, NewRandom(rand.New(rand.NewChaCha8(seed))), 3)
	is.Equal(a.TotalScore(), b.TotalScore())
	playFull(t, NewRandom(nil), 4)

	r := NewRandom(nil)
	r.Reseed(seed)
	c := playFull(t, r, 3)
	is.Equal(a.TotalScore(), c.TotalScore())
}

func TestScriptPlaysGame(t *testing.T) {
	is := is.New(t)
	s, err := NewScript(filepath.Join("..", "data", "strategies", "high_dice.lua"))
	is.NoErr(err)
	defer s.Close()
	playFull(t, s, 6)
	is.NoErr(s.Err())

	sheet := game.NewSheet()
	is.Equal(s.ChooseDiceToKeep(dice.Roll{6, 1, 5, 2, 6}, 2, sheet), []int{6, 5, 6})
	is.Equal(s.ChooseCategory(dice.Roll{6, 6, 6, 6, 6}, sheet), scoring.Yahtzee)
	is.True(s.ShouldFinishTurn(dice.Roll{6, 6, 6, 6, 6}, 1, sheet))
	is.True(!s.ShouldFinishTurn(dice.Roll{6, 6, 6, 6, 5}, 1, sheet))
}

func TestScriptRuntimeErrorEndsGame(t *testing.T) {
	is := is.New(t)
	s, err := NewScriptFromString(`
function should_finish_turn(dice, rolls_left, sheet) return true end
function choose_dice_to_keep(dice, rolls_left, sheet) return {} end
function choose_category(dice, sheet) error("boom") end
`)
	is.NoErr(err)
	defer s.Close()

	_, err = game.NewGame(s, dice.NewRoller([32]byte{})).PlayGame()
	is.True(errors.Is(err, game.ErrInvalidCategory))
	is.True(errors.Is(s.Err(), ErrScript))
}

func TestScriptBadCategoryCode(t *testing.T) {
	is := is.New(t)
	s, err := NewScriptFromString(`
function should_finish_turn() return true end
function choose_dice_to_keep() return {} end
function choose_category() return "bingo" end
`)
	is.NoErr(err)
	defer s.Close()
	is.Equal(s.ChooseCategory(dice.Roll{1, 2, 3, 4, 5}, game.NewSheet()), scoring.Category(-1))
	is.True(s.Err() != nil)
}

func TestScriptFractionalKeep(t *testing.T) {
	is := is.New(t)
	s, err := NewScriptFromString(`
function should_finish_turn() return false end
function choose_dice_to_keep(dice) return {dice[1] + 0.75} end
function choose_category(dice, sheet) return sheet.available[1] end
`)
	is.NoErr(err)
	defer s.Close()
	is.Equal(len(s.ChooseDiceToKeep(dice.Roll{1, 2, 2, 6, 5}, 2, game.NewSheet())), 0)
	is.True(errors.Is(s.Err(), ErrScript))

	// once failed, the script ends the game rather than keep playing
	_, err = game.NewGame(s, dice.NewRoller([32]byte{})).PlayGame()
	is.True(errors.Is(err, game.ErrInvalidCategory))
}

func TestScriptScoreRejectsFractions(t *testing.T) {
	is := is.New(t)
	s, err := NewScriptFromString(`
function should_finish_turn() return true end
function choose_dice_to_keep() return {} end
function choose_category(dice, sheet)
  if score({1, 2, 3, 4, 5}, "chance") ~= 15 then return "bingo" end
  score({1.5, 2, 3, 4, 5}, "chance")
  return "chance"
end
`)
	is.NoErr(err)
	defer s.Close()
	is.Equal(s.ChooseCategory(dice.Roll{1, 2, 3, 4, 5}, game.NewSheet()), scoring.Category(-1))
	is.True(errors.Is(s.Err(), ErrScript))
	is.True(strings.Contains(s.Err().Error(), "not a whole number"))
}

func TestScriptFileErrors(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	_, err := NewScript(filepath.Join(dir, "missing.lua"))
	is.True(errors.Is(err, ErrScript))

	bad := filepath.Join(dir, "bad.lua")
	is.NoErr(os.WriteFile(bad, []byte("function should_finish_turn("), 0o644))
	_, err = NewScript(bad)
	is.True(errors.Is(err, ErrScript))

	raises := filepath.Join(dir, "raises.lua")
	is.NoErr(os.WriteFile(raises, []byte(`error("not today")`), 0o644))
	_, err = NewScript(raises)
	is.True(errors.Is(err, ErrScript))
}

func TestScriptMissingFunction(t *testing.T) {
	is := is.New(t)
	_, err := NewScriptFromString(`function should_finish_turn() return true end`)
	is.True(errors.Is(err, ErrScript))
	_, err = NewScriptFromString(`this is not lua`)
	is.True(errors.Is(err, ErrScript))
}

func TestNew(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	for _, name := range []string{FirstRollName, KeeperName, RandomName} {
		s, err := New(name, &cfg)
		is.NoErr(err)
		playFull(t, s, 7)
	}
	_, err := New(ScriptName, &cfg)
	is.True(err != nil)

	path := filepath.Join(t.TempDir(), "chance.lua")
	is.NoErr(os.WriteFile(path, []byte(`
function should_finish_turn() return true end
function choose_dice_to_keep() return {} end
function choose_category(dice, sheet) return sheet.available[1] end
`), 0o644))
	cfg.Set(config.ConfigStrategyScript, path)
	s, err := New(ScriptName, &cfg)
	is.NoErr(err)
	playFull(t, s, 8)

	_, err = New("elite", &cfg)
	is.True(errors.Is(err, ErrUnknownStrategy))
}
