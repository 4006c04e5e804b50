package automatic

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/scoring"
	"github.com/domino14/yahtzee/strategy"
)

var DefaultConfig = config.DefaultConfig()

func testConfig(t *testing.T, strat string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigOutputDir, t.TempDir())
	cfg.Set(config.ConfigStrategy, strat)
	cfg.Set(config.ConfigThreads, 3)
	return &cfg
}

func TestGameID(t *testing.T) {
	is := is.New(t)
	a := GameID([32]byte{1})
	is.Equal(len(a), 16)
	is.Equal(a, GameID([32]byte{1}))
	is.True(a != GameID([32]byte{2}))
}

func TestNewGameRollsFromSeed(t *testing.T) {
	is := is.New(t)
	runner, err := NewGameRunner(nil, &DefaultConfig)
	is.NoErr(err)
	defer runner.Close()
	seed := [32]byte{8, 6}
	g := runner.NewGame(seed)
	is.Equal(g.Roller().Seed(), seed)
	is.Equal(g.Roller().RollAll(), runner.NewGame(seed).Roller().RollAll())
}

func TestPlayGameLogsEveryTurn(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, scoring.NumCategories)
	runner, err := NewGameRunner(logchan, &DefaultConfig)
	is.NoErr(err)
	defer runner.Close()

	seed := [32]byte{4, 2}
	rec, err := runner.PlayGame(seed)
	is.NoErr(err)
	close(logchan)

	is.Equal(rec.ID, GameID(seed))
	lines := 0
	var last string
	for line := range logchan {
		lines++
		is.True(strings.HasPrefix(line, rec.ID+","))
		is.Equal(len(strings.Split(strings.TrimSpace(line), ",")), 7)
		last = line
	}
	is.Equal(lines, scoring.NumCategories)
	// the last line carries the final total
	is.True(strings.HasSuffix(last, ","+strconv.Itoa(rec.Total)+"\n"))
}

func TestPlayGameIsReproducible(t *testing.T) {
	is := is.New(t)
	for _, name := range []string{strategy.KeeperName, strategy.RandomName} {
		cfg := testConfig(t, name)
		r1, err := NewGameRunner(nil, cfg)
		is.NoErr(err)
		r2, err := NewGameRunner(nil, cfg)
		is.NoErr(err)

		seed := [32]byte{7, 7, 7}
		a, err := r1.PlayGame(seed)
		is.NoErr(err)
		// play something else in between; it must not leak into the next game
		_, err = r2.PlayGame([32]byte{8})
		is.NoErr(err)
		b, err := r2.PlayGame(seed)
		is.NoErr(err)
		is.Equal(a, b)
	}
}

func TestPlayGameScriptFailure(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "broken.lua")
	is.NoErr(os.WriteFile(path, []byte(`
function should_finish_turn() return true end
function choose_dice_to_keep() return {} end
function choose_category() error("broken") end
`), 0o644))
	cfg := testConfig(t, strategy.ScriptName)
	cfg.Set(config.ConfigStrategyScript, path)

	runner, err := NewGameRunner(nil, cfg)
	is.NoErr(err)
	defer runner.Close()
	_, err = runner.PlayGame([32]byte{})
	is.True(errors.Is(err, game.ErrInvalidCategory))
	is.True(errors.Is(err, strategy.ErrScript))
}

func TestNewGameRunnerUnknownStrategy(t *testing.T) {
	is := is.New(t)
	_, err := NewGameRunner(nil, testConfig(t, "elite"))
	is.True(errors.Is(err, strategy.ErrUnknownStrategy))
}
