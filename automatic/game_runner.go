// Package automatic plays many games without a human: one GameRunner per
// worker, a batch driver that fans seeds out to workers, and tools to
// analyze what a batch wrote.
package automatic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/report"
	"github.com/domino14/yahtzee/strategy"
)

const turnLogHeader = "gameID,turn,rolls,kept,category,score,total\n"

// GameRunner plays games one at a time with its own strategy instance.
type GameRunner struct {
	strategy game.Strategy
	// logchan receives one CSV line per turn; nil disables turn logging.
	logchan chan<- string
}

// NewGameRunner builds the strategy named in the config.
func NewGameRunner(logchan chan<- string, cfg *config.Config) (*GameRunner, error) {
	return NewGameRunnerWithStrategy(cfg.GetString(config.ConfigStrategy), logchan, cfg)
}

func NewGameRunnerWithStrategy(name string, logchan chan<- string, cfg *config.Config) (*GameRunner, error) {
	s, err := strategy.New(name, cfg)
	if err != nil {
		return nil, err
	}
	return &GameRunner{strategy: s, logchan: logchan}, nil
}

// Close releases the strategy, if it holds anything.
func (r *GameRunner) Close() {
	if c, ok := r.strategy.(interface{ Close() }); ok {
		c.Close()
	}
}

// GameID names a game after its seed, so a replayed seed keeps its name.
func GameID(seed [32]byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(seed[:]))
}

// NewGame sets up a game whose dice, and any randomness in the strategy,
// come from seed.
func (r *GameRunner) NewGame(seed [32]byte) *game.Game {
	if rs, ok := r.strategy.(interface{ Reseed([32]byte) }); ok {
		rs.Reseed(strategySeed(seed))
	}
	return game.NewGame(r.strategy, dice.NewRoller(seed))
}

// StrategyErr is the error a failed strategy recorded, if it keeps one.
func (r *GameRunner) StrategyErr() error {
	if se, ok := r.strategy.(interface{ Err() error }); ok {
		return se.Err()
	}
	return nil
}

// PlayGame plays one game with dice seeded from seed.
func (r *GameRunner) PlayGame(seed [32]byte) (report.GameRecord, error) {
	id := GameID(seed)
	g := r.NewGame(seed)
	if r.logchan != nil {
		g.SetTurnLogger(func(rec *game.TurnRecord) {
			r.logchan <- turnLogLine(id, rec, g.Sheet().TotalScore())
		})
	}
	sheet, err := g.PlayGame()
	if err != nil {
		if serr := r.StrategyErr(); serr != nil {
			err = errors.Join(err, serr)
		}
		return report.GameRecord{}, fmt.Errorf("game %s, turn %d: %w", id, g.Turn(), err)
	}
	log.Debug().Str("id", id).Int("total", sheet.TotalScore()).Msg("game-finished")
	return report.RecordFromSheet(id, sheet), nil
}

// strategySeed derives a second stream from a game seed so that the
// strategy does not see the same numbers as the dice.
func strategySeed(seed [32]byte) [32]byte {
	for i := range seed {
		seed[i] ^= 0x5c
	}
	return seed
}

func turnLogLine(id string, rec *game.TurnRecord, total int) string {
	rolls := make([]string, len(rec.Rolls))
	for i, roll := range rec.Rolls {
		rolls[i] = roll.String()
	}
	kept := make([]string, len(rec.Kept))
	for i, k := range rec.Kept {
		kept[i] = strings.Trim(fmt.Sprint(k), "[]")
	}
	return fmt.Sprintf("%s,%d,%s,%s,%s,%d,%d\n", id, rec.Turn,
		strings.Join(rolls, "|"), strings.Join(kept, "|"),
		rec.Category.Code(), rec.Score, total)
}
