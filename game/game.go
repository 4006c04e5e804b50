// Package game encapsulates the rules of play for one game of Yahtzee: the
// score sheet, the turn engine, and the loop that plays a game to the end.
// A Game doesn't care who decides what to keep; that is a Strategy's job.
package game

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/scoring"
)

// Game is one game: a sheet, a strategy filling it, and the dice.
type Game struct {
	sheet    *Sheet
	strategy Strategy
	roller   *dice.Roller
	turnnum  int

	turnLogger func(*TurnRecord)
}

// NewGame creates a game with an empty sheet. The roller is owned by the
// game for its lifetime.
func NewGame(strategy Strategy, roller *dice.Roller) *Game {
	return &Game{
		sheet:    NewSheet(),
		strategy: strategy,
		roller:   roller,
	}
}

func (g *Game) Sheet() *Sheet {
	return g.sheet
}

// Turn is the number of turns played so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// Roller is the game's dice source; its seed replays the game.
func (g *Game) Roller() *dice.Roller {
	return g.roller
}

// SetTurnLogger registers a function that sees every completed turn.
func (g *Game) SetTurnLogger(f func(*TurnRecord)) {
	g.turnLogger = f
}

// PlayGame plays one turn per category and returns the completed sheet.
// The first error ends the game.
func (g *Game) PlayGame() (*Sheet, error) {
	for range scoring.NumCategories {
		rec, err := g.PlayTurn()
		if err != nil {
			log.Debug().Err(err).Int("turn", g.turnnum).Msg("game-aborted")
			return nil, err
		}
		if g.turnLogger != nil {
			g.turnLogger(rec)
		}
	}
	log.Debug().Int("total", g.sheet.TotalScore()).Msg("game-over")
	return g.sheet, nil
}
