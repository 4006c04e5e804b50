package strategy

import (
	"errors"
	"fmt"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/game"
)

const (
	FirstRollName = "firstroll"
	KeeperName    = "keeper"
	RandomName    = "random"
	ScriptName    = "script"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

func Names() []string {
	return []string{FirstRollName, KeeperName, RandomName, ScriptName}
}

// New builds a fresh strategy by name. Strategies may hold state, so
// every concurrent game needs its own.
func New(name string, cfg *config.Config) (game.Strategy, error) {
	switch name {
	case FirstRollName:
		return FirstRoll{}, nil
	case KeeperName:
		return Keeper{}, nil
	case RandomName:
		return NewRandom(nil), nil
	case ScriptName:
		path := cfg.GetString(config.ConfigStrategyScript)
		if path == "" {
			return nil, fmt.Errorf("the %s strategy needs %s to be set", ScriptName, config.ConfigStrategyScript)
		}
		return NewScript(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
