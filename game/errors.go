package game

import "errors"

var (
	// ErrCategoryFilled means a strategy picked a category that already has
	// a score. It is a contract violation and ends the game.
	ErrCategoryFilled = errors.New("category already filled")
	// ErrMalformedKeep means a strategy asked to keep dice that are not in
	// the current roll.
	ErrMalformedKeep = errors.New("kept dice are not part of the roll")
	// ErrInvalidCategory means a strategy picked something that is not a
	// category at all.
	ErrInvalidCategory = errors.New("invalid category")
	ErrGameOver        = errors.New("game is over")
)
