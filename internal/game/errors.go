package game

import (
	"errors"

	"github.com/jtsang27/crust-sim/internal/game/cards"
)

// Action application failures. All are non-fatal: a failing action is
// reported to the caller and leaves the simulation state untouched.
var (
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrInvalidHandIndex   = errors.New("invalid hand index")
	ErrInsufficientElixir = errors.New("insufficient elixir")
	ErrInvalidDeck        = errors.New("invalid deck")

	// Definition lookup failures surface from the card provider.
	ErrUnknownCard  = cards.ErrUnknownCard
	ErrUnknownLevel = cards.ErrUnknownLevel
)
