package game

import "errors"

// Validation errors reject the proposed action and leave the game state
// unchanged; the caller may re-prompt.
var (
	ErrNotPlayersTurn = errors.New("not this player's turn")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrNotThreeCards  = errors.New("must discard exactly 3 distinct cards")
	ErrIllegalSuit    = errors.New("must follow the lead suit")
	ErrWrongPhase     = errors.New("action not allowed in the current phase")
	ErrUnknownPlayer  = errors.New("unknown player")
)
