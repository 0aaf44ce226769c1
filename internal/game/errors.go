package game

import "errors"

// Sentinel errors returned by state transitions. A transition that returns
// one of these has rejected the command outright: the prior state stands and
// nothing was changed.
var (
	ErrWrongPhase        = errors.New("not allowed in this phase")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNoSuchSeat        = errors.New("no such seat")
	ErrTileNotInHand     = errors.New("tile not in hand")
	ErrClaimNotAvailable = errors.New("claim not available")
	ErrNotInClaimSet     = errors.New("seat has no pending claim")
	ErrNotWinningHand    = errors.New("hand is not a winning hand")
	ErrNoConcealedKong   = errors.New("no concealed kong available")
	ErrGameOver          = errors.New("game is over")
)
