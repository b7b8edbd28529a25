package shuffle

import "errors"

// Caller-recoverable validation failures. Surfaced to the operator with the
// violated precondition spelled out by the wrapping error message.
var (
	ErrNoPlayers           = errors.New("no players provided")
	ErrInsufficientPlayers = errors.New("not enough players")
	ErrInvalidRound        = errors.New("invalid round number")
	ErrWrongStatus         = errors.New("tournament is in the wrong status for this operation")
	ErrNotFound            = errors.New("not found")
	ErrInvalidConfig       = errors.New("invalid tournament config")
)
