package game

import (
	"errors"
	"fmt"
)

// ErrTerminalState is returned when a caller applies a move after the match
// has already ended. That is a programming error in the caller, not a game
// rule violation.
var ErrTerminalState = errors.New("match already reached a terminal state")

// Reason classifies why a move submission was rejected. Callers (agents,
// loggers) depend on telling these apart, so validation never collapses them
// into a generic "invalid".
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBadNotation
	ReasonOutOfBounds
	ReasonNotYourTurn
	ReasonEmptySource
	ReasonNotYourPiece
	ReasonImmovable
	ReasonBadShape
	ReasonBlockedPath
	ReasonLakeDestination
	ReasonOwnPieceDestination
	ReasonRepetition
)

var reasonTexts = [...]string{
	ReasonNone:                "ok",
	ReasonBadNotation:         "move does not match the [A0 B0] notation",
	ReasonOutOfBounds:         "coordinate is off the board",
	ReasonNotYourTurn:         "it is not this player's turn",
	ReasonEmptySource:         "source cell holds no piece",
	ReasonNotYourPiece:        "source piece belongs to the opponent",
	ReasonImmovable:           "flags and bombs cannot move",
	ReasonBadShape:            "movement shape is illegal for this rank",
	ReasonBlockedPath:         "scout path is blocked",
	ReasonLakeDestination:     "destination is a lake",
	ReasonOwnPieceDestination: "destination holds your own piece",
	ReasonRepetition:          "back-and-forth repetition limit reached",
}

func (r Reason) String() string {
	if r < ReasonNone || int(r) >= len(reasonTexts) {
		return "unknown"
	}
	return reasonTexts[r]
}

// InvalidMoveError reports a rejected move along with the first rule it
// violated. The match stays Ongoing; the submitting player must try again.
type InvalidMoveError struct {
	Move   Move
	Reason Reason
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %s", e.Move, e.Reason)
}

func invalidMove(mv Move, r Reason) *InvalidMoveError {
	return &InvalidMoveError{Move: mv, Reason: r}
}

// ConfigError reports malformed setup parameters. It is fatal at match
// creation and never recovered.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}
