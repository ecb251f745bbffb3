// Package bowling scores ten-pin bowling games from their roll sequences.
package bowling

import (
	"errors"
	"fmt"
)

const (
	// Frames is the number of frames in a complete game.
	Frames = 10
	// Pins is the number of pins standing at the start of a frame.
	Pins = 10
	// MaxRolls is the longest legal game: nine strikes plus three rolls in frame 10.
	MaxRolls = 21
	// MaxScore is the score of a perfect game.
	MaxScore = 300
)

// ErrInvalidRoll indicates a pin count outside 0..10.
var ErrInvalidRoll = errors.New("invalid roll; pins must be 0..10")

// ErrNoRolls indicates an empty roll sequence.
var ErrNoRolls = errors.New("no rolls")

// ErrIncompleteGame is matched by every *IncompleteGameError.
var ErrIncompleteGame = errors.New("incomplete game")

// IncompleteGameError reports a roll sequence that ran out before all ten
// frames (and their bonus rolls) could be resolved.
type IncompleteGameError struct {
	Frame int // 1-based frame that could not be resolved
	Need  int // rolls required to resolve it
	Have  int // rolls supplied
}

func (e *IncompleteGameError) Error() string {
	return fmt.Sprintf("incomplete game: frame %d needs %d rolls, have %d", e.Frame, e.Need, e.Have)
}

func (e *IncompleteGameError) Unwrap() error { return ErrIncompleteGame }

// ValidateRoll range-checks a single pin count.
func ValidateRoll(pins int) error {
	if pins < 0 || pins > Pins {
		return fmt.Errorf("%w: got %d", ErrInvalidRoll, pins)
	}
	return nil
}
