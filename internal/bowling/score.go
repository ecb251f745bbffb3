package bowling

import (
	"errors"
	"fmt"
)

// TenthFrame selects how a strike or spare in frame 10 is scored.
type TenthFrame string

const (
	// TenthFrameBonus reads frame 10's bonus rolls from the rolls appended
	// after it. This is the standard rule.
	TenthFrameBonus TenthFrame = "bonus"
	// TenthFrameCapped scores a strike or spare in frame 10 as exactly 10
	// and reads no bonus rolls.
	TenthFrameCapped TenthFrame = "capped"
)

// ErrUnknownTenthFrame indicates a tenth-frame policy other than bonus or capped.
var ErrUnknownTenthFrame = errors.New("unknown tenth frame policy")

// ParseTenthFrame maps a rules value to a policy. Empty means TenthFrameBonus.
func ParseTenthFrame(s string) (TenthFrame, error) {
	switch TenthFrame(s) {
	case "", TenthFrameBonus:
		return TenthFrameBonus, nil
	case TenthFrameCapped:
		return TenthFrameCapped, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTenthFrame, s)
}

// Scorer computes game scores under one tenth-frame policy.
// The zero value uses the standard rules.
type Scorer struct {
	TenthFrame TenthFrame
}

// Standard is the scorer for regulation games.
var Standard = Scorer{TenthFrame: TenthFrameBonus}

// Score returns the total of a complete game under the standard rules.
func Score(rolls []int) (int, error) {
	return Standard.Score(rolls)
}

// Score walks ten frames with a roll cursor:
//   - strike: 10 + next two rolls, cursor +1
//   - spare: 10 + next roll, cursor +2
//   - open: both rolls, cursor +2
//
// Rolls after the last one frame 10 needs are ignored. The slice is not modified.
func (s Scorer) Score(rolls []int) (int, error) {
	if err := s.check(rolls); err != nil {
		return 0, err
	}
	total, at := 0, 0
	for frame := 1; frame <= Frames; frame++ {
		st, err := s.step(rolls, at, frame)
		if err != nil {
			return 0, err
		}
		total += st.points
		at += st.advance
	}
	return total, nil
}

// step is the scoring of one frame starting at roll index at.
type step struct {
	kind    Kind
	rolls   int // rolls the frame itself occupies on the sheet
	bonus   int
	points  int
	advance int
}

func (s Scorer) step(rolls []int, at, frame int) (step, error) {
	need := func(n int) error {
		if at+n > len(rolls) {
			return &IncompleteGameError{Frame: frame, Need: at + n, Have: len(rolls)}
		}
		return nil
	}
	capped := frame == Frames && s.TenthFrame == TenthFrameCapped

	if err := need(1); err != nil {
		return step{}, err
	}
	if rolls[at] == Pins {
		if capped {
			return step{kind: Strike, rolls: 1, points: Pins, advance: 1}, nil
		}
		if err := need(3); err != nil {
			return step{}, err
		}
		bonus := rolls[at+1] + rolls[at+2]
		return step{kind: Strike, rolls: 1, bonus: bonus, points: Pins + bonus, advance: 1}, nil
	}

	if err := need(2); err != nil {
		return step{}, err
	}
	if rolls[at]+rolls[at+1] == Pins {
		if capped {
			return step{kind: Spare, rolls: 2, points: Pins, advance: 2}, nil
		}
		if err := need(3); err != nil {
			return step{}, err
		}
		bonus := rolls[at+2]
		return step{kind: Spare, rolls: 2, bonus: bonus, points: Pins + bonus, advance: 2}, nil
	}
	return step{kind: Open, rolls: 2, points: rolls[at] + rolls[at+1], advance: 2}, nil
}

// check rejects an unknown policy before looking at the rolls.
func (s Scorer) check(rolls []int) error {
	if _, err := ParseTenthFrame(string(s.TenthFrame)); err != nil {
		return err
	}
	return checkRolls(rolls)
}

func checkRolls(rolls []int) error {
	if len(rolls) == 0 {
		return ErrNoRolls
	}
	for i, pins := range rolls {
		if err := ValidateRoll(pins); err != nil {
			return fmt.Errorf("roll %d: %w", i+1, err)
		}
	}
	return nil
}
