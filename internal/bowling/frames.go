package bowling

import "fmt"

// Kind classifies a frame.
type Kind int

const (
	Open Kind = iota
	Spare
	Strike
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Spare:
		return "spare"
	case Strike:
		return "strike"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "open":
		*k = Open
	case "spare":
		*k = Spare
	case "strike":
		*k = Strike
	default:
		return fmt.Errorf("unknown frame kind %q", b)
	}
	return nil
}

// Frame is one scored frame of a game.
type Frame struct {
	Number int   `json:"number"`
	Kind   Kind  `json:"kind"`
	Rolls  []int `json:"rolls"` // pins of the frame's own rolls; frame 10 also lists its bonus rolls
	Bonus  int   `json:"bonus"`
	Score  int   `json:"score"`
	Total  int   `json:"total"` // running total through this frame
	Start  int   `json:"-"`     // index of the frame's first roll
}

// Frames breaks a complete game into its ten scored frames. It fails
// exactly when Score fails, and the last frame's Total equals Score.
func (s Scorer) Frames(rolls []int) ([]Frame, error) {
	if err := s.check(rolls); err != nil {
		return nil, err
	}
	out := make([]Frame, 0, Frames)
	total, at := 0, 0
	for n := 1; n <= Frames; n++ {
		st, err := s.step(rolls, at, n)
		if err != nil {
			return nil, err
		}
		total += st.points

		own := st.rolls
		if n == Frames && st.kind != Open && s.TenthFrame != TenthFrameCapped {
			// the sheet shows frame 10's bonus rolls inside the frame
			own = 3
		}
		out = append(out, Frame{
			Number: n,
			Kind:   st.kind,
			Rolls:  append([]int(nil), rolls[at:at+own]...),
			Bonus:  st.bonus,
			Score:  st.points,
			Total:  total,
			Start:  at,
		})
		at += st.advance
	}
	return out, nil
}
