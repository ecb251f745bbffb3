package bowling

// Game records rolls one at a time and scores them on demand.
// A Game is not safe for concurrent writers.
type Game struct {
	Scorer Scorer
	rolls  []int
}

// NewGame creates an empty game. If scorer is nil the standard rules apply.
func NewGame(scorer *Scorer) *Game {
	if scorer == nil {
		scorer = &Standard
	}
	return &Game{Scorer: *scorer, rolls: make([]int, 0, MaxRolls)}
}

// Roll records one delivery. Out-of-range pins are rejected and not recorded.
func (g *Game) Roll(pins int) error {
	if err := ValidateRoll(pins); err != nil {
		return err
	}
	g.rolls = append(g.rolls, pins)
	return nil
}

// Score scores the rolls recorded so far.
func (g *Game) Score() (int, error) {
	return g.Scorer.Score(g.rolls)
}

// Frames returns the frame breakdown of the rolls recorded so far.
func (g *Game) Frames() ([]Frame, error) {
	return g.Scorer.Frames(g.rolls)
}

// Rolls returns a copy of the recorded rolls.
func (g *Game) Rolls() []int {
	return append([]int(nil), g.rolls...)
}

// Reset discards every recorded roll.
func (g *Game) Reset() {
	g.rolls = g.rolls[:0]
}
