package bowling

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions"
)

func rollMany(g *Game, pins, times int) {
	for x := 0; x < times; x++ {
		if err := g.Roll(pins); err != nil {
			panic(err)
		}
	}
}

func so(t *testing.T, actual interface{}, assert func(interface{}, ...interface{}) string, expected ...interface{}) {
	t.Helper()
	if ok, message := assertions.So(actual, assert, expected...); !ok {
		t.Error("\n" + message)
	}
}

func mustScore(t *testing.T, g *Game) int {
	t.Helper()
	score, err := g.Score()
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	return score
}

func TestGutterGame(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 0, 20)
	so(t, mustScore(t, g), assertions.ShouldEqual, 0)
}

func TestAllOnes(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 1, 20)
	so(t, mustScore(t, g), assertions.ShouldEqual, 20)
}

func TestOneSpare(t *testing.T) {
	g := NewGame(nil)
	g.Roll(5)
	g.Roll(5)
	g.Roll(3)
	rollMany(g, 0, 17)
	so(t, mustScore(t, g), assertions.ShouldEqual, 16)
}

func TestOneStrike(t *testing.T) {
	g := NewGame(nil)
	g.Roll(10)
	g.Roll(3)
	g.Roll(4)
	rollMany(g, 0, 16)
	so(t, mustScore(t, g), assertions.ShouldEqual, 24)
}

func TestPerfectGame(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 10, 12)
	so(t, mustScore(t, g), assertions.ShouldEqual, MaxScore)
}

func TestScoreTable(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		want  int
	}{
		{"sample game", []int{1, 4, 4, 5, 6, 4, 5, 5, 10, 0, 1, 7, 3, 6, 4, 10, 2, 8, 6}, 133},
		// frame 9 is 6,10: pair sums are not validated, so it scores as open
		{"overfull frame", []int{1, 4, 4, 5, 6, 4, 5, 5, 10, 0, 1, 7, 3, 6, 4, 6, 10, 2, 6}, 117},
		{"all spares of five", repeat(5, 21), 150},
		{"tenth frame spare", append(repeat(0, 18), 4, 6, 7), 17},
		{"tenth frame strike", append(repeat(0, 18), 10, 10, 10), 30},
		{"nine strikes then open", append(repeat(10, 9), 3, 4), 210 + 23 + 17 + 7},
		{"trailing rolls ignored", append(repeat(1, 20), 9, 9), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.rolls)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got != tt.want {
				t.Fatalf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreDoesNotMutateRolls(t *testing.T) {
	rolls := repeat(10, 12)
	if _, err := Score(rolls); err != nil {
		t.Fatalf("score: %v", err)
	}
	so(t, rolls, assertions.ShouldResemble, repeat(10, 12))
}

func TestCappedTenthFrame(t *testing.T) {
	capped := Scorer{TenthFrame: TenthFrameCapped}

	// frame 9 still reads two rolls ahead; frame 10 reads none
	strikes, err := capped.Score(repeat(10, 11))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if strikes != 280 {
		t.Fatalf("capped strikes = %d, want 280", strikes)
	}

	spare, err := capped.Score(append(repeat(0, 18), 4, 6))
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if spare != 10 {
		t.Fatalf("capped tenth spare = %d, want 10", spare)
	}
}

func TestIncompleteGame(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		frame int
	}{
		{"nineteen open rolls", repeat(1, 19), 10},
		{"tenth strike missing one bonus", append(repeat(0, 18), 10, 10), 10},
		{"tenth spare missing bonus", append(repeat(0, 18), 5, 5), 10},
		{"ninth strike missing lookahead", append(repeat(0, 16), 10, 10), 9},
		{"single roll", []int{3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.rolls)
			if !errors.Is(err, ErrIncompleteGame) {
				t.Fatalf("expected ErrIncompleteGame, got %v", err)
			}

			incomplete, ok := err.(*IncompleteGameError)
			if !ok {
				t.Fatalf("expected *IncompleteGameError, got %T", err)
			}
			if incomplete.Frame != tt.frame {
				t.Fatalf("frame = %d, want %d", incomplete.Frame, tt.frame)
			}
			if incomplete.Have != len(tt.rolls) || incomplete.Need <= incomplete.Have {
				t.Fatalf("need/have = %d/%d for %d rolls", incomplete.Need, incomplete.Have, len(tt.rolls))
			}
		})
	}
}

func TestEmptyRolls(t *testing.T) {
	_, err := Score(nil)
	so(t, err, assertions.ShouldEqual, ErrNoRolls)
}

func TestInvalidRoll(t *testing.T) {
	rolls := repeat(0, 20)
	rolls[4] = 11
	_, err := Score(rolls)
	if !errors.Is(err, ErrInvalidRoll) {
		t.Fatalf("expected ErrInvalidRoll, got %v", err)
	}
	so(t, err.Error(), assertions.ShouldContainSubstring, "roll 5")

	rolls[4] = -1
	if _, err = Score(rolls); !errors.Is(err, ErrInvalidRoll) {
		t.Fatalf("expected ErrInvalidRoll for negative pins, got %v", err)
	}
}

func TestParseTenthFrame(t *testing.T) {
	for in, want := range map[string]TenthFrame{"": TenthFrameBonus, "bonus": TenthFrameBonus, "capped": TenthFrameCapped} {
		got, err := ParseTenthFrame(in)
		if err != nil || got != want {
			t.Fatalf("ParseTenthFrame(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTenthFrame("generous"); !errors.Is(err, ErrUnknownTenthFrame) {
		t.Fatal("expected error for unknown policy")
	}
}

func TestUnknownTenthFrameRejected(t *testing.T) {
	s := Scorer{TenthFrame: "generous"}
	perfect := repeat(10, 12)
	if _, err := s.Score(perfect); !errors.Is(err, ErrUnknownTenthFrame) {
		t.Fatalf("Score: expected ErrUnknownTenthFrame, got %v", err)
	}
	if _, err := s.Frames(perfect); !errors.Is(err, ErrUnknownTenthFrame) {
		t.Fatalf("Frames: expected ErrUnknownTenthFrame, got %v", err)
	}
	if _, err := (Scorer{}).Score(perfect); err != nil {
		t.Fatalf("zero Scorer should use the standard rules, got %v", err)
	}
}

func repeat(pins, times int) []int {
	out := make([]int, times)
	for i := range out {
		out[i] = pins
	}
	return out
}
