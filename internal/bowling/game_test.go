package bowling

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestGameRejectsInvalidRoll(t *testing.T) {
	g := NewGame(nil)
	if err := g.Roll(11); !errors.Is(err, ErrInvalidRoll) {
		t.Fatalf("expected ErrInvalidRoll, got %v", err)
	}
	if err := g.Roll(-1); !errors.Is(err, ErrInvalidRoll) {
		t.Fatalf("expected ErrInvalidRoll, got %v", err)
	}
	if len(g.Rolls()) != 0 {
		t.Fatalf("invalid rolls must not be recorded, got %v", g.Rolls())
	}
}

func TestGameGrowsPastMaxRolls(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 0, MaxRolls+4)
	if got := len(g.Rolls()); got != MaxRolls+4 {
		t.Fatalf("recorded %d rolls, want %d", got, MaxRolls+4)
	}
	if score := mustScore(t, g); score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

func TestGameRollsIsACopy(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 3, 2)
	rolls := g.Rolls()
	rolls[0] = 9
	if !reflect.DeepEqual(g.Rolls(), []int{3, 3}) {
		t.Fatalf("recorded rolls changed through copy: %v", g.Rolls())
	}
}

func TestGameReset(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 10, 12)
	g.Reset()
	if _, err := g.Score(); !errors.Is(err, ErrNoRolls) {
		t.Fatalf("expected ErrNoRolls after reset, got %v", err)
	}
	rollMany(g, 1, 20)
	if score := mustScore(t, g); score != 20 {
		t.Fatalf("score after reset = %d, want 20", score)
	}
}

func TestGameUsesScorerPolicy(t *testing.T) {
	g := NewGame(&Scorer{TenthFrame: TenthFrameCapped})
	rollMany(g, 0, 18)
	rollMany(g, 10, 1)
	if score := mustScore(t, g); score != 10 {
		t.Fatalf("capped tenth strike = %d, want 10", score)
	}
}

func TestGameIncomplete(t *testing.T) {
	g := NewGame(nil)
	rollMany(g, 0, 18)
	rollMany(g, 10, 2)
	var incomplete *IncompleteGameError
	if _, err := g.Score(); !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteGameError, got %v", err)
	}
	if incomplete.Need != 21 || incomplete.Have != 20 {
		t.Fatalf("need/have = %d/%d, want 21/20", incomplete.Need, incomplete.Have)
	}
}

func TestScoreConcurrentCallers(t *testing.T) {
	rolls := []int{1, 4, 4, 5, 6, 4, 5, 5, 10, 0, 1, 7, 3, 6, 4, 10, 2, 8, 6}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := Score(rolls)
			if err == nil && score != 133 {
				err = errors.New("unexpected score")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
}
