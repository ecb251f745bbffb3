// Package sim generates legal bowling games and summarises their scores.
package sim

import "github.com/xtding233/bowling-backend/internal/bowling"

// RandomGame returns a complete, legal roll sequence. Each roll is uniform
// over the pins still standing.
func RandomGame(rng RandomSource) []int {
	if rng == nil {
		rng = DefaultRNG()
	}
	rolls := make([]int, 0, bowling.MaxRolls)
	for frame := 1; frame < bowling.Frames; frame++ {
		first := pins(rng, bowling.Pins)
		rolls = append(rolls, first)
		if first == bowling.Pins {
			continue
		}
		rolls = append(rolls, pins(rng, bowling.Pins-first))
	}
	return appendTenth(rolls, rng)
}

// appendTenth rolls frame 10 and whatever bonus rolls it earns.
func appendTenth(rolls []int, rng RandomSource) []int {
	first := pins(rng, bowling.Pins)
	rolls = append(rolls, first)
	if first == bowling.Pins {
		second := pins(rng, bowling.Pins)
		standing := bowling.Pins
		if second < bowling.Pins {
			standing -= second
		}
		return append(rolls, second, pins(rng, standing))
	}
	second := pins(rng, bowling.Pins-first)
	rolls = append(rolls, second)
	if first+second == bowling.Pins {
		rolls = append(rolls, pins(rng, bowling.Pins))
	}
	return rolls
}

// Legal reports whether rolls is exactly one complete game that could have
// been bowled: no frame knocks down more than 10 pins and no rolls are left over.
func Legal(rolls []int) bool {
	at := 0
	next := func() (int, bool) {
		if at >= len(rolls) {
			return 0, false
		}
		p := rolls[at]
		at++
		return p, p >= 0 && p <= bowling.Pins
	}

	for frame := 1; frame < bowling.Frames; frame++ {
		first, ok := next()
		if !ok {
			return false
		}
		if first == bowling.Pins {
			continue
		}
		second, ok := next()
		if !ok || first+second > bowling.Pins {
			return false
		}
	}

	first, ok := next()
	if !ok {
		return false
	}
	second, ok := next()
	if !ok {
		return false
	}
	switch {
	case first == bowling.Pins:
		third, ok := next()
		if !ok || (second < bowling.Pins && second+third > bowling.Pins) {
			return false
		}
	case first+second == bowling.Pins:
		if _, ok := next(); !ok {
			return false
		}
	case first+second > bowling.Pins:
		return false
	}
	return at == len(rolls)
}
