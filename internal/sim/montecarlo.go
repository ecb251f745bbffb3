package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// Stats summarizes the scores of simulated games.
type Stats struct {
	Trials int
	Mean   float64
	Var    float64
	StdDev float64
	Min    int
	Max    int
	P50    float64
	P90    float64
	P99    float64
	// raw scores, kept for callers that want histograms
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	sorted := append([]int(nil), xs...)
	sort.Ints(sorted)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(sorted[n-1])
		}
		f := pos - float64(i)
		return float64(sorted[i])*(1-f) + float64(sorted[i+1])*f
	}

	return Stats{
		Trials:  n,
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		Min:     sorted[0],
		Max:     sorted[n-1],
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// RunMonteCarlo scores trials random games with scorer.
func RunMonteCarlo(scorer bowling.Scorer, trials int, rng RandomSource) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := range samples {
		rolls := RandomGame(rng)
		score, err := scorer.Score(rolls)
		if err != nil {
			return Stats{}, fmt.Errorf("trial %d %v: %w", i+1, rolls, err)
		}
		samples[i] = score
	}
	return calcStats(samples), nil
}
