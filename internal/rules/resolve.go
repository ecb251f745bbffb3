// resolve.go
package rules

import (
	"fmt"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// DefaultSample is the demo game used when no rules file supplies one.
// It is a legal game that scores 133.
var DefaultSample = []int{1, 4, 4, 5, 6, 4, 5, 5, 10, 0, 1, 7, 3, 6, 4, 10, 2, 8, 6}

// Resolved is a validated rule set ready to score with.
type Resolved struct {
	Profile string
	Version string // effective rules version for tracing
	Scorer  bowling.Scorer
	Sample  []int
}

// Defaults is the rule set used when no rules directory is configured.
func Defaults() Resolved {
	return Resolved{
		Scorer: bowling.Standard,
		Sample: append([]int(nil), DefaultSample...),
	}
}

// Resolve loads, merges, and validates the rules for profile.
func (l *Loader) Resolve(profile string) (Resolved, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Resolved{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Resolved{}, fmt.Errorf("rules %q: %w", profile, err)
	}
	policy, err := bowling.ParseTenthFrame(raw.Scoring.TenthFrame)
	if err != nil {
		return Resolved{}, err
	}

	sample := raw.Sample
	if len(sample) == 0 {
		sample = DefaultSample
	}
	return Resolved{
		Profile: profile,
		Version: raw.Version,
		Scorer:  bowling.Scorer{TenthFrame: policy},
		Sample:  append([]int(nil), sample...),
	}, nil
}
