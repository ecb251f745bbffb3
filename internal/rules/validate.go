package rules

import (
	"fmt"
	"strings"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if _, err := bowling.ParseTenthFrame(cfg.Scoring.TenthFrame); err != nil {
		errs = append(errs, "scoring.tenth_frame must be one of: bonus, capped")
	}

	// sample is only range-checked; completeness is checked when it is scored
	for i, pins := range cfg.Sample {
		if bowling.ValidateRoll(pins) != nil {
			errs = append(errs, fmt.Sprintf("sample[%d] must be in [0,10]", i))
		}
	}
	if len(cfg.Sample) > bowling.MaxRolls {
		errs = append(errs, fmt.Sprintf("sample must have at most %d rolls", bowling.MaxRolls))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
