// types.go
package rules

// RawConfig is a rules file as written in YAML.
type RawConfig struct {
	Version string        `yaml:"version"`
	Scoring ScoringConfig `yaml:"scoring"`
	Sample  []int         `yaml:"sample,omitempty"` // demo game for `score -sample`
	Notes   string        `yaml:"notes,omitempty"`
}

type ScoringConfig struct {
	TenthFrame string `yaml:"tenth_frame"` // "bonus" | "capped"
}
