// Package score implements the score command: it reads one game's rolls and
// prints the total.
package score

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/input"
	"github.com/xtding233/bowling-backend/internal/platform/config"
	"github.com/xtding233/bowling-backend/internal/rules"
	"github.com/xtding233/bowling-backend/internal/sim"
)

// Config holds score command configuration.
type Config struct {
	RulesDir string `env:"RULES_DIR"`
	Profile  string `env:"PROFILE"`
	Rolls    string `env:"ROLLS"`
	Sample   bool   `env:"SAMPLE"`
	Frames   bool   `env:"FRAMES"`
	Simulate int    `env:"SIMULATE"`
	Seed     uint64 `env:"SEED"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RulesDir, "rules-dir", cfg.RulesDir, "directory holding default.yaml and profiles/")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "rules profile to apply over default.yaml")
	fs.StringVar(&cfg.Rolls, "rolls", cfg.Rolls, "comma-separated rolls, e.g. 10,7,3,9,0")
	fs.BoolVar(&cfg.Sample, "sample", cfg.Sample, "score the sample game from the rules")
	fs.BoolVar(&cfg.Frames, "frames", cfg.Frames, "print a frame-by-frame breakdown")
	fs.IntVar(&cfg.Simulate, "simulate", cfg.Simulate, "score N random games and print statistics")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for -simulate (0 uses a random source)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Simulate < 0 {
		return Config{}, fmt.Errorf("simulate must be >= 0")
	}
	return cfg, nil
}

// Run scores one game (or a simulation) and writes the result to out.
// Interactive rolls are read from in when neither -rolls nor -sample is set.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if in == nil {
		in = strings.NewReader("")
	}

	_, span := otel.Tracer("github.com/xtding233/bowling-backend/internal/cmd/score").Start(ctx, "score.run")
	defer span.End()

	rs, err := loadRules(cfg)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("bowling.tenth_frame", string(rs.Scorer.TenthFrame)))
	if cfg.RulesDir != "" {
		logger := log.New(errOut, "", 0)
		logger.Printf("rules %s: profile=%q version=%q tenth_frame=%s", cfg.RulesDir, rs.Profile, rs.Version, rs.Scorer.TenthFrame)
	}

	if cfg.Simulate > 0 {
		return simulate(cfg, rs.Scorer, out)
	}

	rolls, err := collectRolls(cfg, rs, in, out)
	if err != nil {
		return err
	}
	if len(rolls) == 0 {
		fmt.Fprintln(out, "No rolls were entered. Exiting.")
		return bowling.ErrNoRolls
	}
	span.SetAttributes(attribute.Int("bowling.rolls", len(rolls)))

	if cfg.Frames {
		frames, err := rs.Scorer.Frames(rolls)
		if err != nil {
			return err
		}
		if err := writeFrames(out, frames); err != nil {
			return err
		}
	}
	total, err := rs.Scorer.Score(rolls)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Total score: %d\n", total)
	return err
}

func loadRules(cfg Config) (rules.Resolved, error) {
	if cfg.RulesDir == "" {
		if cfg.Profile != "" {
			return rules.Resolved{}, fmt.Errorf("profile %q requires a rules directory", cfg.Profile)
		}
		return rules.Defaults(), nil
	}
	return rules.NewLoader(cfg.RulesDir).Resolve(cfg.Profile)
}

func collectRolls(cfg Config, rs rules.Resolved, in io.Reader, out io.Writer) ([]int, error) {
	switch {
	case cfg.Rolls != "":
		return input.ParseRolls(cfg.Rolls)
	case cfg.Sample:
		return rs.Sample, nil
	default:
		fmt.Fprintln(out, input.Prompt)
		return input.ReadRolls(in, out)
	}
}

func simulate(cfg Config, scorer bowling.Scorer, out io.Writer) error {
	rng := sim.DefaultRNG()
	if cfg.Seed != 0 {
		rng = sim.NewSeededRNG(cfg.Seed)
	}
	stats, err := sim.RunMonteCarlo(scorer, cfg.Simulate, rng)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Games: %d\nMean: %.2f\nStdDev: %.2f\nMin: %d\nP50: %.1f\nP90: %.1f\nP99: %.1f\nMax: %d\n",
		stats.Trials, stats.Mean, stats.StdDev, stats.Min, stats.P50, stats.P90, stats.P99, stats.Max)
	return err
}

func writeFrames(out io.Writer, frames []bowling.Frame) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tROLLS\tKIND\tSCORE\tTOTAL")
	for _, f := range frames {
		rolls := make([]string, len(f.Rolls))
		for i, p := range f.Rolls {
			rolls[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", f.Number, strings.Join(rolls, " "), f.Kind, f.Score, f.Total)
	}
	return tw.Flush()
}
