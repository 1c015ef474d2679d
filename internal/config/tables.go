package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/valuation"
)

// LeagueTables are market overrides read once when the valuation context is
// built. Rates are keyed by position (rating_rates) or position group
// (market_rates), then by tier name. Benchmarks replace the whole stat set of
// a position or group.
type LeagueTables struct {
	SalaryCap   float64                       `koanf:"salary_cap"`
	Young       int                           `koanf:"young_age_threshold"`
	Veteran     int                           `koanf:"veteran_age_threshold"`
	RatingRates map[string]map[string]float64 `koanf:"rating_rates"`
	MarketRates map[string]map[string]float64 `koanf:"market_rates"`
	MarketHeat  map[string]float64            `koanf:"market_heat"`
	Benchmarks  map[string][]BenchmarkTable   `koanf:"benchmarks"`
}

// BenchmarkTable is one stat's distribution: league values at p0, p10, p25,
// p50, p75, p90 and p100.
type BenchmarkTable struct {
	Stat        string    `koanf:"stat"`
	Breakpoints []float64 `koanf:"breakpoints"`
	PerGame     bool      `koanf:"per_game"`
	Inverted    bool      `koanf:"inverted"`
	Required    bool      `koanf:"required"`
}

// LoadLeagueTables reads a YAML league tables file.
func LoadLeagueTables(_ context.Context, path string) (*LeagueTables, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	var t LeagueTables
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return &t, nil
}

// Options translates the tables into valuation context options.
func (t *LeagueTables) Options() ([]valuation.ContextOption, error) {
	var opts []valuation.ContextOption
	if t.SalaryCap < 0 {
		return nil, fmt.Errorf("%w: salary_cap must not be negative", ErrInvalidConfig)
	}
	if t.SalaryCap > 0 {
		opts = append(opts, valuation.WithSalaryCap(t.SalaryCap))
	}
	if t.Young != 0 || t.Veteran != 0 {
		if t.Young <= 0 || t.Veteran <= t.Young {
			return nil, fmt.Errorf("%w: age thresholds %d/%d are inconsistent", ErrInvalidConfig, t.Young, t.Veteran)
		}
		opts = append(opts, valuation.WithThresholds(player.Thresholds{Young: t.Young, Veteran: t.Veteran}))
	}
	if len(t.RatingRates) > 0 {
		rates, err := tierRates("rating_rates", t.RatingRates)
		if err != nil {
			return nil, err
		}
		opts = append(opts, valuation.WithRatingRates(rates))
	}
	if len(t.MarketRates) > 0 {
		rates, err := tierRates("market_rates", t.MarketRates)
		if err != nil {
			return nil, err
		}
		opts = append(opts, valuation.WithMarketRates(rates))
	}
	if len(t.MarketHeat) > 0 {
		for group, h := range t.MarketHeat {
			if h <= 0 {
				return nil, fmt.Errorf("%w: market_heat.%s must be positive", ErrInvalidConfig, group)
			}
		}
		opts = append(opts, valuation.WithMarketHeat(t.MarketHeat))
	}
	if len(t.Benchmarks) > 0 {
		sets, err := benchmarks(t.Benchmarks)
		if err != nil {
			return nil, err
		}
		opts = append(opts, valuation.WithBenchmarks(sets))
	}
	return opts, nil
}

func benchmarks(in map[string][]BenchmarkTable) (map[string][]valuation.Benchmark, error) {
	out := make(map[string][]valuation.Benchmark, len(in))
	for key, tables := range in {
		if len(tables) == 0 {
			return nil, fmt.Errorf("%w: benchmarks.%s is empty", ErrInvalidConfig, key)
		}
		set := make([]valuation.Benchmark, 0, len(tables))
		for _, bt := range tables {
			if strings.TrimSpace(bt.Stat) == "" {
				return nil, fmt.Errorf("%w: benchmarks.%s: stat is required", ErrInvalidConfig, key)
			}
			b := valuation.Benchmark{
				Stat:     bt.Stat,
				PerGame:  bt.PerGame,
				Inverted: bt.Inverted,
				Required: bt.Required,
			}
			if len(bt.Breakpoints) != len(b.Breakpoints) {
				return nil, fmt.Errorf("%w: benchmarks.%s.%s: want %d breakpoints, got %d",
					ErrInvalidConfig, key, bt.Stat, len(b.Breakpoints), len(bt.Breakpoints))
			}
			for i, v := range bt.Breakpoints {
				if i > 0 && v < bt.Breakpoints[i-1] {
					return nil, fmt.Errorf("%w: benchmarks.%s.%s: breakpoints must not decrease", ErrInvalidConfig, key, bt.Stat)
				}
				b.Breakpoints[i] = v
			}
			set = append(set, b)
		}
		out[key] = set
	}
	return out, nil
}

func tierRates(section string, in map[string]map[string]float64) (map[string]valuation.TierRates, error) {
	known := make(map[valuation.Tier]bool)
	for _, tier := range valuation.Tiers() {
		known[tier] = true
	}
	out := make(map[string]valuation.TierRates, len(in))
	for key, tiers := range in {
		rates := valuation.TierRates{}
		for name, v := range tiers {
			tier := valuation.Tier(strings.ToLower(name))
			if !known[tier] {
				return nil, fmt.Errorf("%w: %s.%s: unknown tier %q", ErrInvalidConfig, section, key, name)
			}
			if v <= 0 {
				return nil, fmt.Errorf("%w: %s.%s.%s must be positive", ErrInvalidConfig, section, key, name)
			}
			rates[tier] = v
		}
		out[key] = rates
	}
	return out, nil
}

// LoadValuationContext builds the valuation context for season. A non-empty
// path layers the league tables file over the defaults; a positive salaryCap
// wins over both.
func LoadValuationContext(ctx context.Context, path string, season int, salaryCap float64) (*valuation.Context, error) {
	var opts []valuation.ContextOption
	if path != "" {
		tables, err := LoadLeagueTables(ctx, path)
		if err != nil {
			return nil, err
		}
		if opts, err = tables.Options(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if salaryCap > 0 {
		opts = append(opts, valuation.WithSalaryCap(salaryCap))
	}
	return valuation.NewContext(season, opts...), nil
}

// ValuationContext builds the valuation context this configuration describes.
func (c *Config) ValuationContext(ctx context.Context) (*valuation.Context, error) {
	return LoadValuationContext(ctx, c.LeagueTablesFile, c.Season, c.SalaryCap)
}
