// Package poolgen generates deterministic synthetic free-agent pools for the
// CLI, load tests and package tests.
package poolgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/valuation"
)

const (
	minAge          = 21
	maxAge          = 35
	minGames        = 6
	maxGames        = 17
	attributeSpread = 8
	minAttribute    = 40
	birthDateRate   = 0.2
	contractYear    = 0.15
	seedStream      = 0x9e3779b97f4a7c15
)

// Rating bands, roughly how a free-agent class is spread. Elite and very low
// players are rare.
var ratingBands = []struct { //nolint:gochecknoglobals // fixed table
	lo, hi int
	weight int
}{
	{65, 78, 30}, // average
	{78, 86, 15}, // high
	{50, 65, 20}, // low
	{87, 97, 4},  // elite
	{40, 50, 5},  // very low
	{72, 82, 12}, // mid-high
	{58, 68, 10}, // mid-low
	{40, 97, 4},  // anywhere
}

var defaultPositions = []string{ //nolint:gochecknoglobals // fixed table
	"QB", "RB", "WR", "WR", "TE", "LT", "RG", "C",
	"EDGE", "DT", "MLB", "CB", "CB", "FS", "K",
}

var archetypes = map[string][]string{ //nolint:gochecknoglobals // fixed table
	"QB":   {"pocket passer", "scrambler", "field general"},
	"RB":   {"power back", "elusive back", "receiving back"},
	"WR":   {"deep threat", "slot", "possession"},
	"TE":   {"blocking", "vertical threat"},
	"EDGE": {"speed rusher", "power rusher"},
	"LB":   {"run stopper", "pass coverage"},
	"CB":   {"man to man", "zone"},
	"S":    {"run support", "zone"},
}

//nolint:gochecknoglobals // fixed tables
var (
	firstNames = []string{"Marcus", "Jalen", "Tyrell", "Caleb", "Deshawn", "Austin", "Malik", "Trey", "Jordan", "Cole", "Andre", "Xavier"}
	lastNames  = []string{"Hill", "Brooks", "Carter", "Reed", "Foster", "Hayes", "Bishop", "Lowe", "Gaines", "Price", "Sutton", "Vance"}
)

// Generator builds synthetic players and owner directives. It is not safe
// for concurrent use.
type Generator struct {
	vc          *valuation.Context
	rng         *rand.Rand
	seed        uint64
	positions   []string
	missingRate float64
}

// New returns a Generator whose players fit vc's tables.
func New(vc *valuation.Context, opts ...Option) *Generator {
	g := &Generator{
		vc:          vc,
		seed:        1,
		positions:   defaultPositions,
		missingRate: 0.1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^seedStream)) //nolint:gosec // synthetic data
	return g
}

// Pool returns n players with IDs fa-0001 upward.
func (g *Generator) Pool(ctx context.Context, n int) ([]player.Data, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	out := make([]player.Data, n)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate pool: %w", err)
		}
		out[i] = g.Player(i)
	}
	return out, nil
}

// Requests pairs a pool of n players with one team's directives.
func (g *Generator) Requests(ctx context.Context, n int, dynastyID, teamID string) ([]model.EvaluationRequest, error) {
	players, err := g.Pool(ctx, n)
	if err != nil {
		return nil, err
	}
	d := g.Directives()
	reqs := make([]model.EvaluationRequest, len(players))
	for i := range players {
		reqs[i] = model.EvaluationRequest{
			DynastyID:  dynastyID,
			TeamID:     teamID,
			Player:     players[i],
			Directives: d,
		}
	}
	return reqs, nil
}

// Player generates the i-th player of the stream.
func (g *Generator) Player(i int) player.Data {
	pos := g.positions[g.rng.IntN(len(g.positions))]
	rating := g.rating()
	age := minAge + g.rng.IntN(maxAge-minAge+1)

	p := player.Data{
		PlayerID:      fmt.Sprintf("fa-%04d", i+1),
		Name:          firstNames[g.rng.IntN(len(firstNames))] + " " + lastNames[g.rng.IntN(len(lastNames))],
		Position:      pos,
		OverallRating: player.Int(rating),
		ContractYear:  g.rng.Float64() < contractYear,
	}
	if g.rng.Float64() < birthDateRate {
		// Born before September so the derived age matches.
		p.BirthDate = fmt.Sprintf("%04d-%02d-%02d", g.vc.Season()-age, 1+g.rng.IntN(8), 1+g.rng.IntN(28))
	} else {
		p.Age = player.Int(age)
	}
	group, _ := g.vc.Group(pos)
	if names := archetypes[group]; len(names) > 0 && g.rng.IntN(2) == 0 {
		p.Archetype = names[g.rng.IntN(len(names))]
	}
	switch g.rng.IntN(5) {
	case 0:
		p.DevelopmentCurve = player.CurveEarly
	case 1:
		p.DevelopmentCurve = player.CurveLate
	}

	if g.rng.Float64() >= g.missingRate {
		p.Attributes = g.attributes(pos, p.Archetype, rating, age)
	}
	if g.rng.Float64() >= g.missingRate {
		p.GamesPlayed = minGames + g.rng.IntN(maxGames-minGames+1)
		p.Stats = g.stats(pos, rating, p.GamesPlayed)
	}
	return p
}

// Directives generates one owner's directives.
func (g *Generator) Directives() owner.Directives {
	philosophies := []owner.Philosophy{owner.Aggressive, owner.Balanced, owner.Conservative}
	teams := []owner.TeamPhilosophy{owner.WinNow, owner.Maintain, owner.Rebuild}

	tenure := g.rng.IntN(11)
	d := owner.Directives{
		OwnerPhilosophy:    string(philosophies[g.rng.IntN(len(philosophies))]),
		TeamPhilosophy:     string(teams[g.rng.IntN(len(teams))]),
		GMTenureYears:      tenure,
		PlayoffAppearances: g.rng.IntN(tenure + 1),
		RecentWinPct:       round(0.2+g.rng.Float64()*0.6, 2),
	}
	d.WinNowMode = d.TeamPhilosophy == string(owner.WinNow) && g.rng.IntN(2) == 0
	if g.rng.IntN(2) == 0 {
		patience := round(g.rng.Float64(), 2)
		d.OwnerPatience = &patience
	}
	return d
}

func (g *Generator) rating() int {
	total := 0
	for _, b := range ratingBands {
		total += b.weight
	}
	pick := g.rng.IntN(total)
	for _, b := range ratingBands {
		if pick < b.weight {
			return b.lo + g.rng.IntN(b.hi-b.lo+1)
		}
		pick -= b.weight
	}
	return ratingBands[0].lo
}

func (g *Generator) attributes(pos, archetype string, rating, age int) map[string]int {
	weights, _ := g.vc.KeyAttributes(pos, archetype)
	if len(weights) == 0 {
		return nil
	}
	// Sorted so the random stream does not depend on map order.
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make(map[string]int, len(names)+1)
	for _, name := range names {
		attrs[name] = clampAttr(rating + g.rng.IntN(2*attributeSpread+1) - attributeSpread)
	}
	if g.vc.Thresholds().Category(age) == player.AgeYoung {
		attrs[valuation.PotentialAttribute] = clampAttr(rating + g.rng.IntN(11))
	}
	return attrs
}

func (g *Generator) stats(pos string, rating, games int) map[string]float64 {
	benchmarks := g.vc.Benchmarks(pos)
	if len(benchmarks) == 0 {
		return nil
	}
	base := float64(rating-minAttribute) / float64(player.MaxRating-minAttribute) * 100
	out := make(map[string]float64, len(benchmarks))
	for _, b := range benchmarks {
		if !b.Required && g.rng.Float64() < g.missingRate {
			continue
		}
		pct := min(max(base+g.rng.Float64()*30-15, 0), 100)
		if b.Inverted {
			pct = 100 - pct
		}
		v := interpolate(b.Breakpoints, pct)
		if b.PerGame {
			v *= float64(games)
		}
		out[b.Stat] = round(v, 1)
	}
	return out
}

var percentiles = [7]float64{0, 10, 25, 50, 75, 90, 100} //nolint:gochecknoglobals // fixed table

// interpolate maps a percentile onto a benchmark's breakpoints.
func interpolate(bp [7]float64, pct float64) float64 {
	for i := 1; i < len(percentiles); i++ {
		if pct <= percentiles[i] {
			span := percentiles[i] - percentiles[i-1]
			return bp[i-1] + (bp[i]-bp[i-1])*(pct-percentiles[i-1])/span
		}
	}
	return bp[len(bp)-1]
}

func clampAttr(v int) int {
	return min(max(v, minAttribute), player.MaxRating)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
