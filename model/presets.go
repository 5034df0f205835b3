package model

import "math"

// Defaults used by the paper reproduction runs.
const (
	PaperNodeCount    = 100
	PaperAreaSize     = 100.0
	PaperMaxPower     = 20.0
	PaperInitialPower = 2.0
	PaperGrowthFactor = 1.5
)

// PaperScenarios returns the eight comparison runs (a)-(h): no topology
// control, plain CBTC at two cone angles, CBTC with shrink-back, and CBTC
// with shrink-back plus asymmetric edge removal.
//
// Every scenario gets its own placement seeded from baseSeed so the runs
// are reproducible but do not share a node layout. Scenario (a) starts at
// the power ceiling, which yields the full max-power graph.
func PaperScenarios(baseSeed uint64) []ScenarioDefinition {
	narrow := 2 * math.Pi / 3
	wide := 5 * math.Pi / 6

	type row struct {
		id, title  string
		angle      float64
		shrink     bool
		asymmetric bool
		noControl  bool
	}
	rows := []row{
		{"a", "(a) No topology control", narrow, false, false, true},
		{"b", "(b) α = 2π/3, CBTC", narrow, false, false, false},
		{"c", "(c) α = 5π/6, CBTC", wide, false, false, false},
		{"d", "(d) α = 2π/3 with shrink-back", narrow, true, false, false},
		{"e", "(e) α = 5π/6 with shrink-back", wide, true, false, false},
		{"f", "(f) α = 2π/3 with shrink-back and asymmetric edge removal", narrow, true, true, false},
		{"g", "(g) α = 5π/6 with all optimizations", wide, true, true, false},
		{"h", "(h) α = 2π/3 with all optimizations", narrow, true, true, false},
	}

	out := make([]ScenarioDefinition, 0, len(rows))
	for i, r := range rows {
		initial := PaperInitialPower
		if r.noControl {
			initial = PaperMaxPower
		}
		out = append(out, ScenarioDefinition{
			ID:                r.id,
			Title:             r.title,
			ConeAngle:         r.angle,
			InitialPower:      initial,
			MaxPower:          PaperMaxPower,
			GrowthFactor:      PaperGrowthFactor,
			ShrinkBack:        r.shrink,
			AsymmetricRemoval: r.asymmetric,
			Placement: &Placement{
				Count:    PaperNodeCount,
				AreaSize: PaperAreaSize,
				Seed:     baseSeed + uint64(i),
			},
		})
	}
	return out
}
