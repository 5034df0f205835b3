package core

import (
	"fmt"
	"math/rand/v2"

	"github.com/signalsfoundry/cbtc-topology/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomPlacement returns count node specs with ids 0..count-1 placed
// uniformly in [0, area) x [0, area). The same seed always yields the
// same layout.
func RandomPlacement(count int, area float64, seed uint64) ([]model.NodeSpec, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: placement count must be positive, got %d", ErrEmptyNetwork, count)
	}
	if !isFinite(area) || area <= 0 {
		return nil, fmt.Errorf("%w: area size must be positive, got %v", ErrInvalidPosition, area)
	}

	coord := distuv.Uniform{Min: 0, Max: area, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	specs := make([]model.NodeSpec, count)
	for i := range specs {
		specs[i] = model.NodeSpec{ID: i, X: coord.Rand(), Y: coord.Rand()}
	}
	return specs, nil
}

// NodesForScenario returns the explicit nodes of def, or generates them
// from its placement block.
func NodesForScenario(def model.ScenarioDefinition) ([]model.NodeSpec, error) {
	if len(def.Nodes) > 0 {
		return def.Nodes, nil
	}
	if def.Placement == nil {
		return nil, fmt.Errorf("%w: scenario %q has neither nodes nor placement", ErrEmptyNetwork, def.ID)
	}
	return RandomPlacement(def.Placement.Count, def.Placement.AreaSize, def.Placement.Seed)
}

// NetworkForScenario builds the Network described by def.
func NetworkForScenario(def model.ScenarioDefinition) (*Network, error) {
	specs, err := NodesForScenario(def)
	if err != nil {
		return nil, err
	}
	return NewNetwork(specs, ConfigFromScenario(def))
}
