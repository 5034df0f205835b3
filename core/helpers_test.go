package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/cbtc-topology/model"
)

// polar returns a node spec at radius r and bearing deg (degrees) from
// the origin.
func polar(id int, r, deg float64) model.NodeSpec {
	rad := deg * math.Pi / 180
	return model.NodeSpec{ID: id, X: r * math.Cos(rad), Y: r * math.Sin(rad)}
}

func squareSpecs() []model.NodeSpec {
	return []model.NodeSpec{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 10, Y: 0},
		{ID: 2, X: 0, Y: 10},
		{ID: 3, X: 10, Y: 10},
	}
}

func squareConfig() Config {
	return Config{
		ConeAngle:    2 * math.Pi / 3,
		InitialPower: 5,
		MaxPower:     20,
		GrowthFactor: 1.5,
	}
}

func mustNetwork(t *testing.T, specs []model.NodeSpec, cfg Config) *Network {
	t.Helper()
	net, err := NewNetwork(specs, cfg)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return net
}

func neighborIDs(t *testing.T, net *Network, idx int) []int {
	t.Helper()
	n, err := net.Node(idx)
	if err != nil {
		t.Fatalf("Node(%d): %v", idx, err)
	}
	ids := make([]int, 0, n.Degree())
	for _, j := range n.Neighbors() {
		other, _ := net.Node(j)
		ids = append(ids, other.ID)
	}
	return ids
}

type polarSpec struct {
	id     int
	r, deg float64
}

// centered returns node 0 at the origin followed by the polar specs.
func centered(ps []polarSpec) []model.NodeSpec {
	out := []model.NodeSpec{{ID: 0}}
	for _, p := range ps {
		out = append(out, polar(p.id, p.r, p.deg))
	}
	return out
}
