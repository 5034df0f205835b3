package core

import (
	"slices"
	"testing"
)

func TestEscalate_StopsAtFirstCoveringPower(t *testing.T) {
	specs := []polarSpec{{1, 6, 0}, {2, 6, 120}, {3, 6, 240}}
	net := mustNetwork(t, centered(specs), squareConfig())

	res := Escalate(net, 0)
	if !res.Covered {
		t.Fatalf("expected coverage, got %+v", res)
	}
	if res.Attempts != 2 || res.Power != 7.5 {
		t.Fatalf("Escalate = %+v, want 2 attempts ending at power 7.5", res)
	}
	n := net.node(0)
	if n.Power != 7.5 || n.AttemptedPower != 7.5 || !n.Covered {
		t.Fatalf("node state = power %v attempted %v covered %v", n.Power, n.AttemptedPower, n.Covered)
	}
}

func TestEscalate_CeilingIsSoftFailure(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())

	res := Escalate(net, 0)
	if res.Covered {
		t.Fatalf("a square corner can never be covered at α = 2π/3")
	}
	// 5, 7.5, 11.25, 16.875; 25.3125 exceeds the ceiling.
	if res.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", res.Attempts)
	}
	if res.AttemptedPower != 16.875 {
		t.Errorf("AttemptedPower = %v, want 16.875", res.AttemptedPower)
	}
	if res.Power != 5 {
		t.Errorf("Power = %v, want initial power 5", res.Power)
	}
	if got := neighborIDs(t, net, 0); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("neighbors = %v, want [1 2 3] from the largest attempt", got)
	}
}

func TestEscalate_NeighborSetGrowsMonotonically(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())
	cfg := net.Config()

	var prev []int
	for power := cfg.InitialPower; power <= cfg.MaxPower; power *= cfg.GrowthFactor {
		Discover(net, 0, power)
		cur := net.node(0).Neighbors()
		for _, p := range prev {
			if !slices.Contains(cur, p) {
				t.Fatalf("neighbor %d lost when power grew to %v", p, power)
			}
		}
		prev = cur
	}
}

func TestEscalate_LoneNode(t *testing.T) {
	net := mustNetwork(t, squareSpecs()[:1], squareConfig())

	res := Escalate(net, 0)
	if res.Covered || net.node(0).Degree() != 0 {
		t.Fatalf("lone node: %+v degree %d", res, net.node(0).Degree())
	}
	if res.Power != 5 {
		t.Fatalf("lone node power = %v, want initial power", res.Power)
	}
}
