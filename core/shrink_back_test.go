package core

import (
	"math"
	"slices"
	"testing"
)

func shrinkConfig(power float64) Config {
	return Config{
		ConeAngle:    2 * math.Pi / 3,
		InitialPower: power,
		MaxPower:     power,
		GrowthFactor: 2,
		ShrinkBack:   true,
	}
}

func TestShrinkBack_PrunesRedundantFarNeighbors(t *testing.T) {
	specs := centered([]polarSpec{
		{1, 5, 0}, {2, 5, 120}, {3, 5, 240},
		{4, 1, 60}, {5, 1, 180}, {6, 1, 300},
	})
	net := mustNetwork(t, specs, shrinkConfig(5.5))

	if res := Escalate(net, 0); !res.Covered || net.node(0).Degree() != 6 {
		t.Fatalf("setup: escalation = %+v degree %d", res, net.node(0).Degree())
	}

	removed := ShrinkBack(net, 0)
	if removed != 3 {
		t.Fatalf("ShrinkBack removed %d, want 3", removed)
	}
	got := neighborIDs(t, net, 0)
	slices.Sort(got)
	if !slices.Equal(got, []int{4, 5, 6}) {
		t.Fatalf("neighbors = %v, want the near ring [4 5 6]", got)
	}
	if !Covered(net, 0, net.Config().ConeAngle) {
		t.Fatalf("coverage lost after shrink-back")
	}
	if p := net.node(0).Power; math.Abs(p-1) > 1e-9 {
		t.Fatalf("Power = %v, want the farthest remaining distance 1", p)
	}
}

func TestShrinkBack_StopsAtFirstFailingRemoval(t *testing.T) {
	// Removing the farthest neighbor (A at 0°) opens a 160° gap, so the
	// pass stops there even though removing E would have kept coverage.
	specs := centered([]polarSpec{
		{1, 3, 0},     // A
		{2, 2.5, 100}, // B
		{3, 1, 200},   // C
		{4, 1, 300},   // D
		{5, 0.5, 250}, // E
	})
	net := mustNetwork(t, specs, shrinkConfig(3.5))

	if res := Escalate(net, 0); !res.Covered {
		t.Fatalf("setup: escalation = %+v", res)
	}
	if removed := ShrinkBack(net, 0); removed != 0 {
		t.Fatalf("ShrinkBack removed %d, want 0", removed)
	}
	n := net.node(0)
	if n.Degree() != 5 || !n.HasNeighbor(1) {
		t.Fatalf("neighbors = %v, want all five with A reinstated", neighborIDs(t, net, 0))
	}
	if n.Power != 3.5 {
		t.Fatalf("Power = %v, want unchanged 3.5", n.Power)
	}
}

func TestShrinkBack_NeverGoesBelowThreeNeighbors(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())
	Escalate(net, 0)

	if removed := ShrinkBack(net, 0); removed != 0 {
		t.Fatalf("ShrinkBack removed %d from a 3-neighbor node", removed)
	}
	if got := neighborIDs(t, net, 0); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("neighbors = %v, want [1 2 3]", got)
	}
}

func TestShrinkBack_UncoveredNodeKeepsEverything(t *testing.T) {
	// Five neighbors clustered on one side; coverage never holds, so the
	// first removal fails and is undone.
	specs := centered([]polarSpec{{1, 4, 0}, {2, 3, 10}, {3, 2, 20}, {4, 1, 30}, {5, 1.5, 40}})
	net := mustNetwork(t, specs, shrinkConfig(4))
	Escalate(net, 0)

	if removed := ShrinkBack(net, 0); removed != 0 {
		t.Fatalf("removed %d from an uncovered node", removed)
	}
	if net.node(0).Degree() != 5 {
		t.Fatalf("degree = %d, want 5", net.node(0).Degree())
	}
}
