package core

import (
	"slices"
	"testing"
)

func TestDiscover_IsDirectedAndInclusive(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())

	added := Discover(net, 0, 10)
	if added != 2 {
		t.Fatalf("Discover added %d neighbors, want 2 (distance == power is in range)", added)
	}
	if got := neighborIDs(t, net, 0); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("node 0 neighbors = %v, want [1 2]", got)
	}
	for idx := 1; idx < net.Len(); idx++ {
		if n := net.node(idx); n.Degree() != 0 {
			t.Errorf("node %d gained neighbors %v from a directed discovery", idx, n.Neighbors())
		}
	}
}

func TestDiscover_NoSelfNoDuplicates(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())

	Discover(net, 0, 20)
	if again := Discover(net, 0, 20); again != 0 {
		t.Fatalf("second Discover at the same power added %d, want 0", again)
	}
	n := net.node(0)
	if n.HasNeighbor(0) {
		t.Fatalf("node lists itself as a neighbor")
	}
	if n.Degree() != 3 {
		t.Fatalf("degree = %d, want 3", n.Degree())
	}
}

func TestDiscover_CoincidentNodeIsDiscovered(t *testing.T) {
	specs := squareSpecs()
	specs = append(specs, squareSpecs()[0])
	specs[len(specs)-1].ID = 99
	net := mustNetwork(t, specs, squareConfig())

	Discover(net, 0, 1)
	if got := neighborIDs(t, net, 0); !slices.Equal(got, []int{99}) {
		t.Fatalf("neighbors = %v, want [99]", got)
	}
	// Bearing to a coincident node is defined, so coverage must not panic.
	_ = Covered(net, 0, FullTurn)
}

func TestDiscover_OutOfRangePanics(t *testing.T) {
	net := mustNetwork(t, squareSpecs(), squareConfig())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range index")
		}
	}()
	Discover(net, 4, 1)
}
