package core

import "slices"

// gapTolerance absorbs float rounding in bearings so that a gap equal to
// the cone angle counts as covered.
const gapTolerance = 1e-9

// Covered reports whether node idx has at least one neighbor in every
// angular sector of width angle around it. A node without neighbors is
// never covered.
//
// Covered panics if idx is out of range.
func Covered(net *Network, idx int, angle float64) bool {
	net.checkIndex(idx)
	return ConeCovered(neighborBearings(net, idx), angle)
}

// ConeCovered reports whether no gap between consecutive bearings,
// including the wrap-around gap from the last bearing back to the
// first, exceeds angle. An empty set is not covered; a single bearing
// leaves a gap of 2π.
func ConeCovered(bearings []float64, angle float64) bool {
	if len(bearings) == 0 {
		return false
	}
	return LargestGap(bearings) <= angle+gapTolerance
}

// LargestGap returns the widest angular gap between bearings once they
// are sorted around the circle. It returns 2π for zero or one bearing.
func LargestGap(bearings []float64) float64 {
	if len(bearings) < 2 {
		return FullTurn
	}
	sorted := slices.Clone(bearings)
	slices.Sort(sorted)

	// Appending each bearing shifted by a full turn turns the circular
	// check into a linear scan.
	n := len(sorted)
	for i := 0; i < n; i++ {
		sorted = append(sorted, sorted[i]+FullTurn)
	}

	largest := 0.0
	for i := 0; i+1 < len(sorted); i++ {
		if gap := sorted[i+1] - sorted[i]; gap > largest {
			largest = gap
		}
	}
	return largest
}

func neighborBearings(net *Network, idx int) []float64 {
	n := net.node(idx)
	out := make([]float64, 0, len(n.neighbors))
	for _, j := range n.neighbors {
		out = append(out, Bearing(n.Position, net.nodes[j].Position))
	}
	return out
}
