package core

// Discover adds to the neighbor set of node idx every other node within
// distance power of it and returns how many were newly added. Existing
// neighbors are kept. The relation is directed: the discovered nodes'
// own neighbor sets are untouched.
//
// Discover panics if idx is out of range.
func Discover(net *Network, idx int, power float64) int {
	net.checkIndex(idx)
	n := net.node(idx)

	added := 0
	for j := range net.nodes {
		if j == idx {
			continue
		}
		if net.distance(idx, j) <= power && n.addNeighbor(j) {
			added++
		}
	}
	return added
}
