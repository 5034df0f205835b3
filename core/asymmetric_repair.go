package core

import "math"

// RepairResult describes the outcome of asymmetric edge removal for
// one node.
type RepairResult struct {
	Removed  int
	Fallback bool
	// FallbackNeighbor is the node index reconnected when Fallback is
	// true, or -1.
	FallbackNeighbor int
}

// RepairAsymmetric keeps only the neighbors of node idx that list idx
// among their own neighbors. If none remain and the network has another
// node, the closest other node is added back regardless of whether that
// link is mutual, so no node is left isolated. Ties go to the node
// created first.
//
// The pass is directed: it only edits node idx. Its result depends on
// how far the other nodes have progressed when it runs.
//
// RepairAsymmetric panics if idx is out of range.
func RepairAsymmetric(net *Network, idx int) RepairResult {
	net.checkIndex(idx)
	n := net.node(idx)
	res := RepairResult{FallbackNeighbor: -1}

	kept := n.neighbors[:0]
	for _, j := range n.neighbors {
		if net.nodes[j].HasNeighbor(idx) {
			kept = append(kept, j)
		} else {
			res.Removed++
		}
	}
	n.neighbors = kept

	if len(n.neighbors) > 0 || net.Len() < 2 {
		return res
	}

	closest, best := -1, math.Inf(1)
	for j := range net.nodes {
		if j == idx {
			continue
		}
		if d := net.distance(idx, j); d < best {
			closest, best = j, d
		}
	}
	if closest >= 0 {
		n.addNeighbor(closest)
		res.Fallback = true
		res.FallbackNeighbor = closest
	}
	return res
}
