package core

import (
	"slices"
	"sort"
)

// ShrinkBack prunes node idx's farthest neighbors one at a time while
// cone coverage survives each removal, and returns how many it removed.
//
// It stops as soon as the node has MinShrinkBackNeighbors or fewer
// neighbors, or when a removal breaks coverage; that removal is undone
// and no further neighbor is tried, even if a different one could have
// gone. When anything was pruned the node's Power drops to the distance
// of its farthest remaining neighbor.
//
// ShrinkBack panics if idx is out of range.
func ShrinkBack(net *Network, idx int) int {
	net.checkIndex(idx)
	n := net.node(idx)
	angle := net.cfg.ConeAngle

	order := slices.Clone(n.neighbors)
	sort.SliceStable(order, func(a, b int) bool {
		return net.distance(idx, order[a]) > net.distance(idx, order[b])
	})

	removed := 0
	for _, j := range order {
		if n.Degree() <= MinShrinkBackNeighbors {
			break
		}
		n.removeNeighbor(j)
		if !Covered(net, idx, angle) {
			n.addNeighbor(j)
			break
		}
		removed++
	}

	if removed > 0 {
		if reach := farthestNeighbor(net, idx); reach < n.Power {
			n.Power = reach
		}
	}
	return removed
}

func farthestNeighbor(net *Network, idx int) float64 {
	far := 0.0
	for _, j := range net.node(idx).neighbors {
		if d := net.distance(idx, j); d > far {
			far = d
		}
	}
	return far
}
