package core

import "slices"

// Node is one wireless node inside a Network. Neighbor entries are
// indices into the owning Network's node slice, never pointers, so the
// neighbor graph cannot form ownership cycles.
type Node struct {
	ID       int
	Position Vec2

	// Power is the transmission power assigned to the node. It starts at
	// the configured initial power and is only rewritten when escalation
	// reaches coverage or shrink-back prunes far neighbors.
	Power float64
	// AttemptedPower is the last radius escalation tried, whether or not
	// it achieved coverage.
	AttemptedPower float64
	// Covered records whether escalation reached cone coverage.
	Covered bool

	index     int
	neighbors []int
}

// Index returns the node's position in the owning Network.
func (n *Node) Index() int { return n.index }

// Neighbors returns a copy of the neighbor indices in insertion order.
func (n *Node) Neighbors() []int {
	return slices.Clone(n.neighbors)
}

// Degree returns the number of neighbors.
func (n *Node) Degree() int { return len(n.neighbors) }

// HasNeighbor reports whether idx is in the neighbor set.
func (n *Node) HasNeighbor(idx int) bool {
	return slices.Contains(n.neighbors, idx)
}

// addNeighbor inserts idx unless it is the node itself or already present.
func (n *Node) addNeighbor(idx int) bool {
	if idx == n.index || n.HasNeighbor(idx) {
		return false
	}
	n.neighbors = append(n.neighbors, idx)
	return true
}

func (n *Node) removeNeighbor(idx int) bool {
	i := slices.Index(n.neighbors, idx)
	if i < 0 {
		return false
	}
	n.neighbors = slices.Delete(n.neighbors, i, i+1)
	return true
}

func (n *Node) reset(initialPower float64) {
	n.Power = initialPower
	n.AttemptedPower = 0
	n.Covered = false
	n.neighbors = n.neighbors[:0]
}
