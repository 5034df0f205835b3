package core

import (
	"slices"
)

// NodeState is the post-run state of one node, with neighbors given by
// node ID in ascending order.
type NodeState struct {
	ID             int     `json:"id" yaml:"id"`
	X              float64 `json:"x" yaml:"x"`
	Y              float64 `json:"y" yaml:"y"`
	Power          float64 `json:"power" yaml:"power"`
	AttemptedPower float64 `json:"attempted_power" yaml:"attempted_power"`
	Covered        bool    `json:"covered" yaml:"covered"`
	Neighbors      []int   `json:"neighbors" yaml:"neighbors"`
}

// Edge is an undirected pair of node IDs with A < B.
type Edge struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// GraphSummary aggregates the quantities usually compared between
// topology-control variants.
type GraphSummary struct {
	Nodes           int     `json:"nodes" yaml:"nodes"`
	Edges           int     `json:"edges" yaml:"edges"`
	DirectedLinks   int     `json:"directed_links" yaml:"directed_links"`
	AsymmetricLinks int     `json:"asymmetric_links" yaml:"asymmetric_links"`
	AverageDegree   float64 `json:"average_degree" yaml:"average_degree"`
	AveragePower    float64 `json:"average_power" yaml:"average_power"`
	MaxPower        float64 `json:"max_power" yaml:"max_power"`
	UncoveredNodes  int     `json:"uncovered_nodes" yaml:"uncovered_nodes"`
	Isolated        int     `json:"isolated" yaml:"isolated"`
	Symmetric       bool    `json:"symmetric" yaml:"symmetric"`
}

// NeighborGraph is an immutable snapshot of a Network after a run,
// ordered like the Network's nodes.
type NeighborGraph struct {
	Nodes []NodeState `json:"nodes" yaml:"nodes"`

	byID map[int]int
}

// Snapshot copies the current node states of net into a NeighborGraph.
func Snapshot(net *Network) *NeighborGraph {
	g := &NeighborGraph{
		Nodes: make([]NodeState, len(net.nodes)),
		byID:  make(map[int]int, len(net.nodes)),
	}
	for i := range net.nodes {
		n := &net.nodes[i]
		ids := make([]int, 0, len(n.neighbors))
		for _, j := range n.neighbors {
			ids = append(ids, net.nodes[j].ID)
		}
		slices.Sort(ids)
		g.Nodes[i] = NodeState{
			ID:             n.ID,
			X:              n.Position.X,
			Y:              n.Position.Y,
			Power:          n.Power,
			AttemptedPower: n.AttemptedPower,
			Covered:        n.Covered,
			Neighbors:      ids,
		}
		g.byID[n.ID] = i
	}
	return g
}

// Node returns the state of the node with the given ID.
func (g *NeighborGraph) Node(id int) (NodeState, bool) {
	g.ensureIndex()
	i, ok := g.byID[id]
	if !ok {
		return NodeState{}, false
	}
	return g.Nodes[i], true
}

// HasLink reports whether from lists to as a neighbor.
func (g *NeighborGraph) HasLink(from, to int) bool {
	s, ok := g.Node(from)
	if !ok {
		return false
	}
	_, found := slices.BinarySearch(s.Neighbors, to)
	return found
}

// Edges returns every undirected pair linked in at least one direction,
// sorted by (A, B).
func (g *NeighborGraph) Edges() []Edge {
	seen := make(map[Edge]struct{})
	for _, s := range g.Nodes {
		for _, nb := range s.Neighbors {
			e := Edge{A: min(s.ID, nb), B: max(s.ID, nb)}
			seen[e] = struct{}{}
		}
	}
	out := make([]Edge, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y Edge) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return out
}

// AsymmetricLinks returns the directed links from -> to whose reverse
// link is missing, as Edge{A: from, B: to}.
func (g *NeighborGraph) AsymmetricLinks() []Edge {
	var out []Edge
	for _, s := range g.Nodes {
		for _, nb := range s.Neighbors {
			if !g.HasLink(nb, s.ID) {
				out = append(out, Edge{A: s.ID, B: nb})
			}
		}
	}
	return out
}

// IsSymmetric reports whether every link has its reverse.
func (g *NeighborGraph) IsSymmetric() bool {
	return len(g.AsymmetricLinks()) == 0
}

// Summary computes aggregate statistics over the snapshot.
func (g *NeighborGraph) Summary() GraphSummary {
	sum := GraphSummary{Nodes: len(g.Nodes)}
	if len(g.Nodes) == 0 {
		sum.Symmetric = true
		return sum
	}

	var totalPower float64
	for _, s := range g.Nodes {
		sum.DirectedLinks += len(s.Neighbors)
		totalPower += s.Power
		if s.Power > sum.MaxPower {
			sum.MaxPower = s.Power
		}
		if !s.Covered {
			sum.UncoveredNodes++
		}
		if len(s.Neighbors) == 0 {
			sum.Isolated++
		}
	}
	sum.Edges = len(g.Edges())
	sum.AsymmetricLinks = len(g.AsymmetricLinks())
	sum.Symmetric = sum.AsymmetricLinks == 0
	sum.AverageDegree = float64(sum.DirectedLinks) / float64(sum.Nodes)
	sum.AveragePower = totalPower / float64(sum.Nodes)
	return sum
}

// ensureIndex rebuilds the ID lookup for graphs decoded from JSON/YAML.
func (g *NeighborGraph) ensureIndex() {
	if g.byID != nil && len(g.byID) == len(g.Nodes) {
		return
	}
	g.byID = make(map[int]int, len(g.Nodes))
	for i, s := range g.Nodes {
		g.byID[s.ID] = i
	}
}
