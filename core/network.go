package core

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/cbtc-topology/model"
)

// Network owns the fixed node population of one run together with its
// configuration. Nodes keep the order of the specs they were built
// from; every pass walks them in that order.
//
// A Network is not safe for concurrent use. Passes take it by pointer
// and mutate it in place.
type Network struct {
	cfg   Config
	nodes []Node
}

// NewNetwork validates cfg and the node specs and builds a Network with
// every node at the initial power and no neighbors.
func NewNetwork(specs []model.NodeSpec, cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, ErrEmptyNetwork
	}

	seen := make(map[int]struct{}, len(specs))
	nodes := make([]Node, len(specs))
	for i, s := range specs {
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNodeID, s.ID)
		}
		seen[s.ID] = struct{}{}
		if !isFinite(s.X) || !isFinite(s.Y) {
			return nil, fmt.Errorf("%w: node %d at (%v, %v)", ErrInvalidPosition, s.ID, s.X, s.Y)
		}
		nodes[i] = Node{
			ID:       s.ID,
			Position: Vec2{X: s.X, Y: s.Y},
			Power:    cfg.InitialPower,
			index:    i,
		}
	}
	return &Network{cfg: cfg, nodes: nodes}, nil
}

// Config returns the run configuration.
func (net *Network) Config() Config { return net.cfg }

// Len returns the number of nodes.
func (net *Network) Len() int { return len(net.nodes) }

// Node returns the node at idx. The pointer stays valid for the life of
// the Network.
func (net *Network) Node(idx int) (*Node, error) {
	if idx < 0 || idx >= len(net.nodes) {
		return nil, fmt.Errorf("%w: %d (have %d nodes)", ErrNodeIndex, idx, len(net.nodes))
	}
	return &net.nodes[idx], nil
}

// Reset puts every node back to the initial power with no neighbors.
func (net *Network) Reset() {
	for i := range net.nodes {
		net.nodes[i].reset(net.cfg.InitialPower)
	}
}

// node is the unchecked accessor used by the passes; callers have
// already validated idx.
func (net *Network) node(idx int) *Node { return &net.nodes[idx] }

func (net *Network) distance(a, b int) float64 {
	return Distance(net.nodes[a].Position, net.nodes[b].Position)
}

func (net *Network) checkIndex(idx int) {
	if idx < 0 || idx >= len(net.nodes) {
		panic(fmt.Sprintf("core: %v: %d (have %d nodes)", ErrNodeIndex, idx, len(net.nodes)))
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
