package core

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyNetwork(t *testing.T, count int, seed uint64, cfg Config) *Network {
	t.Helper()
	specs, err := RandomPlacement(count, 60, seed)
	if err != nil {
		t.Fatalf("RandomPlacement: %v", err)
	}
	net := mustNetwork(t, specs, cfg)
	if _, err := NewTopologyEngine().Run(context.Background(), net); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return net
}

// TestTopologyInvariants checks the guarantees every run must keep for
// arbitrary random layouts.
func TestTopologyInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)

	properties.Property("neighbor sets hold no self links or duplicates", prop.ForAll(
		func(count int, seed uint64, shrink, asym bool) bool {
			cfg := DefaultConfig()
			cfg.ShrinkBack, cfg.AsymmetricRemoval = shrink, asym
			net := propertyNetwork(t, count, seed, cfg)
			for idx := range net.nodes {
				seen := make(map[int]bool)
				for _, j := range net.nodes[idx].neighbors {
					if j == idx || seen[j] {
						return false
					}
					seen[j] = true
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("power never exceeds the ceiling", prop.ForAll(
		func(count int, seed uint64, shrink bool) bool {
			cfg := DefaultConfig()
			cfg.ShrinkBack = shrink
			net := propertyNetwork(t, count, seed, cfg)
			for _, n := range net.nodes {
				if n.Power > cfg.MaxPower || n.AttemptedPower > cfg.MaxPower {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
		gen.Bool(),
	))

	properties.Property("covered nodes keep coverage through shrink-back", prop.ForAll(
		func(count int, seed uint64) bool {
			cfg := DefaultConfig()
			cfg.ShrinkBack = true
			net := propertyNetwork(t, count, seed, cfg)
			for idx, n := range net.nodes {
				if n.Covered && !Covered(net, idx, cfg.ConeAngle) {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 40),
		gen.UInt64(),
	))

	properties.Property("uncovered nodes know everything within the last attempt", prop.ForAll(
		func(count int, seed uint64) bool {
			net := propertyNetwork(t, count, seed, DefaultConfig())
			for idx, n := range net.nodes {
				if n.Covered {
					continue
				}
				for j := range net.nodes {
					if j != idx && net.distance(idx, j) <= n.AttemptedPower && !n.HasNeighbor(j) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
	))

	properties.Property("shrink-back leaves pruned nodes with at least three neighbors", prop.ForAll(
		func(count int, seed uint64) bool {
			plainCfg := DefaultConfig()
			shrinkCfg := plainCfg
			shrinkCfg.ShrinkBack = true
			plain := propertyNetwork(t, count, seed, plainCfg)
			shrunk := propertyNetwork(t, count, seed, shrinkCfg)
			for idx := range shrunk.nodes {
				before, after := plain.nodes[idx].Degree(), shrunk.nodes[idx].Degree()
				if after > before {
					return false
				}
				if after < before && after < MinShrinkBackNeighbors {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 40),
		gen.UInt64(),
	))

	properties.Property("asymmetric removal leaves links mutual or a closest-node fallback", prop.ForAll(
		func(count int, seed uint64, shrink bool) bool {
			cfg := DefaultConfig()
			cfg.ShrinkBack = shrink
			cfg.AsymmetricRemoval = true
			net := propertyNetwork(t, count, seed, cfg)
			for idx := range net.nodes {
				n := &net.nodes[idx]
				if count > 1 && n.Degree() == 0 {
					return false
				}
				for _, j := range n.neighbors {
					if net.nodes[j].HasNeighbor(idx) {
						continue
					}
					if n.Degree() != 1 || net.distance(idx, j) != closestDistance(net, idx) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func closestDistance(net *Network, idx int) float64 {
	best := math.Inf(1)
	for j := range net.nodes {
		if j != idx {
			best = min(best, net.distance(idx, j))
		}
	}
	return best
}
