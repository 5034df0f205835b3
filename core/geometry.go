package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Vec2 is a planar position. It is the gonum r2 vector so positions can
// be handed straight to gonum's spatial helpers.
type Vec2 = r2.Vec

// Distance returns the straight-line distance between two positions.
func Distance(a, b Vec2) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Bearing returns the angle of the vector to - from in radians, in the
// range (-π, π]. For coincident points it returns 0 rather than failing;
// callers never ask for the bearing of a node to itself.
func Bearing(from, to Vec2) float64 {
	d := r2.Sub(to, from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return math.Atan2(d.Y, d.X)
}
