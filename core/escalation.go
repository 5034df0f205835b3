package core

// EscalationResult describes how one node's power escalation ended.
type EscalationResult struct {
	Covered        bool
	Attempts       int
	AttemptedPower float64
	Power          float64
}

// Escalate grows node idx's transmission radius from the initial power
// by the configured growth factor, discovering neighbors at each step,
// until cone coverage holds or the next step would exceed the ceiling.
//
// Neighbors found by failed attempts are kept. When coverage holds, the
// node's Power becomes the radius that achieved it. When the ceiling is
// reached first, Power stays at the initial value, the neighbor set is
// whatever the largest attempt found, and Covered is false; this is a
// soft failure, not an error.
//
// Escalate panics if idx is out of range.
func Escalate(net *Network, idx int) EscalationResult {
	net.checkIndex(idx)
	n := net.node(idx)
	cfg := net.cfg

	var res EscalationResult
	for power := cfg.InitialPower; power <= cfg.MaxPower; power *= cfg.GrowthFactor {
		res.Attempts++
		n.AttemptedPower = power
		Discover(net, idx, power)
		if Covered(net, idx, cfg.ConeAngle) {
			n.Power = power
			n.Covered = true
			break
		}
	}

	res.Covered = n.Covered
	res.AttemptedPower = n.AttemptedPower
	res.Power = n.Power
	return res
}
