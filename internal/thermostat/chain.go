package thermostat

import "math"

// Chain holds the extended-Lagrangian variables of one Nose-Hoover
// chain. The state persists across steps and is always propagated in
// double precision regardless of the configured particle precision.
//
// EtaDot has one extra trailing element (always zero) so the deepest
// chain link sees a resting neighbor.
type Chain struct {
	Eta       []float64
	EtaDot    []float64
	EtaDotDot []float64
	EtaMass   []float64
}

// NewChain builds a chain of the given depth for a group with the given
// degrees of freedom. The head mass is DOF·kbT/ω², deeper links carry
// kbT/ω² each.
func NewChain(depth int, dof, kbT, frequency float64) *Chain {
	c := &Chain{
		Eta:       make([]float64, depth),
		EtaDot:    make([]float64, depth+1),
		EtaDotDot: make([]float64, depth),
		EtaMass:   make([]float64, depth),
	}
	linkMass := kbT / (frequency * frequency)
	c.EtaMass[0] = dof * linkMass
	for ich := 1; ich < depth; ich++ {
		c.EtaMass[ich] = linkMass
		c.EtaDotDot[ich] = (c.EtaMass[ich-1]*c.EtaDot[ich-1]*c.EtaDot[ich-1] - kbT) / c.EtaMass[ich]
	}
	return c
}

func (c *Chain) depth() int { return len(c.Eta) }

// Propagate advances the chain through loops sub-steps of the Trotter
// factorized update and returns the accumulated velocity rescale
// factor. ke2 is twice the group kinetic energy, ke2Target its target
// DOF·kbT.
//
// The mid-loop feedback recomputes the head acceleration from the
// already-rescaled kinetic energy (factor²·ke2); this coupling is part
// of the documented scheme and must not be simplified away.
//
// A zero head mass means a zero-DOF group: the chain is left untouched
// and the factor is 1.
func (c *Chain) Propagate(ke2, ke2Target, kbT, stepSize float64, loops int) float64 {
	factor := 1.0
	if c.EtaMass[0] == 0 {
		return factor
	}

	depth := c.depth()
	dt2 := stepSize / float64(loops) / 2
	dt4 := dt2 / 2
	dt8 := dt4 / 2

	c.EtaDotDot[0] = (ke2 - ke2Target) / c.EtaMass[0]
	for loop := 0; loop < loops; loop++ {
		for ich := depth - 1; ich >= 0; ich-- {
			expfac := math.Exp(-dt8 * c.EtaDot[ich+1])
			c.EtaDot[ich] *= expfac
			c.EtaDot[ich] += c.EtaDotDot[ich] * dt4
			c.EtaDot[ich] *= expfac
		}
		factor *= math.Exp(-dt2 * c.EtaDot[0])

		for ich := 0; ich < depth; ich++ {
			c.Eta[ich] += dt2 * c.EtaDot[ich]
		}

		c.EtaDotDot[0] = (ke2*factor*factor - ke2Target) / c.EtaMass[0]
		expfac := math.Exp(-dt8 * c.EtaDot[1])
		c.EtaDot[0] *= expfac
		c.EtaDot[0] += c.EtaDotDot[0] * dt4
		c.EtaDot[0] *= expfac
		for ich := 1; ich < depth; ich++ {
			expfac = math.Exp(-dt8 * c.EtaDot[ich+1])
			c.EtaDot[ich] *= expfac
			c.EtaDotDot[ich] = (c.EtaMass[ich-1]*c.EtaDot[ich-1]*c.EtaDot[ich-1] - kbT) / c.EtaMass[ich]
			c.EtaDot[ich] += c.EtaDotDot[ich] * dt4
			c.EtaDot[ich] *= expfac
		}
	}
	return factor
}
