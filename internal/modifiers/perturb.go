package modifiers

import (
	"math"

	"github.com/florianjoerg/vvmd/internal/md"
)

// PeriodicPerturbation drives the cosine acceleration profile used for
// non-equilibrium viscosity measurement and maintains the induced
// velocity-bias model so the thermostat never sees the streaming
// component.
type PeriodicPerturbation struct {
	topo         *md.Topology
	acceleration float64 // nm/ps², amplitude A
	invMassTotal float64
	prec         md.Precision

	vMax float64 // fitted bias amplitude, updated by CalcVelocityBias
}

func NewPeriodicPerturbation(topo *md.Topology, acceleration float64, prec md.Precision) *PeriodicPerturbation {
	return &PeriodicPerturbation{
		topo:         topo,
		acceleration: acceleration,
		invMassTotal: 1.0 / topo.TotalMass(),
		prec:         prec,
	}
}

func (p *PeriodicPerturbation) waveNumber() float64 {
	return 2 * math.Pi / p.topo.Box.Z
}

// ApplyCosForce adds m·A·cos(2πz/Lz) along x to every particle.
func (p *PeriodicPerturbation) ApplyCosForce(s *md.State, extra []md.Vec3) {
	k := p.waveNumber()
	for i := range extra {
		extra[i].X += p.topo.Mass(i) * p.acceleration * math.Cos(k*s.Pos[i].Z)
	}
}

// CalcVelocityBias fits the bias amplitude V so that
// v_bias(z) = V·cos(2πz/Lz) minimizes the mass-weighted residual
// kinetic energy: V = (2/M)·Σ m·v_x·cos(2πz/Lz).
func (p *PeriodicPerturbation) CalcVelocityBias(s *md.State) {
	k := p.waveNumber()
	sum := 0.0
	for i := range s.Vel {
		sum += p.prec.Round(2 * p.topo.Mass(i) * s.Vel[i].X * math.Cos(k*s.Pos[i].Z))
	}
	p.vMax = p.prec.RoundSum(sum * p.invMassTotal)
}

// RemoveBias subtracts the fitted streaming profile from every
// velocity. Must precede kinetic-energy accounting and chain
// propagation.
func (p *PeriodicPerturbation) RemoveBias(s *md.State) {
	k := p.waveNumber()
	for i := range s.Vel {
		s.Vel[i].X -= p.vMax * math.Cos(k*s.Pos[i].Z)
	}
}

// RestoreBias adds the fitted profile back after thermostatting.
func (p *PeriodicPerturbation) RestoreBias(s *md.State) {
	k := p.waveNumber()
	for i := range s.Vel {
		s.Vel[i].X += p.vMax * math.Cos(k*s.Pos[i].Z)
	}
}

// VMax returns the most recently fitted bias amplitude.
func (p *PeriodicPerturbation) VMax() float64 { return p.vMax }

// Viscosity derives the inverse shear viscosity from the steady-state
// bias amplitude: 1/η = V·Vol/(M·A)·(2π/Lz)².
func (p *PeriodicPerturbation) Viscosity() (vMax, invVis float64) {
	box := p.topo.Box
	volume := box.X * box.Y * box.Z
	k := p.waveNumber()
	invVis = p.vMax * volume * p.invMassTotal / p.acceleration * k * k
	return p.vMax, invVis
}
