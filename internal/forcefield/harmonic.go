// Package forcefield provides small force evaluators used by the CLI
// demo systems and the test suite. Full force-field evaluation is an
// external collaborator; the integrator only consumes the
// md.ForceEvaluator contract.
package forcefield

import "github.com/florianjoerg/vvmd/internal/md"

// Bond is a harmonic spring between two particles.
type Bond struct {
	I, J   int
	K      float64 // kJ/(mol·nm²)
	Length float64 // nm, equilibrium
}

// Harmonic evaluates harmonic bonds plus the isotropic Drude-spring
// attaching each shell to its core at zero equilibrium length.
type Harmonic struct {
	topo *md.Topology

	Bonds  []Bond
	DrudeK float64 // kJ/(mol·nm²) spring constant of core-shell bonds

	forces []md.Vec3
}

func NewHarmonic(topo *md.Topology, bonds []Bond, drudeK float64) *Harmonic {
	return &Harmonic{
		topo:   topo,
		Bonds:  bonds,
		DrudeK: drudeK,
		forces: make([]md.Vec3, topo.NumParticles()),
	}
}

func (h *Harmonic) Evaluate(pos []md.Vec3) []md.Vec3 {
	for i := range h.forces {
		h.forces[i] = md.Vec3{}
	}

	for _, b := range h.Bonds {
		delta := pos[b.J].Sub(pos[b.I])
		r := delta.Length()
		if r == 0 {
			continue
		}
		f := delta.Scale(b.K * (r - b.Length) / r)
		h.forces[b.I] = h.forces[b.I].Add(f)
		h.forces[b.J] = h.forces[b.J].Sub(f)
	}

	for _, pair := range h.topo.DrudePairs {
		delta := pos[pair.Shell].Sub(pos[pair.Core])
		f := delta.Scale(-h.DrudeK)
		h.forces[pair.Shell] = h.forces[pair.Shell].Add(f)
		h.forces[pair.Core] = h.forces[pair.Core].Sub(f)
	}
	return h.forces
}

// Energy reports the potential energy, for drift diagnostics.
func (h *Harmonic) Energy(pos []md.Vec3) float64 {
	e := 0.0
	for _, b := range h.Bonds {
		r := pos[b.J].Sub(pos[b.I]).Length()
		d := r - b.Length
		e += 0.5 * b.K * d * d
	}
	for _, pair := range h.topo.DrudePairs {
		e += 0.5 * h.DrudeK * pos[pair.Shell].Sub(pos[pair.Core]).LengthSq()
	}
	return e
}
