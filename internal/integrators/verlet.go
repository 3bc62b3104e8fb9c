// Package integrators implements the velocity-Verlet half-step updates
// and the Drude hard-wall distance constraint.
package integrators

import (
	"math"

	"github.com/florianjoerg/vvmd/internal/md"
)

// VelocityVerlet advances velocities and positions in two half-steps
// per outer step. The first half kicks velocities by dt/2, drifts
// positions through the external constraint solver and enforces the
// Drude hard wall; the second half kicks velocities again from freshly
// evaluated forces and projects constrained velocity components.
type VelocityVerlet struct {
	topo   *md.Topology
	solver md.ConstraintSolver

	tolerance        float64
	maxDrudeDistance float64
	hardwallScale    float64 // sqrt(kB * T_drude)

	prevStepSize float64
	halfDt       float64
	delta        []md.Vec3
}

func NewVelocityVerlet(topo *md.Topology, solver md.ConstraintSolver, tolerance, maxDrudeDistance, drudeTemperature float64) *VelocityVerlet {
	return &VelocityVerlet{
		topo:             topo,
		solver:           solver,
		tolerance:        tolerance,
		maxDrudeDistance: maxDrudeDistance,
		hardwallScale:    math.Sqrt(md.Boltz * drudeTemperature),
		prevStepSize:     -1,
		delta:            make([]md.Vec3, topo.NumParticles()),
	}
}

func (v *VelocityVerlet) coefficients(dt float64) {
	if dt != v.prevStepSize {
		v.halfDt = 0.5 * dt
		v.prevStepSize = dt
	}
}

// FirstHalf computes v(t+dt/2) from the current forces, drifts
// positions to x(t+dt) through the position-constraint solver and
// bounces over-stretched Drude pairs off the hard wall.
func (v *VelocityVerlet) FirstHalf(s *md.State, forces, extra []md.Vec3, dt float64) error {
	v.coefficients(dt)

	for i := range s.Vel {
		invMass := v.topo.InvMass(i)
		if invMass == 0 {
			v.delta[i] = md.Vec3{}
			continue
		}
		f := forces[i].Add(extra[i])
		s.Vel[i] = s.Vel[i].Add(f.Scale(v.halfDt * invMass))
		v.delta[i] = s.Vel[i].Scale(dt)
	}

	if err := v.solver.ApplyPositions(s.Pos, v.delta, v.topo.InvMasses(), v.tolerance); err != nil {
		return err
	}
	for i := range s.Pos {
		s.Pos[i] = s.Pos[i].Add(v.delta[i])
	}

	if v.maxDrudeDistance > 0 {
		v.applyHardWall(s, dt)
	}
	return nil
}

// SecondHalf computes v(t+dt) from the forces evaluated at x(t+dt) and
// applies the velocity-constraint solver. Positions are untouched.
func (v *VelocityVerlet) SecondHalf(s *md.State, forces, extra []md.Vec3, dt float64) error {
	v.coefficients(dt)

	for i := range s.Vel {
		invMass := v.topo.InvMass(i)
		if invMass == 0 {
			continue
		}
		f := forces[i].Add(extra[i])
		s.Vel[i] = s.Vel[i].Add(f.Scale(v.halfDt * invMass))
	}

	return v.solver.ApplyVelocities(s.Pos, s.Vel, v.topo.InvMasses(), v.tolerance)
}
