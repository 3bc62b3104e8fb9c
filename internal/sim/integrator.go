// Package sim sequences force evaluation, thermostatting, half-step
// updates and the auxiliary force modifiers into complete
// velocity-Verlet time steps.
package sim

import (
	"fmt"

	"github.com/florianjoerg/vvmd/internal/config"
	"github.com/florianjoerg/vvmd/internal/integrators"
	"github.com/florianjoerg/vvmd/internal/md"
	"github.com/florianjoerg/vvmd/internal/modifiers"
	"github.com/florianjoerg/vvmd/internal/thermostat"
)

// Integrator drives the simulation. The per-step sequence is a strict
// total order: bias removal, kinetic-energy reduction, chain
// propagation, velocity scaling, bias restoration, first half-step,
// force recomputation, extra-force reset, auxiliary forces, second
// half-step, and an optional second thermostat pass. Reordering any of
// it breaks the thermostat coupling.
type Integrator struct {
	cfg  *config.Config
	prec md.Precision

	topo   *md.Topology
	state  *md.State
	forceE md.ForceEvaluator
	solver md.ConstraintSolver
	rng    md.GaussianSource

	verlet   *integrators.VelocityVerlet
	nose     *thermostat.NoseHoover
	langevin *modifiers.Langevin
	efield   *modifiers.ElectricField
	perturb  *modifiers.PeriodicPerturbation
	image    *modifiers.ImageCharge

	forces      []md.Vec3
	extra       []md.Vec3
	forcesValid bool

	observers []md.Observer
	stepCount int
	time      float64

	bound bool
}

// New creates an unbound integrator for the given configuration.
func New(cfg *config.Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prec, err := md.ParsePrecision(cfg.Precision)
	if err != nil {
		return nil, err
	}
	return &Integrator{cfg: cfg, prec: prec}, nil
}

// Initialize binds the integrator to a system. Configuration errors
// abort binding and leave the integrator unbound. The state store is
// owned by the caller but must only be mutated through the integrator
// while bound.
func (in *Integrator) Initialize(topo *md.Topology, state *md.State, force md.ForceEvaluator, solver md.ConstraintSolver) error {
	if in.bound {
		return md.ErrAlreadyBound
	}
	if err := topo.Finalize(); err != nil {
		return err
	}
	if state.NumParticles() != topo.NumParticles() {
		return fmt.Errorf("sim: state has %d particles, topology %d", state.NumParticles(), topo.NumParticles())
	}
	if in.cfg.UseCOMTempGroup && len(topo.DrudePairs) == 0 {
		return md.ErrCOMGroupWithoutDrude
	}
	if len(topo.Langevin) > 0 && in.cfg.CosAcceleration != 0 {
		return md.ErrLangevinWithPerturbation
	}
	if solver == nil {
		solver = md.NoConstraints{}
	}

	part, err := thermostat.NewPartition(topo)
	if err != nil {
		return err
	}

	in.topo = topo
	in.state = state
	in.forceE = force
	in.solver = solver
	in.rng = md.NewGaussianStream(in.cfg.Seed)

	in.verlet = integrators.NewVelocityVerlet(topo, solver,
		in.cfg.ConstraintTolerance, in.cfg.MaxDrudeDistance, in.cfg.DrudeTemperature)

	if len(part.Particles) > 0 {
		in.nose = thermostat.NewNoseHoover(topo, part, thermostat.Options{
			Temperature:      in.cfg.Temperature,
			Frequency:        in.cfg.Frequency,
			DrudeTemperature: in.cfg.DrudeTemperature,
			DrudeFrequency:   in.cfg.DrudeFrequency,
			ChainDepth:       in.cfg.NHChains,
			LoopsPerStep:     in.cfg.NHLoops,
			UseCOMGroup:      in.cfg.UseCOMTempGroup,
			Precision:        in.prec,
		})
	}
	if len(topo.Langevin) > 0 {
		in.langevin = modifiers.NewLangevin(topo,
			in.cfg.Friction, in.cfg.DrudeFriction,
			in.cfg.Temperature, in.cfg.DrudeTemperature, in.rng)
	}
	if len(topo.Electrolyte) > 0 {
		in.efield = modifiers.NewElectricField(topo, in.cfg.ElectricField)
	}
	if in.cfg.CosAcceleration != 0 {
		in.perturb = modifiers.NewPeriodicPerturbation(topo, in.cfg.CosAcceleration, in.prec)
	}
	if len(topo.ImagePairs) > 0 {
		in.image = modifiers.NewImageCharge(topo.ImagePairs, in.cfg.MirrorLocation)
	}

	n := topo.NumParticles()
	in.forces = make([]md.Vec3, n)
	in.extra = make([]md.Vec3, n)
	in.forcesValid = false
	in.bound = true
	return nil
}

func (in *Integrator) AddObserver(o md.Observer) { in.observers = append(in.observers, o) }

// Time returns the simulated time in ps.
func (in *Integrator) Time() float64 { return in.time }

// StepCount returns the number of completed steps.
func (in *Integrator) StepCount() int { return in.stepCount }

// State returns the bound particle state store.
func (in *Integrator) State() *md.State { return in.state }

// Step advances the simulation by the given number of time steps.
func (in *Integrator) Step(steps int) error {
	if !in.bound {
		return md.ErrNotBound
	}
	dt := in.cfg.StepSize
	for i := 0; i < steps; i++ {
		if !in.forcesValid {
			copy(in.forces, in.forceE.Evaluate(in.state.Pos))
			in.forcesValid = true
		}

		// First thermostat pass on full-step velocities.
		if in.nose != nil {
			in.thermostatPass(dt)
		}

		if err := in.verlet.FirstHalf(in.state, in.forces, in.extra, dt); err != nil {
			return fmt.Errorf("sim: step %d first half: %w", in.stepCount, err)
		}

		if in.image != nil {
			in.image.UpdatePositions(in.state)
		}

		// Positions changed; the cached force buffer is stale.
		in.forcesValid = false
		copy(in.forces, in.forceE.Evaluate(in.state.Pos))
		in.forcesValid = true

		// Langevin and field forces act on half-step velocities and
		// full-step positions, through a fresh extra-force buffer.
		if in.langevin != nil || in.efield != nil || in.perturb != nil {
			in.resetExtraForce()
		}
		if in.langevin != nil {
			in.langevin.Apply(in.state, in.extra, dt)
		}
		if in.efield != nil {
			in.efield.Apply(in.extra)
		}
		if in.perturb != nil {
			in.perturb.ApplyCosForce(in.state, in.extra)
		}

		if err := in.verlet.SecondHalf(in.state, in.forces, in.extra, dt); err != nil {
			return fmt.Errorf("sim: step %d second half: %w", in.stepCount, err)
		}

		// Second thermostat pass on the completed velocities.
		if in.nose != nil {
			in.thermostatPass(dt)
		}

		in.time += dt
		in.stepCount++
		for _, o := range in.observers {
			o.OnStep(in.state, in.time)
		}
	}
	return nil
}

// thermostatPass runs one remove-bias / reduce / scale / restore-bias
// cycle. The streaming profile must be out of the velocities before
// the kinetic energies are reduced.
func (in *Integrator) thermostatPass(dt float64) {
	if in.perturb != nil {
		in.perturb.CalcVelocityBias(in.state)
		in.perturb.RemoveBias(in.state)
	}
	in.nose.ComputeGroupKE(in.state)
	in.nose.ScaleVelocities(in.state, dt)
	if in.perturb != nil {
		in.perturb.RestoreBias(in.state)
	}
}

func (in *Integrator) resetExtraForce() {
	for i := range in.extra {
		in.extra[i] = md.Vec3{}
	}
}

// ComputeKineticEnergy returns the total kinetic energy. The force
// cache is invalidated because energy queries may share buffers with
// the force evaluator.
func (in *Integrator) ComputeKineticEnergy() float64 {
	in.forcesValid = false
	ke := 0.0
	for i := range in.state.Vel {
		ke += 0.5 * in.topo.Mass(i) * in.state.Vel[i].LengthSq()
	}
	return ke
}

// GroupTemperatures reports the instantaneous temperatures of the
// three Nose-Hoover groups; zeros when no NH thermostat is active.
func (in *Integrator) GroupTemperatures() [thermostat.NumGroups]float64 {
	if in.nose == nil {
		return [thermostat.NumGroups]float64{}
	}
	return in.nose.Temperatures()
}

// Viscosity returns the fitted bias amplitude and inverse viscosity
// from the periodic perturbation. Zeros when the perturbation is off.
func (in *Integrator) Viscosity() (vMax, invVis float64) {
	if in.perturb == nil {
		return 0, 0
	}
	return in.perturb.Viscosity()
}
