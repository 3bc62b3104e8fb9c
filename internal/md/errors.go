package md

import "errors"

// Configuration errors raised at setup/bind time. They are unrecoverable:
// initialization aborts and the integrator stays unbound.
var (
	// ErrAlreadyBound indicates an integrator bound to another system.
	ErrAlreadyBound = errors.New("md: integrator is already bound to a system")

	// ErrNotBound indicates a step/query on an unbound integrator.
	ErrNotBound = errors.New("md: integrator is not bound to a system")

	// ErrDuplicateDrudePair indicates a particle assigned to more than one Drude pair.
	ErrDuplicateDrudePair = errors.New("md: particle belongs to multiple Drude pairs")

	// ErrCOMGroupWithoutDrude indicates COM temperature grouping on a non-polarizable system.
	ErrCOMGroupWithoutDrude = errors.New("md: COM temperature group requires a polarizable (Drude) system")

	// ErrThermostatOverlap indicates Nose-Hoover and Langevin thermostats on the same residue.
	ErrThermostatOverlap = errors.New("md: Nose-Hoover and Langevin thermostats cannot share a residue")

	// ErrLangevinWithPerturbation indicates mutually exclusive features enabled together.
	ErrLangevinWithPerturbation = errors.New("md: Langevin thermostat and periodic perturbation cannot be combined")

	// ErrParticleClassOverlap indicates a particle tagged both Langevin and image.
	ErrParticleClassOverlap = errors.New("md: particle cannot be both Langevin-thermostatted and an image particle")

	// ErrResidueCoverage indicates particles missing from the residue decomposition.
	ErrResidueCoverage = errors.New("md: every particle must belong to exactly one residue")
)
