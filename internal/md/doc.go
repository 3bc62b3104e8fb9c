// Package md provides core primitives for molecular dynamics integration.
//
// The package defines the fundamental value types and collaborator
// contracts shared by the integrator core:
//
//   - [Vec3]: 3-vector used for positions, velocities and forces
//   - [State]: mutable per-particle position/velocity store
//   - [Topology]: immutable particle/residue/constraint description
//   - [ForceEvaluator]: external force-field collaborator
//   - [ConstraintSolver]: external position/velocity constraint collaborator
//   - [GaussianSource]: seeded stream of standard normal draws
//
// # Units
//
// All quantities use MD units: nanometers, picoseconds, atomic mass
// units and kelvin. Energies are kJ/mol, so the Boltzmann constant
// [Boltz] carries units of kJ/(mol·K).
//
// # Thread Safety
//
// State and Topology are NOT thread-safe. A Topology is immutable once
// handed to an integrator; a State is owned by exactly one integrator
// for the duration of a run.
package md
