// Package modifiers implements the auxiliary force and velocity
// contributions applied around the velocity-Verlet half-steps: the
// Drude dual Langevin thermostat, the static electric field on
// electrolyte particles, the periodic cosine perturbation used for
// viscosity measurement, and the image-charge mirror update.
//
// All force modifiers write additively into the orchestrator's
// extra-force accumulator and never touch the force-field buffer.
package modifiers
