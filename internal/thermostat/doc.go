// Package thermostat implements the multi-group Nose-Hoover chain
// thermostat: degree-of-freedom accounting per temperature group,
// velocity decomposition into molecular center-of-mass and internal
// components, per-group kinetic-energy reduction and the Trotter
// factorized chain propagator that yields the velocity rescale factor.
package thermostat
