package md

// ForceEvaluator computes force-field forces for a set of positions.
// Evaluate must be idempotent; the integrator minimizes calls through
// its force-validity flag. The returned slice is owned by the evaluator
// and stays valid until the next Evaluate call.
type ForceEvaluator interface {
	Evaluate(pos []Vec3) []Vec3
}

// EnergyEvaluator is optionally implemented by force evaluators that
// can report potential energy, used by diagnostics only.
type EnergyEvaluator interface {
	Energy(pos []Vec3) float64
}

// ConstraintSolver applies position and velocity constraints in place.
// Implementations converge within tol or fail with a hard error.
type ConstraintSolver interface {
	// ApplyPositions corrects the proposed position deltas so that all
	// constrained distances are satisfied after pos[i] += delta[i].
	ApplyPositions(pos, delta []Vec3, invMass []float64, tol float64) error
	// ApplyVelocities projects constraint-violating components out of
	// the velocities.
	ApplyVelocities(pos, vel []Vec3, invMass []float64, tol float64) error
}

// NoConstraints is the solver used when the system has no constrained
// distances.
type NoConstraints struct{}

func (NoConstraints) ApplyPositions(pos, delta []Vec3, invMass []float64, tol float64) error {
	return nil
}

func (NoConstraints) ApplyVelocities(pos, vel []Vec3, invMass []float64, tol float64) error {
	return nil
}

// GaussianSource yields standard normal draws. Deterministic for a
// given seed; each caller consumes a contiguous slice of the stream.
type GaussianSource interface {
	Draw(n int) []float64
}

// Observer is notified after every completed integration step.
type Observer interface {
	OnStep(s *State, t float64)
}

// Metric is an Observer that reduces its observations to one number.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}
