package forcefield

import "github.com/florianjoerg/vvmd/internal/md"

// Null evaluates to zero force everywhere. Used for free-streaming
// tests and thermostat-only runs.
type Null struct {
	forces []md.Vec3
}

func NewNull(n int) *Null {
	return &Null{forces: make([]md.Vec3, n)}
}

func (nf *Null) Evaluate(pos []md.Vec3) []md.Vec3 {
	return nf.forces
}

func (nf *Null) Energy(pos []md.Vec3) float64 { return 0 }
