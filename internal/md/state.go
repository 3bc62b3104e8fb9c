package md

// State holds the mutable per-particle phase-space variables. Positions
// and velocities are updated in place by the integrator each half-step.
type State struct {
	Pos []Vec3
	Vel []Vec3
}

// NewState allocates a zeroed state for n particles.
func NewState(n int) *State {
	return &State{
		Pos: make([]Vec3, n),
		Vel: make([]Vec3, n),
	}
}

func (s *State) NumParticles() int { return len(s.Pos) }

func (s *State) Clone() *State {
	c := NewState(s.NumParticles())
	copy(c.Pos, s.Pos)
	copy(c.Vel, s.Vel)
	return c
}

// IsValid reports whether every coordinate is finite.
func (s *State) IsValid() bool {
	for i := range s.Pos {
		if !s.Pos[i].IsValid() || !s.Vel[i].IsValid() {
			return false
		}
	}
	return true
}
