package md

import (
	"math"
	"math/rand"
)

// GaussianStream is the default GaussianSource, backed by math/rand.
// The draw sequence is fully determined by the seed.
type GaussianStream struct {
	rng *rand.Rand
	buf []float64
}

func NewGaussianStream(seed int64) *GaussianStream {
	return &GaussianStream{rng: rand.New(rand.NewSource(seed))}
}

func (g *GaussianStream) Draw(n int) []float64 {
	if cap(g.buf) < n {
		g.buf = make([]float64, n)
	}
	out := g.buf[:n]
	for i := range out {
		out[i] = g.rng.NormFloat64()
	}
	return out
}

// MaxwellVelocities assigns thermal velocities at the given temperature.
// Drude shells start with their core's velocity so pairs begin with no
// internal motion; massless particles stay at rest.
func MaxwellVelocities(topo *Topology, s *State, temp float64, rng GaussianSource) {
	n := topo.NumParticles()
	draws := rng.Draw(3 * n)
	for i := 0; i < n; i++ {
		m := topo.Mass(i)
		if m == 0 || topo.IsDrudeShell(i) || topo.IsImage(i) {
			continue
		}
		scale := 0.0
		if temp > 0 {
			scale = math.Sqrt(Boltz * temp / m)
		}
		s.Vel[i] = Vec3{
			X: scale * draws[3*i],
			Y: scale * draws[3*i+1],
			Z: scale * draws[3*i+2],
		}
	}
	for _, pair := range topo.DrudePairs {
		s.Vel[pair.Shell] = s.Vel[pair.Core]
	}
	for _, pair := range topo.ImagePairs {
		s.Vel[pair.Image] = Vec3{}
	}
}
