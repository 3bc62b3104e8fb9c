package modifiers

import (
	"math"

	"github.com/florianjoerg/vvmd/internal/md"
)

// Langevin adds friction and random forces for the Langevin-
// thermostatted particle set. Unpaired particles get a single
// friction/noise pair; Drude pairs are thermostatted in center-of-mass
// and relative coordinates with the real-atom and Drude parameters
// respectively, then mapped back to per-particle forces.
type Langevin struct {
	topo   *md.Topology
	normal []int
	pairs  []md.DrudePair

	friction         float64 // 1/ps
	drudeFriction    float64 // 1/ps
	temperature      float64 // K
	drudeTemperature float64 // K

	rng md.GaussianSource
}

func NewLangevin(topo *md.Topology, friction, drudeFriction, temperature, drudeTemperature float64, rng md.GaussianSource) *Langevin {
	l := &Langevin{
		topo:             topo,
		friction:         friction,
		drudeFriction:    drudeFriction,
		temperature:      temperature,
		drudeTemperature: drudeTemperature,
		rng:              rng,
	}

	inPair := make(map[int]bool)
	for _, pair := range topo.DrudePairs {
		if topo.IsLangevin(pair.Core) {
			l.pairs = append(l.pairs, pair)
			inPair[pair.Core] = true
			inPair[pair.Shell] = true
		}
	}
	for _, i := range topo.Langevin {
		if !inPair[i] {
			l.normal = append(l.normal, i)
		}
	}
	return l
}

// Apply accumulates -γ·m·v plus the matching fluctuation force into
// extra. Velocities are the half-step velocities; dt is the outer step
// size. Each particle and pair consumes a fixed slice of the Gaussian
// stream, so the draw layout is deterministic per call.
func (l *Langevin) Apply(s *md.State, extra []md.Vec3, dt float64) {
	drag := l.friction
	random := math.Sqrt(2 * md.Boltz * l.temperature * l.friction / dt)
	dragDrude := l.drudeFriction
	randomDrude := math.Sqrt(2 * md.Boltz * l.drudeTemperature * l.drudeFriction / dt)

	draws := l.rng.Draw(3*len(l.normal) + 6*len(l.pairs))

	for k, i := range l.normal {
		m := l.topo.Mass(i)
		if m == 0 {
			continue
		}
		g := md.Vec3{X: draws[3*k], Y: draws[3*k+1], Z: draws[3*k+2]}
		f := s.Vel[i].Scale(-drag * m).Add(g.Scale(random * math.Sqrt(m)))
		extra[i] = extra[i].Add(f)
	}

	base := 3 * len(l.normal)
	for k, pair := range l.pairs {
		m1 := l.topo.Mass(pair.Core)
		m2 := l.topo.Mass(pair.Shell)
		total := m1 + m2
		reduced := m1 * m2 / total
		frac1 := m1 / total
		frac2 := m2 / total

		cmVel := s.Vel[pair.Core].Scale(frac1).Add(s.Vel[pair.Shell].Scale(frac2))
		relVel := s.Vel[pair.Shell].Sub(s.Vel[pair.Core])

		o := base + 6*k
		gCM := md.Vec3{X: draws[o], Y: draws[o+1], Z: draws[o+2]}
		gRel := md.Vec3{X: draws[o+3], Y: draws[o+4], Z: draws[o+5]}

		fCM := cmVel.Scale(-drag * total).Add(gCM.Scale(random * math.Sqrt(total)))
		fRel := relVel.Scale(-dragDrude * reduced).Add(gRel.Scale(randomDrude * math.Sqrt(reduced)))

		extra[pair.Core] = extra[pair.Core].Add(fCM.Scale(frac1)).Sub(fRel)
		extra[pair.Shell] = extra[pair.Shell].Add(fCM.Scale(frac2)).Add(fRel)
	}
}
