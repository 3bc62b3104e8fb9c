// Package metrics provides step observers that reduce a run to a few
// diagnostic numbers.
package metrics

import "github.com/florianjoerg/vvmd/internal/md"

// Temperature tracks the mean instantaneous temperature over a run,
// computed from total kinetic energy and a fixed DOF count.
type Temperature struct {
	name    string
	topo    *md.Topology
	dof     float64
	samples int
	total   float64
	last    float64
}

func NewTemperature(topo *md.Topology) *Temperature {
	dof := 0.0
	for i := 0; i < topo.NumParticles(); i++ {
		if topo.Mass(i) > 0 && !topo.IsImage(i) {
			dof += 3
		}
	}
	return &Temperature{name: "temperature", topo: topo, dof: dof}
}

func (m *Temperature) Name() string { return m.name }

func (m *Temperature) OnStep(s *md.State, t float64) {
	if m.dof == 0 {
		return
	}
	ke2 := 0.0
	for i := range s.Vel {
		ke2 += m.topo.Mass(i) * s.Vel[i].LengthSq()
	}
	m.last = ke2 / m.dof / md.Boltz
	m.total += m.last
	m.samples++
}

// Last returns the temperature at the most recent step.
func (m *Temperature) Last() float64 { return m.last }

func (m *Temperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Temperature) Reset() {
	m.samples = 0
	m.total = 0
	m.last = 0
}
