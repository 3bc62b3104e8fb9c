package metrics

import (
	"math"

	"github.com/florianjoerg/vvmd/internal/md"
)

// EnergyDrift tracks the maximum relative drift of total energy
// (kinetic + potential) over a run. Meaningful only for conservative,
// non-thermostatted systems.
type EnergyDrift struct {
	name    string
	topo    *md.Topology
	energy  md.EnergyEvaluator
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(topo *md.Topology, energy md.EnergyEvaluator) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", topo: topo, energy: energy}
}

func (m *EnergyDrift) Name() string { return m.name }

func (m *EnergyDrift) OnStep(s *md.State, t float64) {
	total := m.energy.Energy(s.Pos)
	for i := range s.Vel {
		total += 0.5 * m.topo.Mass(i) * s.Vel[i].LengthSq()
	}

	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(total-m.initial) / math.Abs(m.initial)
		m.max = math.Max(m.max, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.max }

func (m *EnergyDrift) Reset() {
	m.initial = 0
	m.max = 0
	m.samples = 0
}
