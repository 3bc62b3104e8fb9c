package modifiers

import "github.com/florianjoerg/vvmd/internal/md"

// ElectricField adds a constant external force q·E along z to every
// electrolyte-tagged particle. The field is given in kJ/(nm·e); the
// Avogadro factor converts to the per-mole force unit of the force
// buffer.
type ElectricField struct {
	topo  *md.Topology
	field float64
}

func NewElectricField(topo *md.Topology, field float64) *ElectricField {
	return &ElectricField{topo: topo, field: field}
}

func (e *ElectricField) Apply(extra []md.Vec3) {
	scale := e.field * md.Avogadro
	for _, i := range e.topo.Electrolyte {
		extra[i].Z += e.topo.Charges[i] * scale
	}
}
