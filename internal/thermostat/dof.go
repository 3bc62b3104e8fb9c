package thermostat

import "github.com/florianjoerg/vvmd/internal/md"

// Group identifies a temperature group. Atomic motion, molecular
// center-of-mass motion and Drude internal motion are thermostatted
// with independent chains and targets.
type Group int

const (
	GroupAtom Group = iota
	GroupCOM
	GroupDrude
	NumGroups
)

func (g Group) String() string {
	switch g {
	case GroupAtom:
		return "atom"
	case GroupCOM:
		return "com"
	case GroupDrude:
		return "drude"
	}
	return "unknown"
}

// Partition is the setup-time split of the Nose-Hoover population:
// which particles and residues the chains act on, and which of those
// particles move as Drude pairs rather than free atoms.
type Partition struct {
	Particles []int          // all NH particles
	Residues  []int          // residues containing NH particles
	Normal    []int          // NH particles outside any Drude pair
	Pairs     []md.DrudePair // Drude pairs whose core is NH
}

// NewPartition classifies particles for the Nose-Hoover thermostat.
// Every particle that is neither Langevin-thermostatted nor an image
// particle is NH. A Langevin particle inside an NH residue is a
// configuration error.
func NewPartition(topo *md.Topology) (*Partition, error) {
	p := &Partition{}

	residueSeen := make(map[int]bool)
	for i := 0; i < topo.NumParticles(); i++ {
		if !topo.IsNoseHoover(i) {
			continue
		}
		p.Particles = append(p.Particles, i)
		resid := topo.ParticleResidue(i)
		if !residueSeen[resid] {
			residueSeen[resid] = true
			p.Residues = append(p.Residues, resid)
		}
	}
	for i := 0; i < topo.NumParticles(); i++ {
		if topo.IsLangevin(i) && residueSeen[topo.ParticleResidue(i)] {
			return nil, md.ErrThermostatOverlap
		}
	}

	inPair := make(map[int]bool)
	for _, pair := range topo.DrudePairs {
		if topo.IsNoseHoover(pair.Core) {
			p.Pairs = append(p.Pairs, pair)
			inPair[pair.Core] = true
			inPair[pair.Shell] = true
		}
	}
	for _, i := range p.Particles {
		if !inPair[i] {
			p.Normal = append(p.Normal, i)
		}
	}
	return p, nil
}

// ComputeDOF runs the per-group degree-of-freedom ledger once at setup.
//
// Each massive NH particle contributes 3 DOFs to the atom group. With
// COM grouping, 3·m/M_res of those are reassigned to the molecular
// group, which then holds 3 per NH residue. Each Drude pair moves 3
// atom DOFs to the Drude group. Length constraints on NH particles and
// a center-of-mass motion remover each cost their group. Groups never
// go negative.
func ComputeDOF(topo *md.Topology, part *Partition, useCOMGroup bool) [NumGroups]float64 {
	var dof [NumGroups]float64

	for _, i := range part.Particles {
		m := topo.Mass(i)
		if m == 0 {
			continue
		}
		dof[GroupAtom] += 3
		if useCOMGroup {
			dof[GroupAtom] -= 3 * m * topo.ResidueInvMass(topo.ParticleResidue(i))
		}
	}

	for range part.Pairs {
		dof[GroupAtom] -= 3
		dof[GroupDrude] += 3
	}

	for _, c := range topo.Constraints {
		if topo.IsNoseHoover(c.I) {
			dof[GroupAtom]--
		}
	}

	if useCOMGroup {
		dof[GroupCOM] = 3 * float64(len(part.Residues))
	}
	if topo.RemovesCMMotion {
		if useCOMGroup {
			dof[GroupCOM] -= 3
		} else {
			dof[GroupAtom] -= 3
		}
	}

	for g := range dof {
		if dof[g] < 0 {
			dof[g] = 0
		}
	}
	return dof
}
