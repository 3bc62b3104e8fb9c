package thermostat

import "github.com/florianjoerg/vvmd/internal/md"

// Options collects the thermostat parameters from the configuration
// surface.
type Options struct {
	Temperature      float64 // K, atom and COM groups
	Frequency        float64 // 1/ps coupling frequency, atom and COM groups
	DrudeTemperature float64 // K, Drude internal group
	DrudeFrequency   float64 // 1/ps, Drude internal group
	ChainDepth       int
	LoopsPerStep     int
	UseCOMGroup      bool
	Precision        md.Precision
}

// NoseHoover owns one chain per temperature group and applies the
// group velocity rescale each thermostat pass.
type NoseHoover struct {
	topo    *md.Topology
	part    *Partition
	opts    Options
	reducer *Reducer

	dof    [NumGroups]float64
	nkbT   [NumGroups]float64
	chains [NumGroups]*Chain

	ke2     [NumGroups]float64
	factors [NumGroups]float64
}

// NewNoseHoover runs the setup-time accounting: group DOFs, target
// kinetic energies and chain masses.
func NewNoseHoover(topo *md.Topology, part *Partition, opts Options) *NoseHoover {
	nh := &NoseHoover{
		topo:    topo,
		part:    part,
		opts:    opts,
		reducer: NewReducer(topo, part, opts.UseCOMGroup, opts.Precision),
		dof:     ComputeDOF(topo, part, opts.UseCOMGroup),
	}
	for g := Group(0); g < NumGroups; g++ {
		kbT := nh.groupKbT(g)
		freq := opts.Frequency
		if g == GroupDrude {
			freq = opts.DrudeFrequency
		}
		nh.nkbT[g] = nh.dof[g] * kbT
		nh.chains[g] = NewChain(opts.ChainDepth, nh.dof[g], kbT, freq)
		nh.factors[g] = 1.0
	}
	return nh
}

func (nh *NoseHoover) groupKbT(g Group) float64 {
	if g == GroupDrude {
		return md.Boltz * nh.opts.DrudeTemperature
	}
	return md.Boltz * nh.opts.Temperature
}

// DOF returns the degree-of-freedom count of a group.
func (nh *NoseHoover) DOF(g Group) float64 { return nh.dof[g] }

// Chain exposes a group's chain state, mainly for tests and
// diagnostics. The chain is owned by the thermostat.
func (nh *NoseHoover) Chain(g Group) *Chain { return nh.chains[g] }

// GroupKE2 returns the per-group 2×KE from the last ComputeGroupKE,
// including the rescale applied by ScaleVelocities.
func (nh *NoseHoover) GroupKE2() [NumGroups]float64 { return nh.ke2 }

// Temperatures derives instantaneous group temperatures from the last
// kinetic-energy reduction. Zero-DOF groups report zero.
func (nh *NoseHoover) Temperatures() [NumGroups]float64 {
	var t [NumGroups]float64
	for g := Group(0); g < NumGroups; g++ {
		if nh.dof[g] > 0 {
			t[g] = nh.ke2[g] / nh.dof[g] / md.Boltz
		}
	}
	return t
}

// ComputeGroupKE decomposes the current velocities and reduces the
// per-group kinetic energies. Must run after any velocity bias has been
// removed, or streaming motion is counted as heat.
func (nh *NoseHoover) ComputeGroupKE(s *md.State) {
	nh.reducer.Decompose(s)
	nh.ke2 = nh.reducer.GroupKE2(s)
}

// ScaleVelocities propagates each group's chain and rescales the
// velocity components group by group: residue COM motion by the COM
// factor, internal/pair-COM motion by the atom factor and Drude
// relative motion by the Drude factor. Zero-DOF groups keep factor 1
// and leave their component untouched.
func (nh *NoseHoover) ScaleVelocities(s *md.State, stepSize float64) {
	for g := Group(0); g < NumGroups; g++ {
		kbT := nh.groupKbT(g)
		nh.factors[g] = nh.chains[g].Propagate(nh.ke2[g], nh.nkbT[g], kbT, stepSize, nh.opts.LoopsPerStep)
		nh.ke2[g] *= nh.factors[g]
	}

	sAtom := nh.factors[GroupAtom]
	sCOM := nh.factors[GroupCOM]
	sDrude := nh.factors[GroupDrude]

	for _, i := range nh.part.Normal {
		com := nh.reducer.COMVelocity(nh.topo.ParticleResidue(i))
		s.Vel[i] = com.Scale(sCOM).Add(nh.reducer.NormVelocity(i).Scale(sAtom))
	}

	for _, pair := range nh.part.Pairs {
		m1 := nh.topo.Mass(pair.Core)
		m2 := nh.topo.Mass(pair.Shell)
		total := m1 + m2
		frac1 := m1 / total
		frac2 := m2 / total

		v1 := nh.reducer.NormVelocity(pair.Core)
		v2 := nh.reducer.NormVelocity(pair.Shell)
		cm := v1.Scale(frac1).Add(v2.Scale(frac2))
		rel := v2.Sub(v1)

		comCore := nh.reducer.COMVelocity(nh.topo.ParticleResidue(pair.Core)).Scale(sCOM)
		comShell := nh.reducer.COMVelocity(nh.topo.ParticleResidue(pair.Shell)).Scale(sCOM)

		cmScaled := cm.Scale(sAtom)
		relScaled := rel.Scale(sDrude)
		s.Vel[pair.Core] = comCore.Add(cmScaled).Sub(relScaled.Scale(frac2))
		s.Vel[pair.Shell] = comShell.Add(cmScaled).Add(relScaled.Scale(frac1))
	}
}
