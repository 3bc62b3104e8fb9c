package thermostat

import (
	"runtime"
	"sync"

	"github.com/florianjoerg/vvmd/internal/md"
)

// parallelThreshold is the particle count above which reductions split
// across worker goroutines.
const parallelThreshold = 4096

// Reducer decomposes the velocity field into molecular center-of-mass
// and internal components and reduces per-particle kinetic energy into
// per-group 2×KE sums.
type Reducer struct {
	topo    *md.Topology
	part    *Partition
	useCOM  bool
	prec    md.Precision
	workers int

	comVel  []md.Vec3 // per residue
	normVel []md.Vec3 // per particle
}

func NewReducer(topo *md.Topology, part *Partition, useCOM bool, prec md.Precision) *Reducer {
	nRes := topo.NumResidues()
	if nRes < 1 {
		nRes = 1
	}
	return &Reducer{
		topo:    topo,
		part:    part,
		useCOM:  useCOM,
		prec:    prec,
		workers: runtime.NumCPU(),
		comVel:  make([]md.Vec3, nRes),
		normVel: make([]md.Vec3, topo.NumParticles()),
	}
}

// COMVelocity returns the last decomposed center-of-mass velocity of a
// residue. Zero when COM grouping is disabled.
func (r *Reducer) COMVelocity(resid int) md.Vec3 { return r.comVel[resid] }

// NormVelocity returns the last decomposed internal velocity of a
// particle. Equal to the raw velocity when COM grouping is disabled.
func (r *Reducer) NormVelocity(i int) md.Vec3 { return r.normVel[i] }

// Decompose splits every NH particle's velocity into its residue COM
// component and the remaining internal component. Without COM grouping
// the COM component is defined as zero, so the internal component is
// the raw velocity.
func (r *Reducer) Decompose(s *md.State) {
	if !r.useCOM {
		for i := range r.comVel {
			r.comVel[i] = md.Vec3{}
		}
		for _, i := range r.part.Particles {
			r.normVel[i] = s.Vel[i]
		}
		return
	}

	for _, resid := range r.part.Residues {
		sum := md.Vec3{}
		for _, i := range r.topo.Residues[resid] {
			sum = sum.Add(s.Vel[i].Scale(r.topo.Mass(i)))
		}
		r.comVel[resid] = sum.Scale(r.topo.ResidueInvMass(resid))
	}
	for _, i := range r.part.Particles {
		r.normVel[i] = s.Vel[i].Sub(r.comVel[r.topo.ParticleResidue(i)])
	}
}

// GroupKE2 reduces the decomposed velocities into one 2×KE sum per
// temperature group: internal motion of unpaired particles to the atom
// group, pair COM and reduced-mass relative motion to the atom and
// Drude groups, and residue COM motion to the molecular group.
// Decompose must have been called for the current velocities.
func (r *Reducer) GroupKE2(s *md.State) [NumGroups]float64 {
	var ke2 [NumGroups]float64

	n := len(r.part.Normal)
	if n >= parallelThreshold {
		ke2[GroupAtom] = r.parallelNormalKE2()
	} else {
		for _, i := range r.part.Normal {
			ke2[GroupAtom] += r.prec.Round(r.topo.Mass(i) * r.normVel[i].LengthSq())
		}
	}

	for _, pair := range r.part.Pairs {
		m1 := r.topo.Mass(pair.Core)
		m2 := r.topo.Mass(pair.Shell)
		total := m1 + m2
		reduced := m1 * m2 / total
		v1 := r.normVel[pair.Core]
		v2 := r.normVel[pair.Shell]
		cm := v1.Scale(m1 / total).Add(v2.Scale(m2 / total))
		rel := v2.Sub(v1)
		ke2[GroupAtom] += r.prec.Round(total * cm.LengthSq())
		ke2[GroupDrude] += r.prec.Round(reduced * rel.LengthSq())
	}

	if r.useCOM {
		for _, resid := range r.part.Residues {
			ke2[GroupCOM] += r.prec.Round(r.topo.ResidueMass(resid) * r.comVel[resid].LengthSq())
		}
	}

	for g := range ke2 {
		ke2[g] = r.prec.RoundSum(ke2[g])
	}
	return ke2
}

func (r *Reducer) parallelNormalKE2() float64 {
	n := len(r.part.Normal)
	partials := make([]float64, r.workers)
	chunk := (n + r.workers - 1) / r.workers

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			start := worker * chunk
			end := start + chunk
			if end > n {
				end = n
			}
			sum := 0.0
			for k := start; k < end; k++ {
				i := r.part.Normal[k]
				sum += r.prec.Round(r.topo.Mass(i) * r.normVel[i].LengthSq())
			}
			partials[worker] = sum
		}(w)
	}
	wg.Wait()

	total := 0.0
	for _, p := range partials {
		total += p
	}
	return total
}
