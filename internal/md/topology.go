package md

import "fmt"

// DrudePair is a bonded (core, shell) pair modeling electronic
// polarizability. The shell is the light Drude particle attached to the
// heavy core.
type DrudePair struct {
	Core  int
	Shell int
}

// Constraint fixes the distance between two particles. The solver that
// enforces it is an external collaborator; the topology only records it
// for degree-of-freedom accounting.
type Constraint struct {
	I, J     int
	Distance float64
}

// ImagePair mirrors an image particle against its parent across the
// mirror plane.
type ImagePair struct {
	Image  int
	Parent int
}

// Topology describes the immutable structure of the simulated system:
// masses, charges, the residue (molecule) decomposition, Drude pairs,
// distance constraints and the special particle classes consumed by the
// integrator. It must not change after being bound to an integrator.
type Topology struct {
	Masses      []float64
	Charges     []float64
	Residues    [][]int
	DrudePairs  []DrudePair
	Constraints []Constraint
	Box         Vec3

	// Langevin lists particles thermostatted by Langevin dynamics
	// instead of the Nose-Hoover chains.
	Langevin []int
	// ImagePairs lists image-charge mirror particles and their parents.
	ImagePairs []ImagePair
	// Electrolyte lists particles subject to the external electric field.
	Electrolyte []int

	// RemovesCMMotion marks a center-of-mass motion remover in the
	// force field, which costs the system 3 degrees of freedom.
	RemovesCMMotion bool

	invMasses   []float64
	particleRes []int
	residueMass []float64
	residueInvM []float64
	langevinSet map[int]bool
	imageSet    map[int]bool
	pairByCore  map[int]int
	shellSet    map[int]bool
	finalized   bool
}

// Finalize validates the topology and computes the derived residue and
// class indexes. It must be called once before the topology is queried;
// the integrator calls it during Initialize.
func (t *Topology) Finalize() error {
	if t.finalized {
		return nil
	}
	n := len(t.Masses)
	if len(t.Charges) == 0 {
		t.Charges = make([]float64, n)
	}
	if len(t.Charges) != n {
		return fmt.Errorf("md: %d charges for %d particles", len(t.Charges), n)
	}

	t.particleRes = make([]int, n)
	for i := range t.particleRes {
		t.particleRes[i] = -1
	}
	for resid, particles := range t.Residues {
		for _, i := range particles {
			if i < 0 || i >= n {
				return fmt.Errorf("md: residue %d references particle %d out of %d", resid, i, n)
			}
			if t.particleRes[i] != -1 {
				return ErrResidueCoverage
			}
			t.particleRes[i] = resid
		}
	}
	for i, r := range t.particleRes {
		if r == -1 {
			return fmt.Errorf("md: particle %d is in no residue: %w", i, ErrResidueCoverage)
		}
	}

	t.residueMass = make([]float64, len(t.Residues))
	for i := 0; i < n; i++ {
		t.residueMass[t.particleRes[i]] += t.Masses[i]
	}
	t.residueInvM = make([]float64, len(t.Residues))
	for i, m := range t.residueMass {
		if m > 0 {
			t.residueInvM[i] = 1.0 / m
		}
	}

	t.invMasses = make([]float64, n)
	for i, m := range t.Masses {
		if m > 0 {
			t.invMasses[i] = 1.0 / m
		}
	}

	t.pairByCore = make(map[int]int, len(t.DrudePairs))
	t.shellSet = make(map[int]bool, len(t.DrudePairs))
	for idx, pair := range t.DrudePairs {
		if t.shellSet[pair.Shell] || t.shellSet[pair.Core] {
			return ErrDuplicateDrudePair
		}
		if _, dup := t.pairByCore[pair.Core]; dup {
			return ErrDuplicateDrudePair
		}
		if _, dup := t.pairByCore[pair.Shell]; dup {
			return ErrDuplicateDrudePair
		}
		t.pairByCore[pair.Core] = idx
		t.shellSet[pair.Shell] = true
	}

	t.langevinSet = make(map[int]bool, len(t.Langevin))
	for _, i := range t.Langevin {
		t.langevinSet[i] = true
	}
	t.imageSet = make(map[int]bool, len(t.ImagePairs))
	for _, pair := range t.ImagePairs {
		t.imageSet[pair.Image] = true
		if t.langevinSet[pair.Image] {
			return ErrParticleClassOverlap
		}
	}

	t.finalized = true
	return nil
}

func (t *Topology) NumParticles() int { return len(t.Masses) }
func (t *Topology) NumResidues() int { return len(t.Residues) }

// Mass returns the particle mass. Out-of-range indices are a
// programming-contract violation and panic.
func (t *Topology) Mass(i int) float64 {
	return t.Masses[i]
}

func (t *Topology) InvMass(i int) float64 {
	return t.invMasses[i]
}

// InvMasses returns the shared inverse-mass slice. Callers must not
// mutate it.
func (t *Topology) InvMasses() []float64 {
	return t.invMasses
}

// ParticleResidue returns the residue id owning particle i.
func (t *Topology) ParticleResidue(i int) int {
	return t.particleRes[i]
}

func (t *Topology) ResidueMass(resid int) float64 {
	return t.residueMass[resid]
}

func (t *Topology) ResidueInvMass(resid int) float64 {
	return t.residueInvM[resid]
}

// IsLangevin reports whether particle i is thermostatted by Langevin
// dynamics.
func (t *Topology) IsLangevin(i int) bool { return t.langevinSet[i] }

// IsImage reports whether particle i is an image-charge mirror particle.
func (t *Topology) IsImage(i int) bool { return t.imageSet[i] }

// IsNoseHoover reports whether particle i belongs to the Nose-Hoover
// thermostat. Every particle that is neither Langevin nor image does.
func (t *Topology) IsNoseHoover(i int) bool {
	return !t.langevinSet[i] && !t.imageSet[i]
}

// IsDrudeShell reports whether particle i is the shell of a Drude pair.
func (t *Topology) IsDrudeShell(i int) bool { return t.shellSet[i] }

// TotalMass is the summed mass of all particles.
func (t *Topology) TotalMass() float64 {
	total := 0.0
	for _, m := range t.Masses {
		total += m
	}
	return total
}
