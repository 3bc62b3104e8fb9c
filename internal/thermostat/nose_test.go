package thermostat

import (
	"math"
	"testing"

	"github.com/florianjoerg/vvmd/internal/md"
)

func defaultOptions() Options {
	return Options{
		Temperature:      300,
		Frequency:        10,
		DrudeTemperature: 1,
		DrudeFrequency:   40,
		ChainDepth:       3,
		LoopsPerStep:     1,
	}
}

func TestTemperaturesFromGroupKE(t *testing.T) {
	topo := tenAtomTopology(t)
	part, err := NewPartition(topo)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	nh := NewNoseHoover(topo, part, defaultOptions())

	// Velocities chosen for an exact 2KE of DOF*kB*200K.
	speed := math.Sqrt(nh.DOF(GroupAtom) * md.Boltz * 200 / 30)
	s := md.NewState(10)
	for i := range s.Vel {
		s.Vel[i] = md.Vec3{X: speed}
	}
	nh.ComputeGroupKE(s)

	temps := nh.Temperatures()
	if math.Abs(temps[GroupAtom]-200) > 1e-9 {
		t.Errorf("atom temperature = %g, want 200", temps[GroupAtom])
	}
	if temps[GroupCOM] != 0 || temps[GroupDrude] != 0 {
		t.Errorf("empty groups must report zero, got %g/%g", temps[GroupCOM], temps[GroupDrude])
	}
}

func TestScaleVelocitiesCoolsHotSystem(t *testing.T) {
	topo := tenAtomTopology(t)
	part, err := NewPartition(topo)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	nh := NewNoseHoover(topo, part, defaultOptions())

	// Twice the target temperature.
	speed := math.Sqrt(nh.DOF(GroupAtom) * md.Boltz * 600 / 30)
	s := md.NewState(10)
	for i := range s.Vel {
		s.Vel[i] = md.Vec3{X: speed}
	}
	nh.ComputeGroupKE(s)
	before := s.Vel[0].Length()
	nh.ScaleVelocities(s, 0.001)

	if after := s.Vel[0].Length(); after >= before {
		t.Errorf("hot system not cooled: |v| %g -> %g", before, after)
	}
}

func TestScaleVelocitiesZeroDOFLeavesVelocitiesAlone(t *testing.T) {
	// One particle plus a CM motion remover: every group has zero DOF.
	topo := finalized(t, &md.Topology{
		Masses:          []float64{1},
		Residues:        [][]int{{0}},
		RemovesCMMotion: true,
	})
	part, err := NewPartition(topo)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	nh := NewNoseHoover(topo, part, defaultOptions())
	if nh.DOF(GroupAtom) != 0 {
		t.Fatalf("atom DOF = %g, want 0", nh.DOF(GroupAtom))
	}

	s := md.NewState(1)
	s.Vel[0] = md.Vec3{X: 3, Y: -2, Z: 1}
	nh.ComputeGroupKE(s)
	nh.ScaleVelocities(s, 0.001)

	if s.Vel[0] != (md.Vec3{X: 3, Y: -2, Z: 1}) {
		t.Errorf("velocity changed by a zero-DOF thermostat: %+v", s.Vel[0])
	}
}

func TestScaleVelocitiesPreservesPairMomentumDirection(t *testing.T) {
	topo := drudeTopology(t)
	part, err := NewPartition(topo)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	nh := NewNoseHoover(topo, part, defaultOptions())

	s := md.NewState(4)
	s.Vel[0] = md.Vec3{X: 0.4}
	s.Vel[1] = md.Vec3{X: 0.4, Y: 0.8}
	s.Vel[2] = md.Vec3{X: -0.4}
	s.Vel[3] = md.Vec3{X: -0.4, Y: -0.8}
	nh.ComputeGroupKE(s)
	keBefore := nh.GroupKE2()[GroupAtom]

	m1, m2 := topo.Mass(0), topo.Mass(1)
	total := m1 + m2
	cm := s.Vel[0].Scale(m1 / total).Add(s.Vel[1].Scale(m2 / total))

	nh.ScaleVelocities(s, 0.001)

	// The Drude factor moves only relative motion; the pair momentum is
	// the center-of-mass momentum rescaled by the atom factor alone.
	sAtom := nh.GroupKE2()[GroupAtom] / keBefore
	p := s.Vel[0].Scale(m1).Add(s.Vel[1].Scale(m2))
	want := cm.Scale(total * sAtom)
	if p.Sub(want).Length() > 1e-12 {
		t.Errorf("relative scaling leaked into pair momentum: got %+v, want %+v", p, want)
	}
}

func TestScaleVelocitiesUpdatesStoredKE(t *testing.T) {
	topo := tenAtomTopology(t)
	part, err := NewPartition(topo)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	nh := NewNoseHoover(topo, part, defaultOptions())

	speed := math.Sqrt(nh.DOF(GroupAtom) * md.Boltz * 600 / 30)
	s := md.NewState(10)
	for i := range s.Vel {
		s.Vel[i] = md.Vec3{X: speed}
	}
	nh.ComputeGroupKE(s)
	before := nh.GroupKE2()[GroupAtom]
	nh.ScaleVelocities(s, 0.001)
	after := nh.GroupKE2()[GroupAtom]

	if after >= before {
		t.Errorf("stored 2KE not rescaled: %g -> %g", before, after)
	}
}
