package modifiers

import (
	"math"
	"testing"

	"github.com/florianjoerg/vvmd/internal/md"
)

func TestElectricFieldOnElectrolyteOnly(t *testing.T) {
	topo := &md.Topology{
		Masses:      []float64{22.99, 35.453, 18.015},
		Charges:     []float64{1, -1, 0},
		Residues:    [][]int{{0}, {1}, {2}},
		Electrolyte: []int{0, 1},
	}
	if err := topo.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	const field = 1e-21 // kJ/(nm e)
	e := NewElectricField(topo, field)
	extra := make([]md.Vec3, 3)
	e.Apply(extra)

	want := field * md.Avogadro
	if math.Abs(extra[0].Z-want) > math.Abs(want)*1e-15 {
		t.Errorf("cation force = %g, want %g", extra[0].Z, want)
	}
	if math.Abs(extra[1].Z+want) > math.Abs(want)*1e-15 {
		t.Errorf("anion force = %g, want %g", extra[1].Z, -want)
	}
	if extra[2] != (md.Vec3{}) {
		t.Errorf("neutral solvent got a field force: %+v", extra[2])
	}
	if extra[0].X != 0 || extra[0].Y != 0 {
		t.Error("field force must act along z only")
	}
}

func TestImageChargeMirrorsParents(t *testing.T) {
	const mirror = 1.5
	ic := NewImageCharge([]md.ImagePair{{Image: 1, Parent: 0}}, mirror)

	s := md.NewState(2)
	s.Pos[0] = md.Vec3{X: 0.3, Y: -0.2, Z: 0.9}
	ic.UpdatePositions(s)

	want := md.Vec3{X: 0.3, Y: -0.2, Z: 2*mirror - 0.9}
	if s.Pos[1] != want {
		t.Errorf("image position = %+v, want %+v", s.Pos[1], want)
	}

	// Moving the parent moves the image, never the other way around.
	s.Pos[0].Z = 1.2
	ic.UpdatePositions(s)
	if s.Pos[1].Z != 2*mirror-1.2 {
		t.Errorf("image z = %g, want %g", s.Pos[1].Z, 2*mirror-1.2)
	}
	if s.Pos[0] != (md.Vec3{X: 0.3, Y: -0.2, Z: 1.2}) {
		t.Errorf("parent moved: %+v", s.Pos[0])
	}
}
