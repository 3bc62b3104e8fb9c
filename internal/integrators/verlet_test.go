package integrators

import (
	"math"
	"testing"

	"github.com/florianjoerg/vvmd/internal/md"
)

func oscillatorTopology(t *testing.T) *md.Topology {
	t.Helper()
	topo := &md.Topology{
		Masses:   []float64{1},
		Residues: [][]int{{0}},
	}
	if err := topo.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return topo
}

func springForce(k float64, pos []md.Vec3) []md.Vec3 {
	forces := make([]md.Vec3, len(pos))
	for i := range pos {
		forces[i] = pos[i].Scale(-k)
	}
	return forces
}

func TestVerletHarmonicOscillatorEnergy(t *testing.T) {
	topo := oscillatorTopology(t)
	v := NewVelocityVerlet(topo, md.NoConstraints{}, 1e-5, 0, 1)

	const (
		k     = 100.0
		dt    = 0.001
		steps = 10000
	)
	s := md.NewState(1)
	s.Pos[0] = md.Vec3{X: 1}
	extra := make([]md.Vec3, 1)

	energy := func() float64 {
		return 0.5*k*s.Pos[0].LengthSq() + 0.5*s.Vel[0].LengthSq()
	}
	initial := energy()

	forces := springForce(k, s.Pos)
	for i := 0; i < steps; i++ {
		if err := v.FirstHalf(s, forces, extra, dt); err != nil {
			t.Fatalf("first half: %v", err)
		}
		forces = springForce(k, s.Pos)
		if err := v.SecondHalf(s, forces, extra, dt); err != nil {
			t.Fatalf("second half: %v", err)
		}
	}

	drift := math.Abs(energy()-initial) / initial
	if drift > 1e-4 {
		t.Errorf("energy drift %g over %d steps", drift, steps)
	}

	amplitude := math.Sqrt(s.Pos[0].LengthSq() + s.Vel[0].LengthSq()/k)
	if math.Abs(amplitude-1) > 1e-3 {
		t.Errorf("amplitude %g, want 1", amplitude)
	}
}

func TestVerletExtraForcesAdd(t *testing.T) {
	topo := oscillatorTopology(t)
	v := NewVelocityVerlet(topo, md.NoConstraints{}, 1e-5, 0, 1)

	const dt = 0.002
	s := md.NewState(1)
	forces := []md.Vec3{{X: 2}}
	extra := []md.Vec3{{X: 1}}

	if err := v.FirstHalf(s, forces, extra, dt); err != nil {
		t.Fatalf("first half: %v", err)
	}

	// v = (f+extra)/m * dt/2, x = v*dt
	wantV := 3.0 * dt / 2
	if math.Abs(s.Vel[0].X-wantV) > 1e-15 {
		t.Errorf("velocity = %g, want %g", s.Vel[0].X, wantV)
	}
	if math.Abs(s.Pos[0].X-wantV*dt) > 1e-15 {
		t.Errorf("position = %g, want %g", s.Pos[0].X, wantV*dt)
	}
}

func TestVerletMasslessParticlesStayPut(t *testing.T) {
	topo := &md.Topology{
		Masses:   []float64{1, 0},
		Residues: [][]int{{0, 1}},
	}
	if err := topo.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	v := NewVelocityVerlet(topo, md.NoConstraints{}, 1e-5, 0, 1)

	s := md.NewState(2)
	forces := []md.Vec3{{X: 1}, {X: 5}}
	extra := make([]md.Vec3, 2)

	if err := v.FirstHalf(s, forces, extra, 0.001); err != nil {
		t.Fatalf("first half: %v", err)
	}
	if s.Pos[1] != (md.Vec3{}) || s.Vel[1] != (md.Vec3{}) {
		t.Error("massless particle moved")
	}
}

func TestVerletStepSizeChange(t *testing.T) {
	topo := oscillatorTopology(t)
	warm := NewVelocityVerlet(topo, md.NoConstraints{}, 1e-5, 0, 1)
	fresh := NewVelocityVerlet(topo, md.NoConstraints{}, 1e-5, 0, 1)

	// Warm the coefficient cache with a different step size first.
	s0 := md.NewState(1)
	forces := []md.Vec3{{X: 1}}
	extra := make([]md.Vec3, 1)
	if err := warm.FirstHalf(s0, forces, extra, 0.004); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	a := md.NewState(1)
	b := md.NewState(1)
	if err := warm.FirstHalf(a, forces, extra, 0.001); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if err := fresh.FirstHalf(b, forces, extra, 0.001); err != nil {
		t.Fatalf("fresh: %v", err)
	}

	if a.Vel[0] != b.Vel[0] || a.Pos[0] != b.Pos[0] {
		t.Error("cached coefficients not refreshed on step-size change")
	}
}
