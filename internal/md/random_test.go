package md

import (
	"math"
	"testing"
)

func TestGaussianStreamDeterminism(t *testing.T) {
	a := NewGaussianStream(42).Draw(16)
	b := NewGaussianStream(42).Draw(16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestMaxwellVelocities(t *testing.T) {
	topo := twoMoleculeTopology()
	if err := topo.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	s := NewState(topo.NumParticles())
	MaxwellVelocities(topo, s, 300, NewGaussianStream(1))

	for _, pair := range topo.DrudePairs {
		if s.Vel[pair.Shell] != s.Vel[pair.Core] {
			t.Error("shell must start with its core velocity")
		}
	}
	if s.Vel[0].Length() == 0 {
		t.Error("core velocity should be thermal, got zero")
	}
}

func TestMaxwellVelocitiesZeroTemperature(t *testing.T) {
	topo := twoMoleculeTopology()
	if err := topo.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	s := NewState(topo.NumParticles())
	MaxwellVelocities(topo, s, 0, NewGaussianStream(1))

	for i := range s.Vel {
		if math.Abs(s.Vel[i].Length()) > 0 {
			t.Fatalf("particle %d moving at T=0", i)
		}
	}
}
