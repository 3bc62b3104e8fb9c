package integrators

import (
	"math"

	"github.com/florianjoerg/vvmd/internal/md"
)

// applyHardWall enforces the maximum Drude-pair separation as a hard
// inequality constraint. A pair beyond the wall bounces: the relative
// velocity along the bond is reflected and rescaled to the thermal
// speed sqrt(kB·T_drude/m), and positions are rewound onto the
// constraint surface plus the post-bounce travel for the remainder of
// the step. Pairs within range are untouched.
func (v *VelocityVerlet) applyHardWall(s *md.State, dt float64) {
	for _, pair := range v.topo.DrudePairs {
		delta := s.Pos[pair.Shell].Sub(s.Pos[pair.Core])
		r := delta.Length()
		if r <= v.maxDrudeDistance {
			continue
		}
		dir := delta.Scale(1 / r)
		overshoot := r - v.maxDrudeDistance

		mShell := v.topo.Mass(pair.Shell)
		if v.topo.InvMass(pair.Core) == 0 {
			// Core is fixed; only the shell bounces.
			vs := s.Vel[pair.Shell].Dot(dir)
			bounceT := dt
			if vs != 0 {
				bounceT = overshoot / math.Abs(vs)
				if bounceT > dt {
					bounceT = dt
				}
			}
			newVs := -v.hardwallScale / math.Sqrt(mShell)
			if vs < 0 {
				newVs = -newVs
			}
			dr := -overshoot + bounceT*newVs
			s.Pos[pair.Shell] = s.Pos[pair.Shell].Add(dir.Scale(dr))
			s.Vel[pair.Shell] = s.Vel[pair.Shell].Sub(dir.Scale(vs)).Add(dir.Scale(newVs))
			continue
		}

		mCore := v.topo.Mass(pair.Core)
		total := mCore + mShell
		reduced := mCore * mShell / total

		vc := s.Vel[pair.Core].Dot(dir)
		vs := s.Vel[pair.Shell].Dot(dir)
		vcm := (mCore*vc + mShell*vs) / total
		rel := vs - vc

		bounceT := dt
		if rel != 0 {
			bounceT = overshoot / math.Abs(rel)
			if bounceT > dt {
				bounceT = dt
			}
		}

		newRel := -v.hardwallScale / math.Sqrt(reduced)
		if rel < 0 {
			newRel = -newRel
		}

		relShell := newRel * mCore / total
		relCore := -newRel * mShell / total

		drShell := -overshoot*mCore/total + bounceT*relShell
		drCore := overshoot*mShell/total + bounceT*relCore
		s.Pos[pair.Shell] = s.Pos[pair.Shell].Add(dir.Scale(drShell))
		s.Pos[pair.Core] = s.Pos[pair.Core].Add(dir.Scale(drCore))

		s.Vel[pair.Shell] = s.Vel[pair.Shell].Sub(dir.Scale(vs)).Add(dir.Scale(vcm + relShell))
		s.Vel[pair.Core] = s.Vel[pair.Core].Sub(dir.Scale(vc)).Add(dir.Scale(vcm + relCore))
	}
}
