package modifiers

import "github.com/florianjoerg/vvmd/internal/md"

// ImageCharge keeps image particles mirrored against their parents
// across the z = mirror plane after every position update.
type ImageCharge struct {
	pairs  []md.ImagePair
	mirror float64
}

func NewImageCharge(pairs []md.ImagePair, mirror float64) *ImageCharge {
	return &ImageCharge{pairs: pairs, mirror: mirror}
}

func (ic *ImageCharge) UpdatePositions(s *md.State) {
	for _, pair := range ic.pairs {
		parent := s.Pos[pair.Parent]
		s.Pos[pair.Image] = md.Vec3{
			X: parent.X,
			Y: parent.Y,
			Z: 2*ic.mirror - parent.Z,
		}
	}
}
