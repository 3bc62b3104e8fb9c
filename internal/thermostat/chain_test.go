package thermostat

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/florianjoerg/vvmd/internal/md"
)

var _ = Describe("Chain", func() {
	const (
		depth     = 3
		dof       = 30.0
		temp      = 300.0
		frequency = 10.0 // 1/ps
		stepSize  = 0.001
	)
	kbT := md.Boltz * temp

	newChain := func() *Chain {
		return NewChain(depth, dof, kbT, frequency)
	}

	Describe("construction", func() {
		It("sizes the chain arrays with one trailing resting neighbor", func() {
			c := newChain()
			Expect(c.Eta).To(HaveLen(depth))
			Expect(c.EtaDot).To(HaveLen(depth + 1))
			Expect(c.EtaDotDot).To(HaveLen(depth))
			Expect(c.EtaMass).To(HaveLen(depth))
		})

		It("gives the head DOF times the link mass", func() {
			c := newChain()
			linkMass := kbT / (frequency * frequency)
			Expect(c.EtaMass[0]).To(BeNumerically("~", dof*linkMass, 1e-15))
			Expect(c.EtaMass[1]).To(Equal(linkMass))
			Expect(c.EtaMass[2]).To(Equal(linkMass))
		})
	})

	Describe("Propagate", func() {
		It("applies no rescale at the target kinetic energy", func() {
			c := newChain()
			factor := c.Propagate(dof*kbT, dof*kbT, kbT, stepSize, 1)
			Expect(factor).To(Equal(1.0))
			// The head stays at rest; deeper links may drift.
			Expect(c.Eta[0]).To(BeZero())
			Expect(c.EtaDot[0]).To(BeZero())
		})

		It("cools an overheated group", func() {
			c := newChain()
			factor := c.Propagate(2*dof*kbT, dof*kbT, kbT, stepSize, 1)
			Expect(factor).To(BeNumerically("<", 1.0))
		})

		It("heats an undercooled group", func() {
			c := newChain()
			factor := c.Propagate(0.5*dof*kbT, dof*kbT, kbT, stepSize, 1)
			Expect(factor).To(BeNumerically(">", 1.0))
		})

		It("leaves a zero-DOF chain untouched with factor one", func() {
			c := NewChain(depth, 0, kbT, frequency)
			factor := c.Propagate(12.0, 0, kbT, stepSize, 1)
			Expect(factor).To(Equal(1.0))
			for _, eta := range c.Eta {
				Expect(eta).To(BeZero())
			}
		})

		It("is deterministic for identical inputs", func() {
			a, b := newChain(), newChain()
			fa := a.Propagate(1.5*dof*kbT, dof*kbT, kbT, stepSize, 3)
			fb := b.Propagate(1.5*dof*kbT, dof*kbT, kbT, stepSize, 3)
			Expect(fa).To(Equal(fb))
			Expect(a.Eta).To(Equal(b.Eta))
			Expect(a.EtaDot).To(Equal(b.EtaDot))
		})

		It("splits the update into the requested number of loops", func() {
			one, four := newChain(), newChain()
			fOne := one.Propagate(2*dof*kbT, dof*kbT, kbT, stepSize, 1)
			fFour := four.Propagate(2*dof*kbT, dof*kbT, kbT, stepSize, 4)
			// Same direction, different discretization.
			Expect(fOne).To(BeNumerically("<", 1.0))
			Expect(fFour).To(BeNumerically("<", 1.0))
			Expect(fOne).NotTo(Equal(fFour))
		})

		It("accumulates chain positions over successive passes", func() {
			c := newChain()
			c.Propagate(2*dof*kbT, dof*kbT, kbT, stepSize, 1)
			first := c.Eta[0]
			c.Propagate(2*dof*kbT, dof*kbT, kbT, stepSize, 1)
			Expect(c.Eta[0]).To(BeNumerically(">", first))
		})
	})
})
