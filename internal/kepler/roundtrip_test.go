package kepler_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/kepler"
)

const mu = 4 * math.Pi * math.Pi

// angleDiff is the shortest angular distance between two angles.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

var _ = Describe("element round trips", func() {
	DescribeTable("elements → state vectors → elements",
		func(a, e, i, node, peri, m float64) {
			in := kepler.Elements{
				SemiMajorAxis: a,
				Eccentricity:  e,
				Inclination:   i,
				AscendingNode: node,
				ArgPeriapsis:  peri,
				MeanAnomaly:   m,
			}

			pos, vel, ok := in.StateVectors(mu)
			Expect(ok).To(BeTrue())

			out, err := kepler.FromStateVectors(pos, vel, mu)
			Expect(err).NotTo(HaveOccurred())

			Expect(out.SemiMajorAxis).To(BeNumerically("~", in.SemiMajorAxis, 1e-8*a))
			Expect(out.Eccentricity).To(BeNumerically("~", in.Eccentricity, 1e-8))
			Expect(angleDiff(out.Inclination, in.Inclination)).To(BeNumerically("<", 1e-8))
			Expect(angleDiff(out.AscendingNode, in.AscendingNode)).To(BeNumerically("<", 1e-7))
			Expect(angleDiff(out.ArgPeriapsis, in.ArgPeriapsis)).To(BeNumerically("<", 1e-7))
			Expect(angleDiff(out.MeanAnomaly, in.MeanAnomaly)).To(BeNumerically("<", 1e-7))
		},
		Entry("near-circular inclined", 1.0, 0.01, 0.5, 1.0, 2.0, 0.3),
		Entry("earth-like", 1.0, 0.0167, 0.1, 0.5, 1.9, 4.0),
		Entry("moderate eccentricity", 2.5, 0.3, 1.2, 3.0, 0.8, 2.0),
		Entry("mercury-like", 0.387, 0.2056, 0.122, 0.843, 0.508, 3.0),
		Entry("high eccentricity", 5.0, 0.9, 0.7, 4.5, 5.5, 1.0),
		Entry("retrograde", 1.5, 0.4, 2.9, 2.2, 1.1, 5.0),
		Entry("near-polar", 3.0, 0.6, 1.57, 0.1, 6.0, 0.01),
	)

	It("preserves specific energy across the conversion", func() {
		in := kepler.Elements{
			SemiMajorAxis: 2.0,
			Eccentricity:  0.5,
			Inclination:   0.8,
			AscendingNode: 1.0,
			ArgPeriapsis:  2.0,
			MeanAnomaly:   1.5,
		}
		pos, vel, ok := in.StateVectors(mu)
		Expect(ok).To(BeTrue())

		energy := 0.5*vel.Norm2() - mu/pos.Norm()
		Expect(energy).To(BeNumerically("~", -mu/(2*in.SemiMajorAxis), 1e-10))
	})
})
