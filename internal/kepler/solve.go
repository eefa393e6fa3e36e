package kepler

import (
	"math"

	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	solveTolerance = 1e-13
	solveMaxIter   = 50
)

// Solve finds the eccentric anomaly E satisfying Kepler's equation
// M = E − e·sin(E) by Newton iteration. converged is false when the
// tolerance was not reached within the iteration cap; the best estimate is
// still returned, since for plotting and initial placement an approximate E
// beats no answer.
func Solve(meanAnomaly, e float64) (E float64, converged bool) {
	M := wrapTwoPi(meanAnomaly)

	// E=M is a good seed at low eccentricity; near e=1 the iteration can
	// overshoot from there, so start at π instead.
	E = M
	if e > 0.8 {
		E = math.Pi
	}

	for i := 0; i < solveMaxIter; i++ {
		f := E - e*math.Sin(E) - M
		dE := f / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < solveTolerance {
			return E, true
		}
	}
	return E, false
}

// StateVectors converts elements to a position and velocity relative to the
// primary, with mu = G·(m_primary + m_body). The bool mirrors Solve's
// convergence flag and should be surfaced as a warning, not an error.
func (el Elements) StateVectors(mu float64) (pos, vel vec.Vec3, converged bool) {
	a, e := el.SemiMajorAxis, el.Eccentricity

	E, converged := Solve(el.MeanAnomaly, e)
	cosE, sinE := math.Cos(E), math.Sin(E)
	b := math.Sqrt(1 - e*e)

	// Perifocal frame: x toward periapsis, z along angular momentum.
	xp := a * (cosE - e)
	yp := a * b * sinE

	n := math.Sqrt(mu / (a * a * a)) // mean motion
	denom := 1 - e*cosE
	vxp := -a * n * sinE / denom
	vyp := a * n * b * cosE / denom

	cosO, sinO := math.Cos(el.AscendingNode), math.Sin(el.AscendingNode)
	cosW, sinW := math.Cos(el.ArgPeriapsis), math.Sin(el.ArgPeriapsis)
	cosI, sinI := math.Cos(el.Inclination), math.Sin(el.Inclination)

	// Rows of the perifocal→inertial rotation R_z(−Ω)·R_x(−i)·R_z(−ω).
	r11 := cosO*cosW - sinO*sinW*cosI
	r12 := -cosO*sinW - sinO*cosW*cosI
	r21 := sinO*cosW + cosO*sinW*cosI
	r22 := -sinO*sinW + cosO*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	pos = vec.Vec3{
		X: r11*xp + r12*yp,
		Y: r21*xp + r22*yp,
		Z: r31*xp + r32*yp,
	}
	vel = vec.Vec3{
		X: r11*vxp + r12*vyp,
		Y: r21*vxp + r22*vyp,
		Z: r31*vxp + r32*vyp,
	}
	return pos, vel, converged
}
