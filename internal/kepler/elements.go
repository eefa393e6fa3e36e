package kepler

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Elements are classical osculating Keplerian elements: the instantaneous
// orbit a body would follow if all perturbations vanished right now. They are
// a pure function of state and are recomputed fresh on every request; caching
// them across steps would go stale under perturbation.
type Elements struct {
	SemiMajorAxis float64 // a, AU
	Eccentricity  float64 // e, [0,1) for bound orbits
	Inclination   float64 // i, rad
	AscendingNode float64 // Ω, rad
	ArgPeriapsis  float64 // ω, rad
	MeanAnomaly   float64 // M, rad
}

// ErrUnbound flags a parabolic or hyperbolic state: the semi-major axis and
// mean anomaly of an ellipse are meaningless there, so the conversion refuses
// rather than returning nonsense.
var ErrUnbound = errors.New("kepler: orbit is parabolic or hyperbolic")

// degenerate is the threshold below which eccentricity or the node line are
// treated as undefined and the fixed conventions kick in (Ω=0 for equatorial
// orbits, ω=0 for circular ones).
const degenerate = 1e-10

const boundLimit = 1.0 - 1e-8

func wrapTwoPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// FromStateVectors derives osculating elements from a position and velocity
// relative to the primary, with mu = G·(m_primary + m_body) in AU³/yr².
//
// Degenerate geometry follows fixed conventions instead of erroring: an
// equatorial orbit has no ascending node, so Ω := 0 and ω is measured from
// the x-axis; a circular orbit has no periapsis, so ω := 0 and the anomaly is
// measured from the node (or x-axis when both degenerate).
func FromStateVectors(pos, vel vec.Vec3, mu float64) (Elements, error) {
	rmag := pos.Norm()
	v2 := vel.Norm2()

	h := pos.Cross(vel)
	hmag := h.Norm()

	// Node line points toward the ascending node.
	node := vec.Vec3{Z: 1}.Cross(h)
	nmag := node.Norm()

	energy := 0.5*v2 - mu/rmag

	rv := pos.Dot(vel)
	eVec := pos.Scale(v2 - mu/rmag).Sub(vel.Scale(rv)).Scale(1 / mu)
	e := eVec.Norm()

	if e >= boundLimit || energy >= 0 {
		return Elements{}, fmt.Errorf("%w (e=%.6g, energy=%.6g)", ErrUnbound, e, energy)
	}
	a := -mu / (2 * energy)

	incl := 0.0
	if hmag > degenerate {
		incl = math.Acos(clamp1(h.Z / hmag))
	}

	ascNode := 0.0
	if nmag > degenerate {
		ascNode = wrapTwoPi(math.Atan2(node.Y, node.X))
	}

	var argPeri float64
	switch {
	case e > degenerate && nmag > degenerate:
		sinW := node.Cross(eVec).Dot(h) / (nmag * e * hmag)
		cosW := node.Dot(eVec) / (nmag * e)
		argPeri = wrapTwoPi(math.Atan2(sinW, clamp1(cosW)))
	case e > degenerate:
		// Equatorial: measure periapsis from the x-axis in the orbit plane.
		argPeri = wrapTwoPi(math.Atan2(eVec.Y, eVec.X))
	default:
		argPeri = 0
	}

	var trueAnom float64
	switch {
	case e > degenerate:
		sinNu := eVec.Cross(pos).Dot(h) / (e * rmag * hmag)
		cosNu := eVec.Dot(pos) / (e * rmag)
		trueAnom = wrapTwoPi(math.Atan2(sinNu, clamp1(cosNu)))
	case nmag > degenerate:
		sinNu := node.Cross(pos).Dot(h) / (nmag * rmag * hmag)
		cosNu := node.Dot(pos) / (nmag * rmag)
		trueAnom = wrapTwoPi(math.Atan2(sinNu, clamp1(cosNu)))
	default:
		trueAnom = wrapTwoPi(math.Atan2(pos.Y, pos.X))
	}

	// Eccentric anomaly from true anomaly, then Kepler's equation for M.
	ecc := 2 * math.Atan2(
		math.Sqrt(1-e)*math.Sin(trueAnom/2),
		math.Sqrt(1+e)*math.Cos(trueAnom/2),
	)
	meanAnom := wrapTwoPi(ecc - e*math.Sin(ecc))

	return Elements{
		SemiMajorAxis: a,
		Eccentricity:  e,
		Inclination:   incl,
		AscendingNode: ascNode,
		ArgPeriapsis:  argPeri,
		MeanAnomaly:   meanAnom,
	}, nil
}

// Period returns the Keplerian period 2π·√(a³/μ) in years.
func (el Elements) Period(mu float64) float64 {
	a := el.SemiMajorAxis
	return 2 * math.Pi * math.Sqrt(a*a*a/mu)
}

// Periapsis returns the closest-approach distance a(1−e).
func (el Elements) Periapsis() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity)
}

// Apoapsis returns the farthest distance a(1+e).
func (el Elements) Apoapsis() float64 {
	return el.SemiMajorAxis * (1 + el.Eccentricity)
}
