package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/model"
)

// PNCorrections adds the leading-order post-Newtonian acceleration term on
// top of accelerations already computed by Accelerations. For a body at
// relative position r and velocity v with respect to an attractor of mass M:
//
//	a_1PN = GM/(c²r³) · [ (4GM/r − v²) r + 4 (r·v) v ]
//
// The weak-field, slow-motion form of the Einstein–Infeld–Hoffmann equations;
// the whole term scales as 1/c², so it vanishes as the configured light speed
// grows. Scope selects primary-only pairs or all pairs.
//
// The caller gates this on Config.Relativity; with the gate closed the
// Newtonian result is untouched, bit for bit.
func PNCorrections(bodies []model.Body, primary int, cfg Config) {
	c2 := cfg.LightSpeed * cfg.LightSpeed
	eps2 := cfg.Softening * cfg.Softening

	for i := range bodies {
		for j := range bodies {
			if i == j {
				continue
			}
			if cfg.Scope == PNPrimaryOnly && j != primary {
				continue
			}
			if cfg.Scope == PNPrimaryOnly && i == primary {
				continue
			}

			gm := cfg.G * bodies[j].Mass
			r := bodies[i].Position.Sub(bodies[j].Position)
			v := bodies[i].Velocity.Sub(bodies[j].Velocity)

			r2 := r.Norm2() + eps2
			rmag := math.Sqrt(r2)
			v2 := v.Norm2()
			rv := r.Dot(v)

			factor := gm / (c2 * r2 * rmag)
			corr := r.Scale(4*gm/rmag - v2).Add(v.Scale(4 * rv)).Scale(factor)
			bodies[i].Acceleration = bodies[i].Acceleration.Add(corr)
		}
	}
}
