package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/vec"
)

// Accelerations overwrites every body's acceleration with the softened
// Newtonian pairwise sum
//
//	a_i = G · Σ_{j≠i} m_j (r_j − r_i) / (|r_j − r_i|² + ε²)^(3/2)
//
// The i<j loop accumulates equal and opposite contributions for each pair, so
// total linear momentum is conserved to roundoff by construction. O(N²); N is
// small enough here that nothing fancier pays off.
func Accelerations(bodies []model.Body, cfg Config) {
	for i := range bodies {
		bodies[i].Acceleration = vec.Vec3{}
	}

	eps2 := cfg.Softening * cfg.Softening
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			rij := bodies[j].Position.Sub(bodies[i].Position)
			dist2 := rij.Norm2() + eps2
			invR3 := 1.0 / (dist2 * math.Sqrt(dist2))

			bodies[i].Acceleration = bodies[i].Acceleration.Add(rij.Scale(cfg.G * bodies[j].Mass * invR3))
			bodies[j].Acceleration = bodies[j].Acceleration.Sub(rij.Scale(cfg.G * bodies[i].Mass * invR3))
		}
	}
}
