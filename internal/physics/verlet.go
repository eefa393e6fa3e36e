package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/model"
)

// Step advances all bodies by one velocity-Verlet tick of size dt:
//
//	v ← v + ½·a(t)·dt
//	r ← r + v·dt
//	recompute a(t+dt)   (Newtonian gravity, plus 1PN when enabled)
//	v ← v + ½·a(t+dt)·dt
//
// The scheme is time-reversible and symplectic, which bounds long-term energy
// error to oscillation instead of secular growth. It requires a(t) to already
// be stored on the bodies; call Accelerations once before the first Step.
//
// Returns an error wrapping ErrNonFinite if any resulting component is NaN or
// Inf. The step is not retried and the bodies are left as-is for post-mortem.
func Step(bodies []model.Body, primary int, dt float64, cfg Config) error {
	half := 0.5 * dt

	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(bodies[i].Acceleration.Scale(half))
	}
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(dt))
	}

	Accelerations(bodies, cfg)
	if cfg.Relativity {
		PNCorrections(bodies, primary, cfg)
	}

	for i := range bodies {
		bodies[i].Velocity = bodies[i].Velocity.Add(bodies[i].Acceleration.Scale(half))
	}

	for i := range bodies {
		if !bodies[i].Position.IsFinite() || !bodies[i].Velocity.IsFinite() {
			return fmt.Errorf("body %q: %w", bodies[i].Name, ErrNonFinite)
		}
	}
	return nil
}
