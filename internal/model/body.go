// Package model holds the physical state of the simulated bodies: the Body
// record itself and the System that owns the ordered body sequence and the
// simulation clock.
package model

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Body is a point mass with Cartesian state in simulation units
// (AU, AU/yr, solar masses). Acceleration is derived state: the physics
// engine overwrites it every step and nothing else should depend on it
// persisting across steps.
//
// Radius and Color are display attributes carried for the visualization
// layer; the physics never reads them.
type Body struct {
	Name   string
	Mass   float64
	Radius float64
	Color  string

	Position     vec.Vec3
	Velocity     vec.Vec3
	Acceleration vec.Vec3
}

// Validate checks the construction-time invariants: positive mass and finite
// state vectors.
func (b *Body) Validate() error {
	if b.Mass <= 0 {
		return fmt.Errorf("body %q: mass must be positive, got %g", b.Name, b.Mass)
	}
	if !b.Position.IsFinite() {
		return fmt.Errorf("body %q: non-finite position", b.Name)
	}
	if !b.Velocity.IsFinite() {
		return fmt.Errorf("body %q: non-finite velocity", b.Name)
	}
	return nil
}

// KineticEnergy returns 0.5*m*v² in AU²/yr²·M☉.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Norm2()
}

// Momentum returns m*v.
func (b *Body) Momentum() vec.Vec3 {
	return b.Velocity.Scale(b.Mass)
}

// AngularMomentum returns m*(r×v) about the coordinate origin.
func (b *Body) AngularMomentum() vec.Vec3 {
	return b.Position.Cross(b.Velocity).Scale(b.Mass)
}
