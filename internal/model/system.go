package model

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/vec"
)

// System aggregates the bodies of one simulation run. The body order is fixed
// for the lifetime of the run: external selection commands address bodies by
// index, so no insertion or removal happens after construction.
//
// The System owns the simulation clock. It performs no stepping itself; the
// physics package mutates the body slice and the sim package advances Time.
type System struct {
	Bodies  []Body
	Primary int // index of the dominant mass used for orbital elements
	Time    float64
	Dt      float64
}

// NewSystem validates and assembles a system. The primary index conventionally
// points at the most massive body (the star); it is the reference mass for
// orbital-element conversion.
func NewSystem(bodies []Body, primary int, dt float64) (*System, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("system: no bodies")
	}
	if primary < 0 || primary >= len(bodies) {
		return nil, fmt.Errorf("system: primary index %d out of range [0,%d)", primary, len(bodies))
	}
	if dt <= 0 {
		return nil, fmt.Errorf("system: dt must be positive, got %g", dt)
	}
	for i := range bodies {
		if err := bodies[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &System{Bodies: bodies, Primary: primary, Dt: dt}, nil
}

// TotalMass returns the summed mass of all bodies.
func (s *System) TotalMass() float64 {
	total := 0.0
	for i := range s.Bodies {
		total += s.Bodies[i].Mass
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position and velocity.
func (s *System) CenterOfMass() (pos, vel vec.Vec3) {
	total := s.TotalMass()
	for i := range s.Bodies {
		b := &s.Bodies[i]
		pos = pos.Add(b.Position.Scale(b.Mass))
		vel = vel.Add(b.Velocity.Scale(b.Mass))
	}
	return pos.Scale(1 / total), vel.Scale(1 / total)
}

// MoveToBarycenter shifts all positions and velocities so the center of mass
// sits at rest at the origin. Called once at construction; keeps the system
// from drifting out of frame over long runs.
func (s *System) MoveToBarycenter() {
	pos, vel := s.CenterOfMass()
	for i := range s.Bodies {
		s.Bodies[i].Position = s.Bodies[i].Position.Sub(pos)
		s.Bodies[i].Velocity = s.Bodies[i].Velocity.Sub(vel)
	}
}

// BodyState is one body's share of a Snapshot.
type BodyState struct {
	Name     string
	Mass     float64
	Radius   float64
	Color    string
	Position vec.Vec3
	Velocity vec.Vec3
}

// Snapshot is an immutable copy of the system state at one instant, safe to
// hand to rendering or diagnostics while the live system keeps stepping.
type Snapshot struct {
	Time   float64
	Bodies []BodyState
}

// Snapshot copies the current positions, velocities and clock.
func (s *System) Snapshot() Snapshot {
	states := make([]BodyState, len(s.Bodies))
	for i := range s.Bodies {
		b := &s.Bodies[i]
		states[i] = BodyState{
			Name:     b.Name,
			Mass:     b.Mass,
			Radius:   b.Radius,
			Color:    b.Color,
			Position: b.Position,
			Velocity: b.Velocity,
		}
	}
	return Snapshot{Time: s.Time, Bodies: states}
}
