package model

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/vec"
)

func TestBodyValidate(t *testing.T) {
	good := Body{Name: "ok", Mass: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("valid body rejected: %v", err)
	}

	bad := []Body{
		{Name: "massless", Mass: 0},
		{Name: "negative", Mass: -1},
		{Name: "nan-pos", Mass: 1, Position: vec.Vec3{X: math.NaN()}},
		{Name: "inf-vel", Mass: 1, Velocity: vec.Vec3{Y: math.Inf(1)}},
	}
	for i := range bad {
		if err := bad[i].Validate(); err == nil {
			t.Errorf("body %q should fail validation", bad[i].Name)
		}
	}
}

func TestBodyHelpers(t *testing.T) {
	b := Body{Mass: 2, Position: vec.Vec3{X: 1}, Velocity: vec.Vec3{Y: 3}}

	if ke := b.KineticEnergy(); ke != 9 {
		t.Errorf("KineticEnergy = %v, want 9", ke)
	}
	if p := b.Momentum(); p != (vec.Vec3{Y: 6}) {
		t.Errorf("Momentum = %v", p)
	}
	if l := b.AngularMomentum(); l != (vec.Vec3{Z: 6}) {
		t.Errorf("AngularMomentum = %v", l)
	}
}

func TestNewSystemValidation(t *testing.T) {
	bodies := []Body{{Name: "a", Mass: 1}, {Name: "b", Mass: 1, Position: vec.Vec3{X: 1}}}

	if _, err := NewSystem(nil, 0, 0.01); err == nil {
		t.Error("empty system accepted")
	}
	if _, err := NewSystem(bodies, 5, 0.01); err == nil {
		t.Error("out-of-range primary accepted")
	}
	if _, err := NewSystem(bodies, 0, 0); err == nil {
		t.Error("zero dt accepted")
	}
	if _, err := NewSystem([]Body{{Name: "x", Mass: 0}}, 0, 0.01); err == nil {
		t.Error("invalid body accepted")
	}

	sys, err := NewSystem(bodies, 0, 0.01)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	if sys.Time != 0 {
		t.Errorf("new system starts at t=%v", sys.Time)
	}
}

func TestMoveToBarycenter(t *testing.T) {
	bodies := []Body{
		{Name: "a", Mass: 3, Position: vec.Vec3{X: 1}, Velocity: vec.Vec3{Y: 2}},
		{Name: "b", Mass: 1, Position: vec.Vec3{X: -3}, Velocity: vec.Vec3{Y: -2}},
	}
	sys, err := NewSystem(bodies, 0, 0.01)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}

	sys.MoveToBarycenter()
	pos, vel := sys.CenterOfMass()
	if pos.Norm() > 1e-12 {
		t.Errorf("center of mass at %v after recentering", pos)
	}
	if vel.Norm() > 1e-12 {
		t.Errorf("center-of-mass velocity %v after recentering", vel)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	bodies := []Body{{Name: "a", Mass: 1, Position: vec.Vec3{X: 1}}}
	sys, err := NewSystem(bodies, 0, 0.01)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	sys.Time = 2.5

	snap := sys.Snapshot()
	sys.Bodies[0].Position.X = 99

	if snap.Time != 2.5 {
		t.Errorf("snapshot time %v, want 2.5", snap.Time)
	}
	if snap.Bodies[0].Position.X != 1 {
		t.Error("snapshot shares state with the live system")
	}
}
