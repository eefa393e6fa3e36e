package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vec"
)

// sunEarth builds a two-body system with a circular 1 AU orbit, recentered on
// the barycenter.
func sunEarth(t *testing.T, dt float64) *model.System {
	t.Helper()

	const earthMass = 3.0e-6
	v := math.Sqrt(physics.G * (1 + earthMass) / 1.0)

	bodies := []model.Body{
		{Name: "Sun", Mass: 1},
		{Name: "Earth", Mass: earthMass, Position: vec.Vec3{X: 1}, Velocity: vec.Vec3{Y: v}},
	}
	sys, err := model.NewSystem(bodies, 0, dt)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	sys.MoveToBarycenter()
	return sys
}

func newtonian() physics.Config {
	cfg := physics.DefaultConfig()
	cfg.Relativity = false
	return cfg
}

func TestEnergyDriftOverOneYear(t *testing.T) {
	sys := sunEarth(t, 1e-4)
	s := New(sys, newtonian())

	if err := s.Run(context.Background(), 10000, 0, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	d := s.Conservation()
	if d.Energy > 1e-5 {
		t.Errorf("energy drift %v after one year, want < 1e-5", d.Energy)
	}
	if d.AngularMomentum > 1e-10 {
		t.Errorf("angular momentum drift %v, want < 1e-10", d.AngularMomentum)
	}
}

func TestOrbitalPeriodRecovered(t *testing.T) {
	const dt = 5e-4
	sys := sunEarth(t, dt)
	s := New(sys, newtonian())

	el, err := s.ElementsOf(1)
	if err != nil {
		t.Fatalf("ElementsOf: %v", err)
	}
	if math.Abs(el.SemiMajorAxis-1) > 1e-3 {
		t.Errorf("a = %v AU, want 1 within 0.1%%", el.SemiMajorAxis)
	}
	mu := s.Config().G * (sys.Bodies[0].Mass + sys.Bodies[1].Mass)
	predicted := el.Period(mu)

	// Integrate past one revolution and locate the 2π crossing of the
	// unwrapped Sun→Earth angle by linear interpolation.
	angleOf := func() float64 {
		r := sys.Bodies[1].Position.Sub(sys.Bodies[0].Position)
		return math.Atan2(r.Y, r.X)
	}

	prev := angleOf()
	unwrapped := 0.0
	var measured float64
	for i := 0; i < 3000; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		cur := angleOf()
		d := cur - prev
		if d < -math.Pi {
			d += 2 * math.Pi
		} else if d > math.Pi {
			d -= 2 * math.Pi
		}
		if unwrapped < 2*math.Pi && unwrapped+d >= 2*math.Pi {
			frac := (2*math.Pi - unwrapped) / d
			measured = s.Time() - dt + frac*dt
		}
		unwrapped += d
		prev = cur
	}
	if measured == 0 {
		t.Fatal("orbit never completed a revolution")
	}

	if rel := math.Abs(measured-predicted) / predicted; rel > 1e-3 {
		t.Errorf("measured period %v yr vs predicted %v yr (rel err %v)", measured, predicted, rel)
	}
}

func TestRelativityOffMatchesInfiniteLightSpeed(t *testing.T) {
	// With c = +Inf the 1PN factor is exactly zero, so the trajectories must
	// agree to the bit with the correction disabled.
	newtCfg := newtonian()
	pnCfg := physics.DefaultConfig()
	pnCfg.Relativity = true
	pnCfg.LightSpeed = math.Inf(1)

	a := New(sunEarth(t, 1e-3), newtCfg)
	b := New(sunEarth(t, 1e-3), pnCfg)

	for i := 0; i < 500; i++ {
		if err := a.Step(); err != nil {
			t.Fatalf("newtonian Step: %v", err)
		}
		if err := b.Step(); err != nil {
			t.Fatalf("pn Step: %v", err)
		}
	}

	for i := range a.sys.Bodies {
		if a.sys.Bodies[i].Position != b.sys.Bodies[i].Position {
			t.Errorf("body %d positions diverged: %+v vs %+v",
				i, a.sys.Bodies[i].Position, b.sys.Bodies[i].Position)
		}
	}
}

func TestRelativityShiftsTrajectory(t *testing.T) {
	newt := New(sunEarth(t, 1e-3), newtonian())
	pn := New(sunEarth(t, 1e-3), physics.DefaultConfig())

	for i := 0; i < 500; i++ {
		if err := newt.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if err := pn.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if newt.sys.Bodies[1].Position == pn.sys.Bodies[1].Position {
		t.Error("1PN correction had no effect on the trajectory")
	}
}

func TestPauseAndTimeScale(t *testing.T) {
	s := New(sunEarth(t, 1e-3), newtonian())

	if !s.TogglePause() {
		t.Fatal("TogglePause should report paused")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance while paused: %v", err)
	}
	if s.Steps() != 0 {
		t.Errorf("paused Advance took %d steps", s.Steps())
	}

	s.TogglePause()
	s.SetTimeScale(4)
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Steps() != 4 {
		t.Errorf("timeScale 4 Advance took %d steps, want 4", s.Steps())
	}

	s.SetTimeScale(1e9)
	if s.TimeScale() != maxTimeScale {
		t.Errorf("time scale not clamped: %v", s.TimeScale())
	}
	s.SetTimeScale(0)
	if s.TimeScale() != minTimeScale {
		t.Errorf("time scale not clamped low: %v", s.TimeScale())
	}
}

func TestFractionalTimeScale(t *testing.T) {
	s := New(sunEarth(t, 1e-3), newtonian())

	// At 0.25x the remainder accumulates across frames: three idle frames,
	// then one step on the fourth.
	s.SetTimeScale(0.25)
	for frame := 1; frame <= 3; frame++ {
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if s.Steps() != 0 {
			t.Fatalf("frame %d took %d steps, want 0", frame, s.Steps())
		}
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Steps() != 1 {
		t.Errorf("four frames at 0.25x took %d steps, want 1", s.Steps())
	}

	// Eight more frames at 0.25x add exactly two steps.
	for frame := 0; frame < 8; frame++ {
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if s.Steps() != 3 {
		t.Errorf("twelve frames at 0.25x took %d steps, want 3", s.Steps())
	}
}

func TestSelectBody(t *testing.T) {
	s := New(sunEarth(t, 1e-3), newtonian())
	if err := s.SelectBody(1); err != nil {
		t.Fatalf("SelectBody(1): %v", err)
	}
	if s.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", s.Selected())
	}
	if err := s.SelectBody(7); err == nil {
		t.Error("SelectBody(7) should fail on a two-body system")
	}
}

func TestElementsOfPrimaryRejected(t *testing.T) {
	s := New(sunEarth(t, 1e-3), newtonian())
	if _, err := s.ElementsOf(0); err == nil {
		t.Error("ElementsOf(primary) should fail")
	}
}

func TestRunHonorsContext(t *testing.T) {
	s := New(sunEarth(t, 1e-3), newtonian())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, 1000, 0, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestStepErrorOnCollapse(t *testing.T) {
	// Two bodies at the same point with zero softening divide by zero.
	bodies := []model.Body{
		{Name: "a", Mass: 1},
		{Name: "b", Mass: 1},
	}
	sys, err := model.NewSystem(bodies, 0, 1e-3)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	cfg := newtonian()
	cfg.Softening = 0

	s := New(sys, cfg)
	err = s.Step()
	if !errors.Is(err, physics.ErrNonFinite) {
		t.Fatalf("err = %v, want ErrNonFinite", err)
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatal("error should be a *StepError")
	}
	if se.Step != 0 {
		t.Errorf("StepError.Step = %d, want 0", se.Step)
	}
}

func TestRunEnsemble(t *testing.T) {
	build := func(dt float64) func() (*Simulation, error) {
		return func() (*Simulation, error) {
			const earthMass = 3.0e-6
			v := math.Sqrt(physics.G * (1 + earthMass))
			bodies := []model.Body{
				{Name: "Sun", Mass: 1},
				{Name: "Earth", Mass: earthMass, Position: vec.Vec3{X: 1}, Velocity: vec.Vec3{Y: v}},
			}
			sys, err := model.NewSystem(bodies, 0, dt)
			if err != nil {
				return nil, err
			}
			sys.MoveToBarycenter()
			return New(sys, newtonian()), nil
		}
	}

	results := RunEnsemble(context.Background(), []Variant{
		{Label: "dt=1e-3", Build: build(1e-3)},
		{Label: "dt=5e-4", Build: build(5e-4)},
	}, 0.5)

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Label, r.Err)
		}
		if r.Drift.Energy > 1e-4 {
			t.Errorf("%s: energy drift %v", r.Label, r.Drift.Energy)
		}
		if r.FinalTime <= 0 {
			t.Errorf("%s: final time %v", r.Label, r.FinalTime)
		}
	}
}
