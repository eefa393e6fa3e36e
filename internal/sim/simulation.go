package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/kepler"
	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	minTimeScale = 0.125
	maxTimeScale = 1024
)

// Simulation drives one system forward in time. It owns the runtime control
// state (pause, time scale, selection) and the conservation baseline; the
// numerical work itself lives in the physics package.
//
// Not safe for concurrent use. The TUI and the headless runner each drive a
// Simulation from a single goroutine.
type Simulation struct {
	sys       *model.System
	cfg       physics.Config
	baseline  physics.Snapshot
	steps     int
	paused    bool
	timeScale float64
	pending   float64
	selected  int
}

// New prepares a simulation: computes the initial accelerations so the first
// Verlet half-kick uses a(t₀) rather than zero, and captures the conservation
// baseline at t₀.
func New(sys *model.System, cfg physics.Config) *Simulation {
	physics.Accelerations(sys.Bodies, cfg)
	if cfg.Relativity {
		physics.PNCorrections(sys.Bodies, sys.Primary, cfg)
	}
	return &Simulation{
		sys:       sys,
		cfg:       cfg,
		baseline:  physics.Sample(sys.Bodies, sys.Time, cfg),
		timeScale: 1,
		selected:  sys.Primary,
	}
}

// Step advances the system by exactly one dt tick.
func (s *Simulation) Step() error {
	if err := physics.Step(s.sys.Bodies, s.sys.Primary, s.sys.Dt, s.cfg); err != nil {
		return &StepError{Step: s.steps, Time: s.sys.Time, Err: err}
	}
	s.sys.Time += s.sys.Dt
	s.steps++
	return nil
}

// Advance runs one display frame's worth of integration: timeScale dt steps
// per frame on average, or nothing while paused. Fractional scales carry a
// remainder across frames, so 0.25x steps once every four frames. dt itself
// never changes, so speeding up the display cannot degrade the integration.
func (s *Simulation) Advance() error {
	if s.paused {
		return nil
	}
	s.pending += s.timeScale
	n := int(s.pending)
	s.pending -= float64(n)
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run integrates for a fixed number of steps, checking ctx between steps.
// When observe is non-nil it is called every sampleEvery steps with a state
// snapshot and the conservation drift at that instant.
func (s *Simulation) Run(ctx context.Context, steps, sampleEvery int, observe func(model.Snapshot, physics.Drift)) error {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return err
		}
		if observe != nil && sampleEvery > 0 && (i+1)%sampleEvery == 0 {
			observe(s.sys.Snapshot(), s.Conservation())
		}
	}
	return nil
}

// Snapshot returns an immutable copy of the current state.
func (s *Simulation) Snapshot() model.Snapshot { return s.sys.Snapshot() }

// Time returns the simulation clock in years.
func (s *Simulation) Time() float64 { return s.sys.Time }

// Steps returns the number of integrator steps taken so far.
func (s *Simulation) Steps() int { return s.steps }

// Config returns the active physics configuration.
func (s *Simulation) Config() physics.Config { return s.cfg }

// System exposes the underlying system for persistence. Callers must not
// mutate it while the simulation is running.
func (s *Simulation) System() *model.System { return s.sys }

// Conservation reports relative energy and angular-momentum drift against the
// t₀ baseline.
func (s *Simulation) Conservation() physics.Drift {
	return physics.Sample(s.sys.Bodies, s.sys.Time, s.cfg).DriftFrom(s.baseline)
}

// Diagnostics returns the raw conservation sample at the current instant.
func (s *Simulation) Diagnostics() physics.Snapshot {
	return physics.Sample(s.sys.Bodies, s.sys.Time, s.cfg)
}

// ElementsOf computes the osculating elements of body i relative to the
// primary, using mu = G·(m_primary + m_i).
func (s *Simulation) ElementsOf(i int) (kepler.Elements, error) {
	if i < 0 || i >= len(s.sys.Bodies) {
		return kepler.Elements{}, fmt.Errorf("sim: body index %d out of range [0,%d)", i, len(s.sys.Bodies))
	}
	if i == s.sys.Primary {
		return kepler.Elements{}, fmt.Errorf("sim: body %q is the primary, no elements", s.sys.Bodies[i].Name)
	}
	p := &s.sys.Bodies[s.sys.Primary]
	b := &s.sys.Bodies[i]
	mu := s.cfg.G * (p.Mass + b.Mass)
	return kepler.FromStateVectors(b.Position.Sub(p.Position), b.Velocity.Sub(p.Velocity), mu)
}

// TogglePause flips the paused flag and reports the new value.
func (s *Simulation) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether Advance currently does nothing.
func (s *Simulation) Paused() bool { return s.paused }

// SetTimeScale sets the steps-per-frame multiplier, clamped to a sane range.
func (s *Simulation) SetTimeScale(scale float64) {
	s.timeScale = math.Max(minTimeScale, math.Min(maxTimeScale, scale))
}

// TimeScale returns the current steps-per-frame multiplier.
func (s *Simulation) TimeScale() float64 { return s.timeScale }

// SetRelativity enables or disables the 1PN correction at runtime. The
// stored accelerations are recomputed immediately so the next half-kick is
// consistent with the new force law.
func (s *Simulation) SetRelativity(on bool) {
	if s.cfg.Relativity == on {
		return
	}
	s.cfg.Relativity = on
	physics.Accelerations(s.sys.Bodies, s.cfg)
	if on {
		physics.PNCorrections(s.sys.Bodies, s.sys.Primary, s.cfg)
	}
}

// SelectBody marks body i as the UI selection target.
func (s *Simulation) SelectBody(i int) error {
	if i < 0 || i >= len(s.sys.Bodies) {
		return fmt.Errorf("sim: body index %d out of range [0,%d)", i, len(s.sys.Bodies))
	}
	s.selected = i
	return nil
}

// Selected returns the index of the currently selected body.
func (s *Simulation) Selected() int { return s.selected }
