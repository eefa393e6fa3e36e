// Package config loads, validates and materializes simulation scenarios. A
// scenario names the integration settings and the bodies; planets are given
// as orbital elements and converted to Cartesian state at build time.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/kepler"
	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	DefaultDt        = 5e-4
	DefaultSoftening = 1e-5
)

type Scenario struct {
	Name       string       `yaml:"name"`
	Dt         float64      `yaml:"dt"`
	Softening  float64      `yaml:"softening"`
	Relativity bool         `yaml:"relativity"`
	PNScope    string       `yaml:"pn_scope"` // "primary" (default) or "all"
	Primary    BodySpec     `yaml:"primary"`
	Planets    []PlanetSpec `yaml:"planets"`
}

// BodySpec describes the physical and display attributes of one body.
type BodySpec struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`   // M☉
	Radius float64 `yaml:"radius"` // AU, display only
	Color  string  `yaml:"color"`
}

// PlanetSpec is a body plus its initial orbit around the primary, all angles
// in radians.
type PlanetSpec struct {
	BodySpec `yaml:",inline"`

	SemiMajorAxis float64 `yaml:"a"`
	Eccentricity  float64 `yaml:"e"`
	Inclination   float64 `yaml:"i"`
	AscendingNode float64 `yaml:"node"`
	ArgPeriapsis  float64 `yaml:"peri"`
	MeanAnomaly   float64 `yaml:"mean"`
}

func DefaultScenario() *Scenario {
	s := GetPreset("sun-earth")
	return s
}

// Load reads a scenario from a YAML file. Fields absent from the file keep
// their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Scenario{Dt: DefaultDt, Softening: DefaultSoftening}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Save writes the scenario as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario invariants before any physics runs.
func (s *Scenario) Validate() error {
	if s.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", s.Dt)
	}
	if s.Softening < 0 {
		return fmt.Errorf("softening must be non-negative, got %g", s.Softening)
	}
	if _, err := s.scope(); err != nil {
		return err
	}
	if s.Primary.Mass <= 0 {
		return fmt.Errorf("primary %q: mass must be positive, got %g", s.Primary.Name, s.Primary.Mass)
	}

	seen := map[string]bool{s.Primary.Name: true}
	for i := range s.Planets {
		p := &s.Planets[i]
		if p.Mass <= 0 {
			return fmt.Errorf("planet %q: mass must be positive, got %g", p.Name, p.Mass)
		}
		if p.SemiMajorAxis <= 0 {
			return fmt.Errorf("planet %q: semi-major axis must be positive, got %g", p.Name, p.SemiMajorAxis)
		}
		if p.Eccentricity < 0 || p.Eccentricity >= 1 {
			return fmt.Errorf("planet %q: eccentricity must be in [0,1), got %g", p.Name, p.Eccentricity)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate body name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (s *Scenario) scope() (physics.PNScope, error) {
	switch s.PNScope {
	case "", "primary":
		return physics.PNPrimaryOnly, nil
	case "all":
		return physics.PNAllPairs, nil
	default:
		return 0, fmt.Errorf("pn_scope must be \"primary\" or \"all\", got %q", s.PNScope)
	}
}

// Build materializes the scenario: converts each planet's elements to state
// vectors around the primary, assembles the system and recenters it on the
// barycenter.
func (s *Scenario) Build() (*model.System, physics.Config, error) {
	if err := s.Validate(); err != nil {
		return nil, physics.Config{}, err
	}
	scope, _ := s.scope()

	pcfg := physics.DefaultConfig()
	pcfg.Softening = s.Softening
	pcfg.Relativity = s.Relativity
	pcfg.Scope = scope

	bodies := make([]model.Body, 0, len(s.Planets)+1)
	bodies = append(bodies, model.Body{
		Name:   s.Primary.Name,
		Mass:   s.Primary.Mass,
		Radius: s.Primary.Radius,
		Color:  s.Primary.Color,
	})

	for i := range s.Planets {
		p := &s.Planets[i]
		el := kepler.Elements{
			SemiMajorAxis: p.SemiMajorAxis,
			Eccentricity:  p.Eccentricity,
			Inclination:   p.Inclination,
			AscendingNode: p.AscendingNode,
			ArgPeriapsis:  p.ArgPeriapsis,
			MeanAnomaly:   p.MeanAnomaly,
		}
		mu := pcfg.G * (s.Primary.Mass + p.Mass)
		pos, vel, converged := el.StateVectors(mu)
		if !converged {
			log.Warn().Str("body", p.Name).Float64("e", p.Eccentricity).
				Msg("kepler solve hit iteration cap, placement is approximate")
		}
		bodies = append(bodies, model.Body{
			Name:     p.Name,
			Mass:     p.Mass,
			Radius:   p.Radius,
			Color:    p.Color,
			Position: pos,
			Velocity: vel,
		})
	}

	sys, err := model.NewSystem(bodies, 0, s.Dt)
	if err != nil {
		return nil, physics.Config{}, err
	}
	sys.MoveToBarycenter()
	return sys, pcfg, nil
}

// Deg converts degrees to radians, a convenience for hand-written scenarios.
func Deg(d float64) float64 { return d * math.Pi / 180 }
