package physics

import "fmt"

// PNScope selects which pairs the relativistic correction applies to. Both
// choices are defensible approximations at 1PN order for a solar-system-scale
// run, so the scope is explicit configuration rather than inferred.
type PNScope int

const (
	// PNPrimaryOnly corrects each non-primary body against the primary mass
	// only. Planet-planet relativistic effects are negligible at this scale.
	PNPrimaryOnly PNScope = iota
	// PNAllPairs applies the same two-body term for every ordered pair.
	PNAllPairs
)

func (s PNScope) String() string {
	switch s {
	case PNPrimaryOnly:
		return "primary"
	case PNAllPairs:
		return "all"
	default:
		return fmt.Sprintf("PNScope(%d)", int(s))
	}
}

// Config carries the physical constants and numeric knobs for one simulation
// instance. It is passed explicitly into every physics call so independent
// systems with different settings can coexist in one process.
type Config struct {
	G          float64 // gravitational constant, AU³/(yr²·M☉)
	Softening  float64 // softening length ε, AU
	LightSpeed float64 // c in AU/yr, only read when Relativity is on
	Relativity bool
	Scope      PNScope
}

// DefaultConfig returns the standard solar-system configuration: exact
// Keplerian G, a softening length of ~1500 km, the physical speed of light,
// and the 1PN correction enabled against the primary only.
func DefaultConfig() Config {
	return Config{
		G:          G,
		Softening:  1e-5,
		LightSpeed: CAUPerYear,
		Relativity: true,
		Scope:      PNPrimaryOnly,
	}
}
