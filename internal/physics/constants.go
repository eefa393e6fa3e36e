package physics

import "math"

// Canonical simulation units: length in astronomical units, time in Julian
// years, mass in solar masses. In these units Kepler's third law gives
// G = 4π² exactly, which is why they are used throughout.
const (
	AUMeters       = 149_597_870_700.0 // IAU definition
	SecondsPerDay  = 86_400.0
	DaysPerYear    = 365.25
	SecondsPerYear = SecondsPerDay * DaysPerYear

	SolarMassKg = 1.98847e30
	GSI         = 6.67430e-11   // m³/(kg·s²)
	CSI         = 299_792_458.0 // m/s
)

// G is the gravitational constant in AU³/(yr²·M☉).
var G = 4.0 * math.Pi * math.Pi

// CAUPerYear is the speed of light in AU/yr (~6.32e4), the natural scale for
// the 1PN correction.
var CAUPerYear = CSI * SecondsPerYear / AUMeters
