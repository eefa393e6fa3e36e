package config

import "sort"

var sun = BodySpec{Name: "Sun", Mass: 1.0, Radius: 4.65e-3, Color: "#ffcc33"}

// Planet masses in M☉, radii in AU, elements near epoch J2000 with angles in
// radians.
var (
	mercury = PlanetSpec{
		BodySpec:      BodySpec{Name: "Mercury", Mass: 1.660e-7, Radius: 1.63e-5, Color: "#b5b5b5"},
		SemiMajorAxis: 0.38710, Eccentricity: 0.20564, Inclination: 0.12226,
		AscendingNode: 0.84354, ArgPeriapsis: 0.50832, MeanAnomaly: 3.05077,
	}
	venus = PlanetSpec{
		BodySpec:      BodySpec{Name: "Venus", Mass: 2.447e-6, Radius: 4.05e-5, Color: "#e6c87a"},
		SemiMajorAxis: 0.72333, Eccentricity: 0.00678, Inclination: 0.05924,
		AscendingNode: 1.33832, ArgPeriapsis: 0.95735, MeanAnomaly: 0.87467,
	}
	earth = PlanetSpec{
		BodySpec:      BodySpec{Name: "Earth", Mass: 3.003e-6, Radius: 4.26e-5, Color: "#3b76f0"},
		SemiMajorAxis: 1.00000, Eccentricity: 0.01671, Inclination: 0.0,
		AscendingNode: 0.0, ArgPeriapsis: 1.79660, MeanAnomaly: 6.23906,
	}
	mars = PlanetSpec{
		BodySpec:      BodySpec{Name: "Mars", Mass: 3.227e-7, Radius: 2.27e-5, Color: "#d1603d"},
		SemiMajorAxis: 1.52368, Eccentricity: 0.09340, Inclination: 0.03229,
		AscendingNode: 0.86497, ArgPeriapsis: 5.00040, MeanAnomaly: 0.33847,
	}
	jupiter = PlanetSpec{
		BodySpec:      BodySpec{Name: "Jupiter", Mass: 9.545e-4, Radius: 4.78e-4, Color: "#d8a262"},
		SemiMajorAxis: 5.20260, Eccentricity: 0.04849, Inclination: 0.02278,
		AscendingNode: 1.75504, ArgPeriapsis: 4.77988, MeanAnomaly: 0.34941,
	}
	saturn = PlanetSpec{
		BodySpec:      BodySpec{Name: "Saturn", Mass: 2.858e-4, Radius: 4.03e-4, Color: "#e0cda8"},
		SemiMajorAxis: 9.55491, Eccentricity: 0.05551, Inclination: 0.04337,
		AscendingNode: 1.98383, ArgPeriapsis: 5.92354, MeanAnomaly: 5.53305,
	}
	uranus = PlanetSpec{
		BodySpec:      BodySpec{Name: "Uranus", Mass: 4.366e-5, Radius: 1.71e-4, Color: "#9ad6d6"},
		SemiMajorAxis: 19.21845, Eccentricity: 0.04630, Inclination: 0.01349,
		AscendingNode: 1.29165, ArgPeriapsis: 1.69259, MeanAnomaly: 2.48235,
	}
	neptune = PlanetSpec{
		BodySpec:      BodySpec{Name: "Neptune", Mass: 5.151e-5, Radius: 1.65e-4, Color: "#4b70dd"},
		SemiMajorAxis: 30.11039, Eccentricity: 0.00899, Inclination: 0.03089,
		AscendingNode: 2.30001, ArgPeriapsis: 4.82297, MeanAnomaly: 4.47193,
	}
)

var Presets = map[string]*Scenario{
	"sun-earth": {
		Name: "sun-earth", Dt: 5e-4, Softening: DefaultSoftening,
		Primary: sun,
		Planets: []PlanetSpec{earth},
	},
	"inner": {
		Name: "inner", Dt: 5e-4, Softening: DefaultSoftening,
		Relativity: true, PNScope: "primary",
		Primary: sun,
		Planets: []PlanetSpec{mercury, venus, earth, mars},
	},
	"solar": {
		Name: "solar", Dt: 1e-3, Softening: DefaultSoftening,
		Relativity: true, PNScope: "primary",
		Primary: sun,
		Planets: []PlanetSpec{mercury, venus, earth, mars, jupiter, saturn, uranus, neptune},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown. The copy
// means callers can tweak dt or toggles without mutating the shared table.
func GetPreset(name string) *Scenario {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	s := *p
	s.Planets = append([]PlanetSpec(nil), p.Planets...)
	return &s
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
