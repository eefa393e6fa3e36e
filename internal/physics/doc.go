// Package physics is the numerical core of the simulator: softened Newtonian
// gravity, the optional first post-Newtonian correction, the velocity-Verlet
// integrator, and conservation diagnostics.
//
// All functions are stateless transformers over a []model.Body slice; the
// only state they touch is the bodies' own position/velocity/acceleration
// fields. Constants and numeric knobs travel in an explicit [Config] value so
// independent simulations can run side by side.
//
// # Units
//
// Lengths in AU, time in Julian years, mass in solar masses. G = 4π² in these
// units, which makes a circular orbit at 1 AU around 1 M☉ take exactly one
// year.
package physics
