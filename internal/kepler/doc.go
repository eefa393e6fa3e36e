// Package kepler converts between Cartesian state vectors and classical
// orbital elements for bound two-body orbits. Both directions take mu
// explicitly, so callers decide which masses participate; the package itself
// knows nothing about the body store.
package kepler
