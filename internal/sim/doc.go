// Package sim layers run control on top of the physics engine: stepping,
// pause and time-scale handling, conservation tracking against a baseline,
// osculating-element queries, and concurrent ensemble runs.
package sim
