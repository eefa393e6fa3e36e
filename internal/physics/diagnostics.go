package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/vec"
)

// TotalEnergy returns the system's kinetic plus potential energy in
// AU²/yr²·M☉. The potential uses the same softening as the force law so the
// reported quantity matches what the integrator actually conserves.
func TotalEnergy(bodies []model.Body, cfg Config) float64 {
	kinetic := 0.0
	for i := range bodies {
		kinetic += bodies[i].KineticEnergy()
	}

	eps2 := cfg.Softening * cfg.Softening
	potential := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			dist := math.Sqrt(bodies[j].Position.Sub(bodies[i].Position).Norm2() + eps2)
			potential -= cfg.G * bodies[i].Mass * bodies[j].Mass / dist
		}
	}
	return kinetic + potential
}

// TotalAngularMomentum returns Σ m_i (r_i × v_i) about the origin.
func TotalAngularMomentum(bodies []model.Body) vec.Vec3 {
	var total vec.Vec3
	for i := range bodies {
		total = total.Add(bodies[i].AngularMomentum())
	}
	return total
}

// TotalMomentum returns Σ m_i v_i.
func TotalMomentum(bodies []model.Body) vec.Vec3 {
	var total vec.Vec3
	for i := range bodies {
		total = total.Add(bodies[i].Momentum())
	}
	return total
}

// Snapshot is a conservation sample tagged with the simulation time it was
// taken at. A baseline is captured at t=0 and later samples are compared
// against it; drift here is a health indicator only and never feeds back
// into the integration.
type Snapshot struct {
	Time            float64
	Energy          float64
	Momentum        vec.Vec3
	AngularMomentum vec.Vec3
}

// Sample computes a conservation snapshot of the current state.
func Sample(bodies []model.Body, t float64, cfg Config) Snapshot {
	return Snapshot{
		Time:            t,
		Energy:          TotalEnergy(bodies, cfg),
		Momentum:        TotalMomentum(bodies),
		AngularMomentum: TotalAngularMomentum(bodies),
	}
}

// Drift holds relative conservation errors against a baseline.
type Drift struct {
	Energy          float64 // |ΔE / E₀|
	AngularMomentum float64 // |ΔL| / |L₀|
}

// DriftFrom reports the snapshot's relative drift against a baseline. Zero
// baselines yield zero drift rather than dividing by zero.
func (s Snapshot) DriftFrom(baseline Snapshot) Drift {
	var d Drift
	if baseline.Energy != 0 {
		d.Energy = math.Abs((s.Energy - baseline.Energy) / baseline.Energy)
	}
	if l0 := baseline.AngularMomentum.Norm(); l0 != 0 {
		d.AngularMomentum = s.AngularMomentum.Sub(baseline.AngularMomentum).Norm() / l0
	}
	return d
}
