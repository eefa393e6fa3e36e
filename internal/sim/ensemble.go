package sim

import (
	"context"
	"sync"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Variant is one member of an ensemble run: a label plus a factory producing
// a fresh simulation. The factory runs inside the worker goroutine, so
// variants must not share a System.
type Variant struct {
	Label string
	Build func() (*Simulation, error)
}

// VariantResult is the outcome of integrating one variant.
type VariantResult struct {
	Label     string
	Steps     int
	FinalTime float64
	Drift     physics.Drift
	Err       error
}

// RunEnsemble integrates every variant for the given span of simulated years,
// one goroutine per variant, and reports each one's final conservation drift.
// Per-variant failures land in the result rather than aborting the others.
func RunEnsemble(ctx context.Context, variants []Variant, years float64) []VariantResult {
	results := make([]VariantResult, len(variants))

	var wg sync.WaitGroup
	for i := range variants {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			v := variants[idx]
			results[idx].Label = v.Label

			s, err := v.Build()
			if err != nil {
				results[idx].Err = err
				return
			}

			steps := int(years / s.sys.Dt)
			if err := s.Run(ctx, steps, 0, nil); err != nil {
				results[idx].Err = err
			}
			results[idx].Steps = s.Steps()
			results[idx].FinalTime = s.Time()
			results[idx].Drift = s.Conservation()
		}(i)
	}
	wg.Wait()

	return results
}
