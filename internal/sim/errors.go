package sim

import "fmt"

// StepError tags an integration failure with the step index and simulation
// time it occurred at, so logs can say where a run blew up.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f yr): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
