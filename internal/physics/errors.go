package physics

import "errors"

// ErrNonFinite indicates a step produced NaN or Inf position or velocity.
// This is fatal for the run: it typically means a near-collision below the
// softening scale or a pathological configuration, and continuing would only
// propagate garbage.
var ErrNonFinite = errors.New("physics: non-finite state after step")
