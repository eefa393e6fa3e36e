package analysis

// DominantPeriod estimates the strongest periodicity in a uniformly sampled
// series with sample spacing dt. The series is mean-subtracted and truncated
// to the largest power-of-two prefix, and the spectral peak is refined by
// parabolic interpolation over its neighbors.
//
// ok is false when the series is too short or has no off-DC peak, e.g. a body
// that never completed a revolution inside the recorded span.
func DominantPeriod(data []float64, dt float64) (period float64, ok bool) {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	if n < 8 || dt <= 0 {
		return 0, false
	}

	mean := 0.0
	for _, v := range data[:n] {
		mean += v
	}
	mean /= float64(n)

	detrended := make([]float64, n)
	for i := range detrended {
		detrended[i] = data[i] - mean
	}

	ps := PowerSpectrum(detrended)

	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] || peak == 0 {
			peak = k
		}
	}
	if peak == 0 || ps[peak] == 0 {
		return 0, false
	}

	// Parabolic refinement needs both neighbors; at the edges use the raw bin.
	k := float64(peak)
	if peak > 1 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			k += 0.5 * (a - c) / denom
		}
	}

	freq := k / (float64(n) * dt)
	if freq <= 0 {
		return 0, false
	}
	return 1 / freq, true
}
