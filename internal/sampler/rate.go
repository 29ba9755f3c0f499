package sampler

import "time"

// rate computes the per-second rate between two counter values, guarding
// against counter wrap and non-positive elapsed time.
func rate(prev, curr uint64, dt time.Duration) uint64 {
	if dt <= 0 || curr < prev {
		return 0
	}
	return uint64(float64(curr-prev) / dt.Seconds())
}
