package stats

// ClipPercentiles returns a copy of x clipped to its lower and upper
// percentiles. Long-tailed counts stay readable on a linear axis.
func ClipPercentiles(x []float64, lower, upper float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	lo, hi := Percentile(x, lower), Percentile(x, upper)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = clamp(v, lo, hi)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
