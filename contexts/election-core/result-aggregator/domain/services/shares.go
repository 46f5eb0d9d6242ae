package services

import "math"

// Share returns the percentage votes/total*100 rounded half to even at two
// decimals. A zero total yields 0.0 for every option rather than an error.
func Share(votes, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	raw := float64(votes) / float64(total) * 100
	return math.RoundToEven(raw*100) / 100
}
