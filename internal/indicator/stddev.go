package indicator

import "math"

// StdDev returns the population standard deviation of the last period
// prices around their own mean.
func StdDev(prices []float64, period int) (float64, error) {
	window, err := tail(prices, period, "StdDev")
	if err != nil {
		return 0, err
	}

	m := mean(window)

	var squaredDiffSum float64

	for _, p := range window {
		diff := p - m
		squaredDiffSum += diff * diff
	}

	return math.Sqrt(squaredDiffSum / float64(period)), nil
}
