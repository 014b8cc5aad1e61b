package indicator

// EMA returns the exponential moving average of prices with smoothing
// factor k = 2/(period+1).
//
// The recurrence is seeded with prices[0] and runs over the whole series,
// not with an SMA warm-up over the first period points. Downstream consumers
// rely on these exact values, so keep the seeding as is.
func EMA(prices []float64, period int) (float64, error) {
	if _, err := tail(prices, period, "EMA"); err != nil {
		return 0, err
	}

	return exponentialAverage(prices, period), nil
}

// exponentialAverage runs the EMA recurrence without a window check.
// A single point series returns that point.
func exponentialAverage(prices []float64, period int) float64 {
	k := 2.0 / float64(period+1)

	ema := prices[0]
	for _, price := range prices[1:] {
		ema = (price-ema)*k + ema
	}

	return ema
}
