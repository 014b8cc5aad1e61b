package indicator

// SMA returns the arithmetic mean of the last period prices.
func SMA(prices []float64, period int) (float64, error) {
	window, err := tail(prices, period, "SMA")
	if err != nil {
		return 0, err
	}

	return mean(window), nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
