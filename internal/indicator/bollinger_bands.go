package indicator

// DefaultBandWidth is the number of standard deviations between the middle
// band and the outer bands.
const DefaultBandWidth = 2.0

// Bands holds the three Bollinger Bands.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands builds the bands around sma at k standard deviations.
// Lower <= Middle <= Upper holds for any non-negative stdDev and k.
func BollingerBands(sma, stdDev, k float64) Bands {
	return Bands{
		Upper:  sma + k*stdDev,
		Middle: sma,
		Lower:  sma - k*stdDev,
	}
}

// BollingerBandsOf computes SMA and StdDev over the last period prices and
// returns the bands at DefaultBandWidth.
func BollingerBandsOf(prices []float64, period int) (Bands, error) {
	sma, err := SMA(prices, period)
	if err != nil {
		return Bands{}, err
	}

	stdDev, err := StdDev(prices, period)
	if err != nil {
		return Bands{}, err
	}

	return BollingerBands(sma, stdDev, DefaultBandWidth), nil
}
