package indicator

import "github.com/rxtech-lab/argo-signals/pkg/errors"

// DefaultRSIPeriod is the customary RSI lookback.
const DefaultRSIPeriod = 14

// zeroLossRS is the relative strength used when the window has no losses.
const zeroLossRS = 100.0

// RSI returns the relative strength index over the trailing period deltas,
// which needs period+1 prices.
//
// Gains and losses are plain averages over the window (no Wilder smoothing).
// A window without losses uses RS = 100, so a series that only rises reads
// about 99.0099 rather than 100.
func RSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "RSI: period must be a positive integer, got %d", period)
	}

	if len(prices) < period+1 {
		return 0, errors.NewInsufficientDataErrorf(period+1, len(prices), "", "insufficient data points for RSI: required %d, got %d", period+1, len(prices))
	}

	var gains, losses float64

	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := zeroLossRS
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}

	return 100 - 100/(1+rs), nil
}
