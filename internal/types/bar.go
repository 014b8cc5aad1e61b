package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Bar is one time-sampled OHLCV market observation.
// Bars are produced by the market data collaborator and consumed read-only.
type Bar struct {
	// Time is the start of the sampling interval
	Time time.Time `json:"time"`
	// Open is the first traded price of the interval
	Open float64 `json:"open"`
	// High is the highest traded price of the interval
	High float64 `json:"high"`
	// Low is the lowest traded price of the interval
	Low float64 `json:"low"`
	// Close is the last traded price of the interval
	Close float64 `json:"close"`
	// Volume is the traded quantity of the interval
	Volume float64 `json:"volume"`
}

// Finite reports whether every price and the volume are real numbers.
func (b Bar) Finite() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// Validate checks the OHLCV invariants of a single bar.
func (b Bar) Validate() error {
	if !b.Finite() {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar at %s has a NaN or infinite value", b.Time.Format(time.RFC3339))
	}

	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar at %s has a non-positive price", b.Time.Format(time.RFC3339))
	}

	if b.Low > b.High {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar at %s has low %.4f above high %.4f", b.Time.Format(time.RFC3339), b.Low, b.High)
	}

	if b.Open < b.Low || b.Open > b.High || b.Close < b.Low || b.Close > b.High {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar at %s has open/close outside [low, high]", b.Time.Format(time.RFC3339))
	}

	if b.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar at %s has negative volume", b.Time.Format(time.RFC3339))
	}

	return nil
}

// ValidateBars checks every bar and that timestamps are strictly increasing.
// Strategies never call this; it is offered to collaborators that want to
// reject malformed series before evaluation.
func ValidateBars(bars []Bar) error {
	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return err
		}

		if i > 0 && !bar.Time.After(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidParameter, "bar %d at %s is not after the previous bar", i, bar.Time.Format(time.RFC3339))
		}
	}

	return nil
}

// LastClose returns the close of the most recent bar.
func LastClose(bars []Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.NewInsufficientDataError(1, 0, "", "empty bar series has no last close")
	}

	return bars[len(bars)-1].Close, nil
}
