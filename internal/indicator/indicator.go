// Package indicator implements stateless technical indicators over ordered
// price series. Every function reads the tail of its input and never
// mutates it. Calling an indicator with fewer points than its window
// returns an *errors.InsufficientDataError.
package indicator

import (
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Closes extracts closing prices in bar order.
func Closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}

	return out
}

// Highs extracts high prices in bar order.
func Highs(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.High
	}

	return out
}

// Lows extracts low prices in bar order.
func Lows(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Low
	}

	return out
}

// Volumes extracts volumes in bar order.
func Volumes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Volume
	}

	return out
}

// Highest returns the maximum of the last period values.
func Highest(values []float64, period int) (float64, error) {
	window, err := tail(values, period, "Highest")
	if err != nil {
		return 0, err
	}

	highest := window[0]
	for _, v := range window[1:] {
		if v > highest {
			highest = v
		}
	}

	return highest, nil
}

// Lowest returns the minimum of the last period values.
func Lowest(values []float64, period int) (float64, error) {
	window, err := tail(values, period, "Lowest")
	if err != nil {
		return 0, err
	}

	lowest := window[0]
	for _, v := range window[1:] {
		if v < lowest {
			lowest = v
		}
	}

	return lowest, nil
}

// tail returns the last period elements of values after checking the window.
func tail(values []float64, period int, name string) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "%s: period must be a positive integer, got %d", name, period)
	}

	if len(values) < period {
		return nil, errors.NewInsufficientDataErrorf(period, len(values), "", "insufficient data points for %s: required %d, got %d", name, period, len(values))
	}

	return values[len(values)-period:], nil
}
