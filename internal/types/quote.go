package types

import "github.com/rxtech-lab/argo-signals/pkg/errors"

// PriceQuote is the current price and taker fee of one exchange.
type PriceQuote struct {
	// Price is the last traded price on the exchange
	Price float64 `json:"price" yaml:"price" validate:"gt=0"`
	// FeeRate is the fraction charged per fill, e.g. 0.001 for 0.1%
	FeeRate float64 `json:"feeRate" yaml:"feeRate" validate:"gte=0,lt=1"`
}

// Validate checks price > 0 and fee rate in [0, 1), rejecting NaN and Inf.
func (q PriceQuote) Validate() error {
	if !PositiveFinite(q.Price) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "quote price must be positive, got %f", q.Price)
	}

	if !ValidFeeRate(q.FeeRate) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "quote fee rate must be in [0, 1), got %f", q.FeeRate)
	}

	return nil
}

// ValidFeeRate reports whether fee is a fraction in [0, 1).
func ValidFeeRate(fee float64) bool {
	return fee >= 0 && fee < 1
}

// SplitQuotes returns the price and fee maps keyed by exchange.
func SplitQuotes(quotes map[string]PriceQuote) (prices map[string]float64, fees map[string]float64) {
	prices = make(map[string]float64, len(quotes))
	fees = make(map[string]float64, len(quotes))

	for exchange, quote := range quotes {
		prices[exchange] = quote.Price
		fees[exchange] = quote.FeeRate
	}

	return prices, fees
}
