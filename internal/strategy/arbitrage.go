package strategy

import (
	"fmt"
	"sort"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

const (
	// DefaultFeeRate is charged for an exchange with no known fee (0.1%).
	DefaultFeeRate = 0.001
	// MinProfitMargin is the spread, in percentage points, that must remain
	// after both legs' fees.
	MinProfitMargin = 0.5

	arbitrageBase       = 60.0
	arbitrageMultiplier = 5.0
)

// Arbitrage scans every pair of exchanges for a fee-adjusted price spread.
type Arbitrage struct {
	config types.StrategyConfig
}

// NewArbitrage validates config and builds the strategy.
func NewArbitrage(config types.StrategyConfig) (*Arbitrage, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Arbitrage{config: config}, nil
}

func (a *Arbitrage) Name() Name {
	return NameArbitrage
}

func (a *Arbitrage) Config() types.StrategyConfig {
	return a.config
}

func (a *Arbitrage) Evaluate(input Input) ([]types.Signal, error) {
	if len(input.Quotes) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "arbitrage requires exchange quotes")
	}

	exchanges := make([]string, 0, len(input.Quotes))
	for exchange := range input.Quotes {
		exchanges = append(exchanges, exchange)
	}

	sort.Strings(exchanges)

	for _, exchange := range exchanges {
		if err := input.Quotes[exchange].Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "quote on %s", exchange)
		}
	}

	prices, fees := types.SplitQuotes(input.Quotes)

	return a.Analyze(prices, fees)
}

// Analyze returns one buy signal per exchange pair whose spread beats the
// summed fees by MinProfitMargin, or a single hold when no pair does.
//
// The spread is measured against the sell price, so quotes of 100 and 110
// give a 9.09% spread. Exchanges are scanned in name order so the output is
// deterministic. An exchange missing from fees pays DefaultFeeRate.
func (a *Arbitrage) Analyze(prices map[string]float64, fees map[string]float64) ([]types.Signal, error) {
	if len(prices) == 0 {
		return nil, errors.NewInsufficientDataError(1, 0, "", "arbitrage needs at least one exchange price")
	}

	exchanges := make([]string, 0, len(prices))
	for exchange, price := range prices {
		if invalidPrice(price) {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "price on %s must be a positive number, got %f", exchange, price)
		}

		if fee, ok := fees[exchange]; ok && !types.ValidFeeRate(fee) {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "fee rate on %s must be in [0, 1), got %f", exchange, fee)
		}

		exchanges = append(exchanges, exchange)
	}

	sort.Strings(exchanges)

	var signals []types.Signal

	for i := 0; i < len(exchanges); i++ {
		for j := i + 1; j < len(exchanges); j++ {
			if signal, ok := a.evaluatePair(exchanges[i], exchanges[j], prices, fees); ok {
				signals = append(signals, signal)
			}
		}
	}

	if len(signals) > 0 {
		return signals, nil
	}

	return []types.Signal{{
		Action:     types.ActionHold,
		Strength:   0,
		Price:      prices[exchanges[0]],
		Reasoning:  "No arbitrage opportunities found",
		Indicators: map[string]any{},
	}}, nil
}

func (a *Arbitrage) evaluatePair(first, second string, prices, fees map[string]float64) (types.Signal, bool) {
	buyExchange, sellExchange := first, second
	if prices[second] < prices[first] {
		buyExchange, sellExchange = second, first
	}

	buyPrice := prices[buyExchange]
	sellPrice := prices[sellExchange]

	spread := (sellPrice - buyPrice) / sellPrice * 100
	totalFees := (feeRate(fees, buyExchange) + feeRate(fees, sellExchange)) * 100

	if spread <= totalFees+MinProfitMargin {
		return types.Signal{}, false
	}

	profit := spread - totalFees

	return types.Signal{
		Action:   types.ActionBuy,
		Strength: score(arbitrageBase + spread*arbitrageMultiplier),
		Price:    buyPrice,
		Reasoning: fmt.Sprintf("Arbitrage opportunity: buy on %s at %.2f, sell on %s at %.2f (%.2f%% spread, %.2f%% after fees)",
			buyExchange, buyPrice, sellExchange, sellPrice, spread, profit),
		Indicators: map[string]any{
			"buyExchange":      buyExchange,
			"sellExchange":     sellExchange,
			"buyPrice":         buyPrice,
			"sellPrice":        sellPrice,
			"spreadPercentage": spread,
			"totalFees":        totalFees,
			"profitPercentage": profit,
		},
	}, true
}

func feeRate(fees map[string]float64, exchange string) float64 {
	if fee, ok := fees[exchange]; ok {
		return fee
	}

	return DefaultFeeRate
}
