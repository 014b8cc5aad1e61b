package strategy

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// DefaultMomentumPeriod is the default lookback of the momentum strategy.
const DefaultMomentumPeriod = 14

const (
	momentumOverbought = 70.0
	momentumOversold   = 30.0
)

// Momentum buys positive price momentum unless RSI is overbought and sells
// negative momentum unless RSI is oversold.
type Momentum struct {
	config types.StrategyConfig
}

// NewMomentum validates config and builds the strategy.
func NewMomentum(config types.StrategyConfig) (*Momentum, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Momentum{config: config}, nil
}

func (m *Momentum) Name() Name {
	return NameMomentum
}

func (m *Momentum) Config() types.StrategyConfig {
	return m.config
}

func (m *Momentum) Evaluate(input Input) ([]types.Signal, error) {
	return single(m.AnalyzePeriod(input.Bars, periodOr(input.Period, DefaultMomentumPeriod)))
}

// Analyze evaluates bars with the default period.
func (m *Momentum) Analyze(bars []types.Bar) (types.Signal, error) {
	return m.AnalyzePeriod(bars, DefaultMomentumPeriod)
}

// AnalyzePeriod measures the percent change between the close period-1 bars
// ago and the last close. RSI covers the same lookback; when only period bars
// exist it uses the period-1 deltas they contain.
func (m *Momentum) AnalyzePeriod(bars []types.Bar, period int) (types.Signal, error) {
	if err := checkPeriod(period); err != nil {
		return types.Signal{}, err
	}

	if signal, ok := malformed(bars); ok {
		return signal, nil
	}

	required := max(period, 2)
	if len(bars) < required {
		return insufficientData(bars, required)
	}

	prices := indicator.Closes(bars)
	current := prices[len(prices)-1]
	past := prices[len(prices)-period]
	momentum := (current - past) / past * 100

	rsi, err := indicator.RSI(prices, min(period, len(prices)-1))
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	signal := types.Signal{
		Action:   types.ActionHold,
		Strength: neutralStrength,
		Price:    current,
		Indicators: map[string]any{
			"momentum": momentum,
			"rsi":      rsi,
		},
	}

	switch {
	case momentum > 0 && rsi < momentumOverbought:
		signal.Action = types.ActionBuy
		signal.Strength = score(neutralStrength + momentum*2)
		signal.Reasoning = fmt.Sprintf("Positive momentum (%.2f%%) with RSI at %.2f", momentum, rsi)
	case momentum < 0 && rsi > momentumOversold:
		signal.Action = types.ActionSell
		signal.Strength = score(neutralStrength + math.Abs(momentum)*2)
		signal.Reasoning = fmt.Sprintf("Negative momentum (%.2f%%) with RSI at %.2f", momentum, rsi)
	default:
		signal.Reasoning = fmt.Sprintf("Neutral momentum (%.2f%%), RSI: %.2f", momentum, rsi)
	}

	return signal, nil
}
