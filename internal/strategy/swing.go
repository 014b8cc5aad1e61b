package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// DefaultSwingPeriod is the minimum series length checked before the
// indicators; SMA200 itself needs 200 bars.
const DefaultSwingPeriod = 50

const (
	swingFastPeriod = 50
	swingSlowPeriod = 200
	swingStrength   = 85.0
)

// Swing trades golden and death crosses confirmed by MACD and the close.
type Swing struct {
	config types.StrategyConfig
}

// NewSwing validates config and builds the strategy.
func NewSwing(config types.StrategyConfig) (*Swing, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Swing{config: config}, nil
}

func (s *Swing) Name() Name {
	return NameSwing
}

func (s *Swing) Config() types.StrategyConfig {
	return s.config
}

func (s *Swing) Evaluate(input Input) ([]types.Signal, error) {
	return single(s.AnalyzePeriod(input.Bars, periodOr(input.Period, DefaultSwingPeriod)))
}

// Analyze evaluates bars with the default period.
func (s *Swing) Analyze(bars []types.Bar) (types.Signal, error) {
	return s.AnalyzePeriod(bars, DefaultSwingPeriod)
}

// AnalyzePeriod buys when SMA50 > SMA200, the MACD histogram is positive and
// the close is above SMA50, and sells on the mirror image.
func (s *Swing) AnalyzePeriod(bars []types.Bar, period int) (types.Signal, error) {
	if err := checkPeriod(period); err != nil {
		return types.Signal{}, err
	}

	if signal, ok := malformed(bars); ok {
		return signal, nil
	}

	if len(bars) < period {
		return insufficientData(bars, period)
	}

	prices := indicator.Closes(bars)

	sma50, err := indicator.SMA(prices, swingFastPeriod)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	sma200, err := indicator.SMA(prices, swingSlowPeriod)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	macd, err := indicator.MACD(prices)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	current := prices[len(prices)-1]

	signal := types.Signal{
		Action:   types.ActionHold,
		Strength: neutralStrength,
		Price:    current,
		Indicators: map[string]any{
			"sma50":      sma50,
			"sma200":     sma200,
			"macdLine":   macd.MACDLine,
			"signalLine": macd.SignalLine,
			"histogram":  macd.Histogram,
		},
	}

	switch {
	case sma50 > sma200 && macd.Histogram > 0 && current > sma50:
		signal.Action = types.ActionBuy
		signal.Strength = swingStrength
		signal.Reasoning = "Golden cross with positive MACD, strong uptrend"
	case sma50 < sma200 && macd.Histogram < 0 && current < sma50:
		signal.Action = types.ActionSell
		signal.Strength = swingStrength
		signal.Reasoning = "Death cross with negative MACD, strong downtrend"
	default:
		signal.Reasoning = "Waiting for clear trend confirmation"
	}

	return signal, nil
}
