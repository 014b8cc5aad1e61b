package strategy

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// DefaultScalpingPeriod is the minimum series length checked before the
// EMAs; the slow EMA itself needs 15 bars.
const DefaultScalpingPeriod = 5

const (
	scalpingFastPeriod = 5
	scalpingSlowPeriod = 15
	scalpingMinSpread  = 0.1
	scalpingStrength   = 80.0
)

// Scalping follows the fast/slow EMA crossover once the two have separated.
type Scalping struct {
	config types.StrategyConfig
}

// NewScalping validates config, including targetProfit > 0 and
// maxHoldTime > 0.
func NewScalping(config types.StrategyConfig) (*Scalping, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if !types.PositiveFinite(config.TargetProfit) {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "targetProfit must be a positive percentage, got %f", config.TargetProfit)
	}

	if config.MaxHoldTime <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "maxHoldTime must be a positive duration, got %s", config.MaxHoldTime)
	}

	return &Scalping{config: config}, nil
}

func (s *Scalping) Name() Name {
	return NameScalping
}

func (s *Scalping) Config() types.StrategyConfig {
	return s.config
}

func (s *Scalping) Evaluate(input Input) ([]types.Signal, error) {
	return single(s.AnalyzePeriod(input.Bars, periodOr(input.Period, DefaultScalpingPeriod)))
}

// Analyze evaluates bars with the default period.
func (s *Scalping) Analyze(bars []types.Bar) (types.Signal, error) {
	return s.AnalyzePeriod(bars, DefaultScalpingPeriod)
}

// AnalyzePeriod compares EMA5 with EMA15. The spread is their distance as a
// percent of the last close and must exceed 0.1%.
func (s *Scalping) AnalyzePeriod(bars []types.Bar, period int) (types.Signal, error) {
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

	fast, err := indicator.EMA(prices, scalpingFastPeriod)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	slow, err := indicator.EMA(prices, scalpingSlowPeriod)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	current := prices[len(prices)-1]
	spread := math.Abs(fast-slow) / current * 100

	signal := types.Signal{
		Action:   types.ActionHold,
		Strength: neutralStrength,
		Price:    current,
		Indicators: map[string]any{
			"ema5":         fast,
			"ema15":        slow,
			"spread":       spread,
			"targetProfit": s.config.TargetProfit,
			"maxHoldTime":  s.config.MaxHoldTime.Seconds(),
		},
	}

	switch {
	case fast > slow && spread > scalpingMinSpread:
		signal.Action = types.ActionBuy
		signal.Strength = scalpingStrength
		signal.Reasoning = fmt.Sprintf("EMA crossover bullish, target %.2f%% profit within %s", s.config.TargetProfit, s.config.MaxHoldTime)
	case fast < slow && spread > scalpingMinSpread:
		signal.Action = types.ActionSell
		signal.Strength = scalpingStrength
		signal.Reasoning = fmt.Sprintf("EMA crossover bearish, target %.2f%% profit within %s", s.config.TargetProfit, s.config.MaxHoldTime)
	default:
		signal.Reasoning = "Waiting for clear EMA crossover signal"
	}

	return signal, nil
}
