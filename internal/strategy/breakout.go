package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// DefaultBreakoutPeriod is the default support/resistance lookback.
const DefaultBreakoutPeriod = 20

const (
	breakoutVolumeFactor = 1.5
	breakoutStrength     = 85.0
)

// Breakout trades a close beyond the recent range on heavy volume.
type Breakout struct {
	config types.StrategyConfig
}

// NewBreakout validates config and builds the strategy.
func NewBreakout(config types.StrategyConfig) (*Breakout, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Breakout{config: config}, nil
}

func (b *Breakout) Name() Name {
	return NameBreakout
}

func (b *Breakout) Config() types.StrategyConfig {
	return b.config
}

func (b *Breakout) Evaluate(input Input) ([]types.Signal, error) {
	return single(b.AnalyzePeriod(input.Bars, periodOr(input.Period, DefaultBreakoutPeriod)))
}

// Analyze evaluates bars with the default period.
func (b *Breakout) Analyze(bars []types.Bar) (types.Signal, error) {
	return b.AnalyzePeriod(bars, DefaultBreakoutPeriod)
}

// AnalyzePeriod derives resistance, support and average volume from up to
// period bars before the last one, then tests the last bar against them.
// The last bar is excluded because its own high always caps its close.
func (b *Breakout) AnalyzePeriod(bars []types.Bar, period int) (types.Signal, error) {
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

	last := bars[len(bars)-1]
	reference := bars[:len(bars)-1]
	window := min(period, len(reference))

	resistance, err := indicator.Highest(indicator.Highs(reference), window)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	support, err := indicator.Lowest(indicator.Lows(reference), window)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	avgVolume, err := indicator.SMA(indicator.Volumes(reference), window)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	signal := types.Signal{
		Action:   types.ActionHold,
		Strength: neutralStrength,
		Price:    last.Close,
		Indicators: map[string]any{
			"resistance": resistance,
			"support":    support,
			"volume":     last.Volume,
			"avgVolume":  avgVolume,
		},
	}

	heavyVolume := last.Volume > avgVolume*breakoutVolumeFactor

	switch {
	case last.Close > resistance && heavyVolume:
		signal.Action = types.ActionBuy
		signal.Strength = breakoutStrength
		signal.Reasoning = fmt.Sprintf("Breakout above resistance (%.2f) with high volume", resistance)
	case last.Close < support && heavyVolume:
		signal.Action = types.ActionSell
		signal.Strength = breakoutStrength
		signal.Reasoning = fmt.Sprintf("Breakdown below support (%.2f) with high volume", support)
	default:
		signal.Reasoning = fmt.Sprintf("Price between support (%.2f) and resistance (%.2f)", support, resistance)
	}

	return signal, nil
}
