package strategy

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// DefaultMeanReversionPeriod is the default Bollinger lookback.
const DefaultMeanReversionPeriod = 20

const meanReversionBase = 70.0

// MeanReversion buys below the lower Bollinger Band and sells above the upper.
type MeanReversion struct {
	config types.StrategyConfig
}

// NewMeanReversion validates config and builds the strategy.
func NewMeanReversion(config types.StrategyConfig) (*MeanReversion, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MeanReversion{config: config}, nil
}

func (m *MeanReversion) Name() Name {
	return NameMeanReversion
}

func (m *MeanReversion) Config() types.StrategyConfig {
	return m.config
}

func (m *MeanReversion) Evaluate(input Input) ([]types.Signal, error) {
	return single(m.AnalyzePeriod(input.Bars, periodOr(input.Period, DefaultMeanReversionPeriod)))
}

// Analyze evaluates bars with the default period.
func (m *MeanReversion) Analyze(bars []types.Bar) (types.Signal, error) {
	return m.AnalyzePeriod(bars, DefaultMeanReversionPeriod)
}

// AnalyzePeriod compares the last close with bands two population standard
// deviations around the period SMA.
func (m *MeanReversion) AnalyzePeriod(bars []types.Bar, period int) (types.Signal, error) {
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

	sma, err := indicator.SMA(prices, period)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	stdDev, err := indicator.StdDev(prices, period)
	if err != nil {
		return recoverInsufficient(bars, err)
	}

	bands := indicator.BollingerBands(sma, stdDev, indicator.DefaultBandWidth)
	current := prices[len(prices)-1]
	deviation := (current - sma) / sma * 100

	signal := types.Signal{
		Action:   types.ActionHold,
		Strength: neutralStrength,
		Price:    current,
		Indicators: map[string]any{
			"sma":       sma,
			"stdDev":    stdDev,
			"deviation": deviation,
			"upper":     bands.Upper,
			"middle":    bands.Middle,
			"lower":     bands.Lower,
		},
	}

	switch {
	case current < bands.Lower:
		signal.Action = types.ActionBuy
		signal.Strength = score(meanReversionBase + math.Abs(deviation))
		signal.Reasoning = fmt.Sprintf("Price below lower Bollinger Band (%.2f%% below SMA)", math.Abs(deviation))
	case current > bands.Upper:
		signal.Action = types.ActionSell
		signal.Strength = score(meanReversionBase + math.Abs(deviation))
		signal.Reasoning = fmt.Sprintf("Price above upper Bollinger Band (%.2f%% above SMA)", deviation)
	default:
		signal.Reasoning = fmt.Sprintf("Price within Bollinger Bands (%.2f%% from SMA)", deviation)
	}

	return signal, nil
}
