// Package strategy holds the eight signal evaluators and the registry that
// builds them by name.
//
// Strategies are stateless: a value carries only its validated config and
// every Analyze call is a pure function of its arguments, so one instance
// can be shared by concurrent callers.
package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Name identifies a strategy in the registry.
type Name string

const (
	NameMomentum      Name = "momentum"
	NameMeanReversion Name = "mean_reversion"
	NameArbitrage     Name = "arbitrage"
	NameGrid          Name = "grid"
	NameDCA           Name = "dca"
	NameBreakout      Name = "breakout"
	NameScalping      Name = "scalping"
	NameSwing         Name = "swing"
)

const (
	neutralStrength = 50.0
	maxScore        = 95.0
)

// Input bundles everything any strategy may read so that registry callers can
// evaluate a strategy without knowing its concrete type. Each strategy reads
// only the fields it needs.
type Input struct {
	// Bars is the time-ascending series, used by every bar based strategy
	Bars []types.Bar
	// Period overrides the strategy's default lookback
	Period optional.Option[int]
	// Quotes maps exchange name to its quote, used by arbitrage
	Quotes map[string]types.PriceQuote
	// Price overrides the last close as the reference price for grid and dca
	Price optional.Option[float64]
	// LastInvestment is the time of the previous dca buy, None if never
	LastInvestment optional.Option[time.Time]
	// Now is the evaluation instant, used by dca
	Now time.Time
}

// Strategy is the capability shared by all evaluators.
type Strategy interface {
	// Name returns the registry name of the strategy
	Name() Name
	// Config returns the configuration the strategy was built with
	Config() types.StrategyConfig
	// Evaluate runs the strategy on input. Arbitrage may return several
	// signals; every other strategy returns exactly one.
	Evaluate(input Input) ([]types.Signal, error)
}

// checkPeriod rejects a non-positive lookback.
func checkPeriod(period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return nil
}

// periodOr returns the requested period or the fallback when none is set.
func periodOr(period optional.Option[int], fallback int) int {
	if period.IsSome() {
		return period.Unwrap()
	}

	return fallback
}

// insufficientData is the degraded hold emitted when the series is too short.
// An empty series has no price to report and fails instead.
func insufficientData(bars []types.Bar, required int) (types.Signal, error) {
	price, err := types.LastClose(bars)
	if err != nil {
		return types.Signal{}, err
	}

	return types.Signal{
		Action:     types.ActionHold,
		Strength:   0,
		Price:      price,
		Reasoning:  fmt.Sprintf("Insufficient data: need %d bars, got %d", required, len(bars)),
		Indicators: map[string]any{},
	}, nil
}

// recoverInsufficient turns an indicator InsufficientDataError into the
// degraded hold signal and passes any other error through.
func recoverInsufficient(bars []types.Bar, err error) (types.Signal, error) {
	var insufficient *errors.InsufficientDataError
	if errors.As(err, &insufficient) {
		return insufficientData(bars, insufficient.Required)
	}

	return types.Signal{}, err
}

// score caps a heuristic strength at 95.
func score(strength float64) float64 {
	return math.Max(types.MinStrength, math.Min(maxScore, strength))
}

func single(signal types.Signal, err error) ([]types.Signal, error) {
	if err != nil {
		return nil, err
	}

	return []types.Signal{signal}, nil
}

// malformed returns the degraded hold for a series holding a NaN or infinite
// value. The reported price is the last close, or 0 when that is not finite.
func malformed(bars []types.Bar) (types.Signal, bool) {
	for _, bar := range bars {
		if bar.Finite() {
			continue
		}

		price := bars[len(bars)-1].Close
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}

		return types.Signal{
			Action:     types.ActionHold,
			Strength:   0,
			Price:      price,
			Reasoning:  fmt.Sprintf("Malformed data: bar at %s has a NaN or infinite value", bar.Time.Format(time.RFC3339)),
			Indicators: map[string]any{},
		}, true
	}

	return types.Signal{}, false
}

// invalidPrice reports whether price cannot anchor an order: zero, negative,
// NaN or infinite.
func invalidPrice(price float64) bool {
	return !(price > 0) || math.IsInf(price, 0)
}
