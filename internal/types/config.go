package types

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// RiskLevel is the caller's declared risk appetite.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Frequency is the DCA investment cadence.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Days returns the minimum number of days between two investments.
// ok is false for an unrecognized frequency.
func (f Frequency) Days() (days float64, ok bool) {
	switch f {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	case FrequencyMonthly:
		return 30, true
	default:
		return 0, false
	}
}

// StrategyConfig is the immutable configuration a strategy is built with.
// Only the common fields are checked by Validate; strategy specific fields
// are checked by the constructor of the strategy that uses them.
type StrategyConfig struct {
	RiskLevel  RiskLevel               `validate:"required,oneof=low medium high"`
	Capital    float64                 `validate:"gt=0"`
	StopLoss   optional.Option[float64]
	TakeProfit optional.Option[float64]

	// Grid
	GridLevels  int
	GridSpacing float64

	// DCA
	InvestmentAmount float64
	Frequency        Frequency

	// Scalping
	TargetProfit float64
	MaxHoldTime  time.Duration
}

var configValidator = validator.New()

// PositiveFinite reports whether v is a real number above zero.
// NaN and +Inf are rejected.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate checks the fields shared by every strategy.
func (c StrategyConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config", err)
	}

	if c.StopLoss.IsSome() && !PositiveFinite(c.StopLoss.Unwrap()) {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config",
			errors.Newf(errors.ErrCodeInvalidStopLoss, "stopLoss must be a positive number when set, got %f", c.StopLoss.Unwrap()))
	}

	if c.TakeProfit.IsSome() && !PositiveFinite(c.TakeProfit.Unwrap()) {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy config",
			errors.Newf(errors.ErrCodeInvalidTakeProfit, "takeProfit must be a positive number when set, got %f", c.TakeProfit.Unwrap()))
	}

	if !PositiveFinite(c.Capital) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "capital must be a positive number, got %f", c.Capital)
	}

	return nil
}
