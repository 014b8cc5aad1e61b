package types

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      StrategyConfig
		shouldError bool
	}{
		{
			name:        "minimal config",
			config:      StrategyConfig{RiskLevel: RiskLevelLow, Capital: 1000},
			shouldError: false,
		},
		{
			name: "full config",
			config: StrategyConfig{
				RiskLevel:        RiskLevelHigh,
				Capital:          5000,
				StopLoss:         optional.Some(2.0),
				TakeProfit:       optional.Some(5.0),
				GridLevels:       5,
				GridSpacing:      1,
				InvestmentAmount: 100,
				Frequency:        FrequencyWeekly,
				TargetProfit:     0.5,
				MaxHoldTime:      5 * time.Minute,
			},
			shouldError: false,
		},
		{
			name:        "missing risk level",
			config:      StrategyConfig{Capital: 1000},
			shouldError: true,
		},
		{
			name:        "unknown risk level",
			config:      StrategyConfig{RiskLevel: "reckless", Capital: 1000},
			shouldError: true,
		},
		{
			name:        "zero capital",
			config:      StrategyConfig{RiskLevel: RiskLevelMedium},
			shouldError: true,
		},
		{
			name:        "non-positive stop loss",
			config:      StrategyConfig{RiskLevel: RiskLevelMedium, Capital: 1000, StopLoss: optional.Some(0.0)},
			shouldError: true,
		},
		{
			name:        "negative take profit",
			config:      StrategyConfig{RiskLevel: RiskLevelMedium, Capital: 1000, TakeProfit: optional.Some(-1.0)},
			shouldError: true,
		},
		{
			name:        "NaN stop loss",
			config:      StrategyConfig{RiskLevel: RiskLevelMedium, Capital: 1000, StopLoss: optional.Some(math.NaN())},
			shouldError: true,
		},
		{
			name:        "infinite capital",
			config:      StrategyConfig{RiskLevel: RiskLevelMedium, Capital: math.Inf(1)},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.shouldError {
				assert.Error(t, err)
				assert.True(t, errors.IsInvalidConfiguration(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStrategyConfigValidateCause(t *testing.T) {
	tests := []struct {
		name   string
		config StrategyConfig
		cause  errors.ErrorCode
	}{
		{
			name:   "stop loss",
			config: StrategyConfig{RiskLevel: RiskLevelLow, Capital: 1000, StopLoss: optional.Some(-2.0)},
			cause:  errors.ErrCodeInvalidStopLoss,
		},
		{
			name:   "take profit",
			config: StrategyConfig{RiskLevel: RiskLevelLow, Capital: 1000, TakeProfit: optional.Some(0.0)},
			cause:  errors.ErrCodeInvalidTakeProfit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.True(t, errors.IsInvalidConfiguration(err))

			var outer *errors.Error
			require.True(t, errors.As(err, &outer))
			assert.Equal(t, tt.cause, errors.GetCode(outer.Unwrap()))
		})
	}
}

func TestPositiveFinite(t *testing.T) {
	assert.True(t, PositiveFinite(0.01))
	assert.False(t, PositiveFinite(0))
	assert.False(t, PositiveFinite(-1))
	assert.False(t, PositiveFinite(math.NaN()))
	assert.False(t, PositiveFinite(math.Inf(1)))
}

func TestFrequencyDays(t *testing.T) {
	tests := []struct {
		frequency Frequency
		days      float64
		ok        bool
	}{
		{FrequencyDaily, 1, true},
		{FrequencyWeekly, 7, true},
		{FrequencyMonthly, 30, true},
		{Frequency("hourly"), 0, false},
		{Frequency(""), 0, false},
	}

	for _, tt := range tests {
		days, ok := tt.frequency.Days()
		assert.Equal(t, tt.ok, ok, tt.frequency)
		assert.Equal(t, tt.days, days, tt.frequency)
	}
}
