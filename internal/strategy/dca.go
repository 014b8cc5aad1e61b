package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/shopspring/decimal"
)

const dcaStrength = 90.0

const day = 24 * time.Hour

// DCA buys a fixed amount whenever the configured cadence has elapsed since
// the previous buy. It never sells. The caller owns the last investment time.
type DCA struct {
	config types.StrategyConfig
	days   float64
}

// NewDCA validates config, including investmentAmount > 0 and a known
// frequency.
func NewDCA(config types.StrategyConfig) (*DCA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if !types.PositiveFinite(config.InvestmentAmount) {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "investmentAmount must be positive, got %f", config.InvestmentAmount)
	}

	days, ok := config.Frequency.Days()
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "frequency must be one of daily, weekly, monthly, got %q", config.Frequency)
	}

	return &DCA{config: config, days: days}, nil
}

func (d *DCA) Name() Name {
	return NameDCA
}

func (d *DCA) Config() types.StrategyConfig {
	return d.config
}

func (d *DCA) Evaluate(input Input) ([]types.Signal, error) {
	if input.Price.IsSome() {
		return single(d.Analyze(input.Price.Unwrap(), input.LastInvestment, input.Now))
	}

	price, err := types.LastClose(input.Bars)
	if err != nil {
		return nil, err
	}

	if signal, ok := malformed(input.Bars); ok {
		return single(signal, nil)
	}

	return single(d.Analyze(price, input.LastInvestment, input.Now))
}

// Analyze decides whether an investment is due at now. With no previous
// investment the first one is due immediately.
func (d *DCA) Analyze(currentPrice float64, lastInvestment optional.Option[time.Time], now time.Time) (types.Signal, error) {
	if invalidPrice(currentPrice) {
		return types.Signal{}, errors.Newf(errors.ErrCodeInvalidParameter, "dca price must be a positive number, got %f", currentPrice)
	}

	amount := decimal.NewFromFloat(d.config.InvestmentAmount)
	units := amount.Div(decimal.NewFromFloat(currentPrice)).InexactFloat64()

	indicators := map[string]any{
		"investmentAmount": d.config.InvestmentAmount,
		"frequencyDays":    d.days,
		"units":            units,
	}

	if lastInvestment.IsNone() {
		return types.Signal{
			Action:     types.ActionBuy,
			Strength:   dcaStrength,
			Price:      currentPrice,
			Reasoning:  fmt.Sprintf("Initial DCA %s investment of $%.2f", d.config.Frequency, d.config.InvestmentAmount),
			Indicators: indicators,
		}, nil
	}

	elapsed := now.Sub(lastInvestment.Unwrap()).Hours() / day.Hours()
	indicators["daysSinceLastInvestment"] = elapsed

	if elapsed >= d.days {
		return types.Signal{
			Action:     types.ActionBuy,
			Strength:   dcaStrength,
			Price:      currentPrice,
			Reasoning:  fmt.Sprintf("DCA %s investment of $%.2f", d.config.Frequency, d.config.InvestmentAmount),
			Indicators: indicators,
		}, nil
	}

	return types.Signal{
		Action:     types.ActionHold,
		Strength:   0,
		Price:      currentPrice,
		Reasoning:  fmt.Sprintf("Next DCA investment in %d days", int(math.Ceil(d.days-elapsed))),
		Indicators: indicators,
	}, nil
}
