package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/shopspring/decimal"
)

const gridStrength = 75.0

var hundred = decimal.NewFromInt(100)

// Grid lays out a ladder of resting buy and sell levels around the price.
// It never takes a direction: every signal is a hold carrying the ladder.
type Grid struct {
	config types.StrategyConfig
}

// NewGrid validates config, including gridLevels > 0, gridSpacing > 0 and a
// ladder whose lowest buy level stays above zero.
func NewGrid(config types.StrategyConfig) (*Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.GridLevels <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "gridLevels must be a positive integer, got %d", config.GridLevels)
	}

	if !types.PositiveFinite(config.GridSpacing) {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "gridSpacing must be a positive percentage, got %f", config.GridSpacing)
	}

	if float64(config.GridLevels)*config.GridSpacing >= 100 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"gridLevels * gridSpacing must stay below 100%%, got %d * %.2f", config.GridLevels, config.GridSpacing)
	}

	return &Grid{config: config}, nil
}

func (g *Grid) Name() Name {
	return NameGrid
}

func (g *Grid) Config() types.StrategyConfig {
	return g.config
}

func (g *Grid) Evaluate(input Input) ([]types.Signal, error) {
	if input.Price.IsSome() {
		return single(g.Analyze(input.Price.Unwrap()))
	}

	return single(g.AnalyzeBars(input.Bars))
}

// AnalyzeBars lays the grid around the last close. A series holding a NaN or
// infinite value gives a zero strength hold.
func (g *Grid) AnalyzeBars(bars []types.Bar) (types.Signal, error) {
	price, err := types.LastClose(bars)
	if err != nil {
		return types.Signal{}, err
	}

	if signal, ok := malformed(bars); ok {
		return signal, nil
	}

	return g.Analyze(price)
}

// Analyze lays the grid around currentPrice.
func (g *Grid) Analyze(currentPrice float64) (types.Signal, error) {
	buyOrders, sellOrders, err := g.Ladder(currentPrice)
	if err != nil {
		return types.Signal{}, err
	}

	return types.Signal{
		Action:    types.ActionHold,
		Strength:  gridStrength,
		Price:     currentPrice,
		Reasoning: fmt.Sprintf("Grid trading active with %d levels at %.2f%% spacing", g.config.GridLevels, g.config.GridSpacing),
		Indicators: map[string]any{
			"gridLevels":  float64(g.config.GridLevels),
			"gridSpacing": g.config.GridSpacing,
			"buyOrders":   buyOrders,
			"sellOrders":  sellOrders,
		},
	}, nil
}

// Ladder returns gridLevels buy prices below and sell prices above
// currentPrice, level i sitting i*gridSpacing percent away. Levels are
// computed in decimal so round spacings give round prices.
func (g *Grid) Ladder(currentPrice float64) (buyOrders []float64, sellOrders []float64, err error) {
	if invalidPrice(currentPrice) {
		return nil, nil, errors.Newf(errors.ErrCodeInvalidParameter, "grid price must be a positive number, got %f", currentPrice)
	}

	price := decimal.NewFromFloat(currentPrice)
	spacing := decimal.NewFromFloat(g.config.GridSpacing)

	buyOrders = make([]float64, 0, g.config.GridLevels)
	sellOrders = make([]float64, 0, g.config.GridLevels)

	for i := 1; i <= g.config.GridLevels; i++ {
		offset := spacing.Mul(decimal.NewFromInt(int64(i))).Div(hundred)
		buyOrders = append(buyOrders, price.Mul(decimal.NewFromInt(1).Sub(offset)).InexactFloat64())
		sellOrders = append(sellOrders, price.Mul(decimal.NewFromInt(1).Add(offset)).InexactFloat64())
	}

	return buyOrders, sellOrders, nil
}
