// Package config reads the YAML run file consumed by the signals CLI.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/evaluation"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"gopkg.in/yaml.v3"
)

// StrategyEntry configures one strategy of a run.
type StrategyEntry struct {
	Name string `yaml:"name" json:"name" jsonschema:"title=Strategy,description=Registry name of the strategy,required,enum=momentum,enum=mean_reversion,enum=arbitrage,enum=grid,enum=dca,enum=breakout,enum=scalping,enum=swing" validate:"required"`
	Key  string `yaml:"key,omitempty" json:"key,omitempty" jsonschema:"title=Key,description=Result label; defaults to the strategy name"`

	Period *int `yaml:"period,omitempty" json:"period,omitempty" jsonschema:"title=Period,description=Lookback override in bars,minimum=1" validate:"omitempty,gt=0"`

	RiskLevel  types.RiskLevel `yaml:"riskLevel" json:"riskLevel" jsonschema:"title=Risk Level,required,enum=low,enum=medium,enum=high" validate:"required,oneof=low medium high"`
	Capital    float64         `yaml:"capital" json:"capital" jsonschema:"title=Capital,description=Capital available to the strategy,required,exclusiveMinimum=0" validate:"gt=0"`
	StopLoss   *float64        `yaml:"stopLoss,omitempty" json:"stopLoss,omitempty" jsonschema:"title=Stop Loss,description=Stop loss in percent" validate:"omitempty,gt=0"`
	TakeProfit *float64        `yaml:"takeProfit,omitempty" json:"takeProfit,omitempty" jsonschema:"title=Take Profit,description=Take profit in percent" validate:"omitempty,gt=0"`

	GridLevels  int     `yaml:"gridLevels,omitempty" json:"gridLevels,omitempty" jsonschema:"title=Grid Levels,description=Resting orders on each side (grid)"`
	GridSpacing float64 `yaml:"gridSpacing,omitempty" json:"gridSpacing,omitempty" jsonschema:"title=Grid Spacing,description=Percent between grid levels (grid)"`

	InvestmentAmount float64         `yaml:"investmentAmount,omitempty" json:"investmentAmount,omitempty" jsonschema:"title=Investment Amount,description=Amount per investment (dca)"`
	Frequency        types.Frequency `yaml:"frequency,omitempty" json:"frequency,omitempty" jsonschema:"title=Frequency,description=Investment cadence (dca),enum=daily,enum=weekly,enum=monthly"`
	LastInvestment   *time.Time      `yaml:"lastInvestment,omitempty" json:"lastInvestment,omitempty" jsonschema:"title=Last Investment,description=Time of the previous investment (dca)"`

	TargetProfit float64 `yaml:"targetProfit,omitempty" json:"targetProfit,omitempty" jsonschema:"title=Target Profit,description=Percent target per trade (scalping)"`
	MaxHoldTime  string  `yaml:"maxHoldTime,omitempty" json:"maxHoldTime,omitempty" jsonschema:"title=Max Hold Time,description=Go duration such as 5m (scalping)"`

	Price *float64 `yaml:"price,omitempty" json:"price,omitempty" jsonschema:"title=Reference Price,description=Overrides the last close (grid and dca)" validate:"omitempty,gt=0"`
}

// RunConfig is the root of a run file.
type RunConfig struct {
	EngineVersion string                      `yaml:"engineVersion,omitempty" json:"engineVersion,omitempty" jsonschema:"title=Engine Version,description=Semver constraint the engine must satisfy"`
	DataFile      string                      `yaml:"dataFile" json:"dataFile" jsonschema:"title=Data File,description=Parquet or CSV file with time/symbol/open/high/low/close/volume columns,required" validate:"required"`
	Symbol        string                      `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,required" validate:"required"`
	Bars          int                         `yaml:"bars,omitempty" json:"bars,omitempty" jsonschema:"title=Bars,description=Number of recent bars to evaluate,default=250,minimum=1" validate:"omitempty,gt=0"`
	End           *time.Time                  `yaml:"end,omitempty" json:"end,omitempty" jsonschema:"title=End,description=Evaluate the series up to this time"`
	Quotes        map[string]types.PriceQuote `yaml:"quotes,omitempty" json:"quotes,omitempty" jsonschema:"title=Quotes,description=Exchange quotes for arbitrage" validate:"omitempty,dive"`
	Strategies    []StrategyEntry             `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,required,minItems=1" validate:"required,min=1,dive"`
}

// Decode decodes a run file without validating it, so that callers can
// apply overrides first.
func Decode(data []byte) (*RunConfig, error) {
	var config RunConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse run config", err)
	}

	return &config, nil
}

// Parse decodes and validates a run file.
func Parse(data []byte) (*RunConfig, error) {
	config, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Read decodes the run file at path without validating it.
func Read(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read run config %s", path)
	}

	return Decode(data)
}

// Load reads and validates the run file at path.
func Load(path string) (*RunConfig, error) {
	config, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the struct tags, the engine version constraint and that
// every entry names a registered strategy its constructor accepts.
func (c *RunConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run config", err)
	}

	if err := version.CheckCurrent(c.EngineVersion); err != nil {
		return err
	}

	registry := strategy.NewRegistry()

	for i, entry := range c.Strategies {
		if !registry.Has(entry.Name) {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration,
				errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q, available: %v", entry.Name, registry.ListStrategies()),
				"strategies[%d]", i)
		}

		config, err := entry.StrategyConfig()
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "strategies[%d]", i)
		}

		if _, err := registry.Create(entry.Name, config); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "strategies[%d]", i)
		}
	}

	return nil
}

// StrategyConfig converts the entry into the config handed to the strategy.
func (e StrategyEntry) StrategyConfig() (types.StrategyConfig, error) {
	config := types.StrategyConfig{
		RiskLevel:        e.RiskLevel,
		Capital:          e.Capital,
		StopLoss:         pointerOption(e.StopLoss),
		TakeProfit:       pointerOption(e.TakeProfit),
		GridLevels:       e.GridLevels,
		GridSpacing:      e.GridSpacing,
		InvestmentAmount: e.InvestmentAmount,
		Frequency:        types.Frequency(strings.ToLower(string(e.Frequency))),
		TargetProfit:     e.TargetProfit,
	}

	if e.MaxHoldTime != "" {
		maxHold, err := time.ParseDuration(e.MaxHoldTime)
		if err != nil {
			return types.StrategyConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid maxHoldTime %q", e.MaxHoldTime)
		}

		config.MaxHoldTime = maxHold
	}

	return config, nil
}

// Request builds the evaluation request the run describes.
func (c *RunConfig) Request() (evaluation.Request, error) {
	request := evaluation.Request{
		Symbol: c.Symbol,
		Bars:   c.Bars,
		End:    pointerOption(c.End),
		Quotes: c.Quotes,
		Jobs:   make([]evaluation.Job, 0, len(c.Strategies)),
	}

	for i, entry := range c.Strategies {
		config, err := entry.StrategyConfig()
		if err != nil {
			return evaluation.Request{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "strategies[%d]", i)
		}

		request.Jobs = append(request.Jobs, evaluation.Job{
			Key:            entry.Key,
			Strategy:       entry.Name,
			Config:         config,
			Period:         pointerOption(entry.Period),
			Price:          pointerOption(entry.Price),
			LastInvestment: pointerOption(entry.LastInvestment),
		})
	}

	return request, nil
}

func pointerOption[T any](value *T) optional.Option[T] {
	if value == nil {
		return optional.None[T]()
	}

	return optional.Some(*value)
}
