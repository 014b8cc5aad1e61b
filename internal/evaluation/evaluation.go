// Package evaluation runs several configured strategies over one bar series
// and collects their signals into a report.
package evaluation

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// DefaultBarCount is the series length loaded when a request names none.
// It covers the 200 bar swing lookback.
const DefaultBarCount = 250

// Job is one strategy to evaluate.
type Job struct {
	// Key labels the result; it defaults to the strategy name and must be
	// unique within a request
	Key string
	// Strategy is the registry name
	Strategy string
	// Config is handed to the strategy constructor
	Config types.StrategyConfig
	// Period overrides the strategy's default lookback
	Period optional.Option[int]
	// Price overrides the last close for grid and dca
	Price optional.Option[float64]
	// LastInvestment is the previous dca buy
	LastInvestment optional.Option[time.Time]
}

// Request describes one evaluation run.
type Request struct {
	Symbol string
	// Bars is the number of most recent bars to load
	Bars int
	// End bounds the series; None means the latest bar
	End optional.Option[time.Time]
	// Quotes feeds arbitrage
	Quotes map[string]types.PriceQuote
	Jobs   []Job
}

// Result is the outcome of one job. Exactly one of Signals and Error is set.
type Result struct {
	Key       string           `json:"key"`
	Strategy  string           `json:"strategy"`
	Signals   []types.Signal   `json:"signals,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorCode errors.ErrorCode `json:"errorCode,omitempty"`
}

// Failed reports whether the job produced an error instead of signals.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Report is the output of a run, results in job order.
type Report struct {
	ID            uuid.UUID `json:"id"`
	EngineVersion string    `json:"engineVersion"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Symbol        string    `json:"symbol"`
	BarCount      int       `json:"barCount"`
	LastBarTime   time.Time `json:"lastBarTime"`
	Results       []Result  `json:"results"`
}

// Result returns the result with the given key.
func (r *Report) Result(key string) (Result, bool) {
	for _, result := range r.Results {
		if result.Key == key {
			return result, true
		}
	}

	return Result{}, false
}

func (j Job) key() string {
	if j.Key != "" {
		return j.Key
	}

	return j.Strategy
}

// Validate checks the request shape and fills in defaults.
func (r *Request) Validate() error {
	if r.Symbol == "" {
		return errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	if r.Bars < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bar count must be positive, got %d", r.Bars)
	}

	if r.Bars == 0 {
		r.Bars = DefaultBarCount
	}

	if len(r.Jobs) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "at least one strategy is required")
	}

	seen := make(map[string]struct{}, len(r.Jobs))

	for _, job := range r.Jobs {
		key := job.key()
		if _, ok := seen[key]; ok {
			return errors.Newf(errors.ErrCodeInvalidParameter, "duplicate strategy key %q, set a distinct key", key)
		}

		seen[key] = struct{}{}
	}

	return nil
}

func (j Job) input(bars []types.Bar, quotes map[string]types.PriceQuote, now time.Time) strategy.Input {
	return strategy.Input{
		Bars:           bars,
		Period:         j.Period,
		Quotes:         quotes,
		Price:          j.Price,
		LastInvestment: j.LastInvestment,
		Now:            now,
	}
}
