package evaluation

import (
	"context"
	"runtime"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service evaluates requests against bars from a data source.
type Service struct {
	dataSource datasource.DataSource
	registry   strategy.Registry
	clock      clock.Clock
	logger     *logger.Logger
}

// NewService wires a service. clock supplies the evaluation instant used by
// dca; pass clock.New() outside tests.
func NewService(dataSource datasource.DataSource, registry strategy.Registry, clk clock.Clock, logger *logger.Logger) *Service {
	return &Service{
		dataSource: dataSource,
		registry:   registry,
		clock:      clk,
		logger:     logger,
	}
}

// Run loads the bars for request.Symbol and evaluates every job.
// A short series is evaluated as is so that each strategy can degrade on its
// own; any other loading error aborts the run.
func (s *Service) Run(ctx context.Context, request Request) (*Report, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	bars, err := s.dataSource.GetPreviousNumberOfDataPoints(request.End, request.Symbol, request.Bars)
	if err != nil {
		if !errors.IsInsufficientDataError(err) || len(bars) == 0 {
			return nil, errors.Wrapf(errors.ErrCodeHistoricalDataFailed, err, "failed to load bars for %s", request.Symbol)
		}

		s.logger.Warn("Evaluating a shorter series than requested",
			zap.String("symbol", request.Symbol),
			zap.Int("requested", request.Bars),
			zap.Int("loaded", len(bars)))
	}

	return s.Evaluate(ctx, bars, request)
}

// Evaluate runs every job of request over bars concurrently. Strategy errors
// are recorded on their result and never abort the other jobs.
func (s *Service) Evaluate(ctx context.Context, bars []types.Bar, request Request) (*Report, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := types.ValidateBars(bars); err != nil {
		s.logger.Warn("Bar series failed validation", zap.String("symbol", request.Symbol), zap.Error(err))
	}

	now := s.clock.Now()
	results := make([]Result, len(request.Jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range request.Jobs {
		i, job := i, job
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = s.evaluateJob(job, bars, request, now)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:            uuid.New(),
		EngineVersion: version.GetVersion(),
		GeneratedAt:   now,
		Symbol:        request.Symbol,
		BarCount:      len(bars),
		Results:       results,
	}

	if len(bars) > 0 {
		report.LastBarTime = bars[len(bars)-1].Time
	}

	s.logger.Info("Evaluation finished",
		zap.String("report", report.ID.String()),
		zap.String("symbol", request.Symbol),
		zap.Int("bars", len(bars)),
		zap.Int("strategies", len(results)))

	return report, nil
}

func (s *Service) evaluateJob(job Job, bars []types.Bar, request Request, now time.Time) Result {
	result := Result{Key: job.key(), Strategy: job.Strategy}

	evaluator, err := s.registry.Create(job.Strategy, job.Config)
	if err == nil {
		result.Signals, err = evaluator.Evaluate(job.input(bars, request.Quotes, now))
	}

	if err != nil {
		s.logger.Error("Strategy evaluation failed",
			zap.String("key", result.Key),
			zap.String("strategy", job.Strategy),
			zap.Error(err))

		result.Signals = nil
		result.Error = err.Error()
		result.ErrorCode = errors.GetCode(err)
	}

	return result
}
