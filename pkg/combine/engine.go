package combine

import (
	"time"

	apperrors "github.com/ZanzyTHEbar/seriescombine/internal/errors"
	"github.com/ZanzyTHEbar/seriescombine/internal/monitoring"
)

// Config holds the engine's logging and metrics sinks
type Config struct {
	Logger  *monitoring.Logger
	Metrics *monitoring.Metrics
}

// DefaultConfig returns a config with a discarding logger and fresh metrics
func DefaultConfig() Config {
	return Config{
		Logger:  monitoring.NewNopLogger(),
		Metrics: monitoring.NewMetrics(),
	}
}

// Engine wraps Combine with logging and metrics. It holds no state besides
// its sinks and is safe for concurrent use.
type Engine struct {
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// NewEngine creates an engine, filling nil config fields with defaults
func NewEngine(cfg Config) *Engine {
	defaults := DefaultConfig()
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}
	if cfg.Metrics == nil {
		cfg.Metrics = defaults.Metrics
	}

	return &Engine{
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Metrics returns the engine's metrics
func (e *Engine) Metrics() *monitoring.Metrics {
	return e.metrics
}

// Combine behaves like the package-level Combine and also logs and counts
// the call. Rejected tokens are logged by name before the error is returned.
func (e *Engine) Combine(series [][]float64, op string, alpha float64) (Result, error) {
	operator, err := ParseOperator(op)
	if err != nil {
		e.reject(err)
		return Result{}, err
	}
	return e.CombineWith(series, operator, alpha)
}

// CombineWith behaves like the package-level CombineWith and also logs and
// counts the call.
func (e *Engine) CombineWith(series [][]float64, op Operator, alpha float64) (Result, error) {
	start := time.Now()

	res, err := CombineWith(series, op, alpha)
	if err != nil {
		e.reject(err)
		return Result{}, err
	}

	duration := time.Since(start)
	e.metrics.RecordCombine(op.String(), len(series), len(res.Result), duration)
	e.logger.CombineLogger(op.String(), len(series), len(res.Result), duration)

	return res, nil
}

func (e *Engine) reject(err error) {
	appErr := apperrors.ToAppError(err)

	switch appErr.Category {
	case apperrors.CategoryValidation:
		e.metrics.IncrementValidationError()
	case apperrors.CategoryUnsupportedOperation:
		e.metrics.IncrementUnsupportedOperation()
	}

	apperrors.LogError(e.logger.Logger, appErr)
}
