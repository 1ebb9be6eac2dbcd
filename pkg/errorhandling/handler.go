// Package errorhandling implements the single boundary handler for every
// failure in the service: HTTP request errors, router panics and top-level
// faults all funnel through Handler. It normalizes the value, logs it,
// fires a metric tagged with the error kind and decides process survival.
// Business logic never logs errors or exits on its own.
package errorhandling

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/pkg/apperror"
)

const errorCounterName = "errors_total"

type Handler struct {
	logger  *zap.Logger
	counter metric.Int64Counter
	exit    func(code int)
}

func New(logger *zap.Logger, meter metric.Meter) (*Handler, error) {
	counter, err := meter.Int64Counter(errorCounterName,
		metric.WithDescription("Count of classified errors by kind"))
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:  logger,
		counter: counter,
		exit:    os.Exit,
	}, nil
}

// WithExit overrides the process-exit function. Tests use this to observe
// escalation without dying.
func (h *Handler) WithExit(exit func(code int)) *Handler {
	h.exit = exit
	return h
}

// Handle classifies an arbitrary failure value and returns the normalized
// error so callers can translate it into a response. Order matters: log and
// metric always complete before an untrusted error terminates the process.
func (h *Handler) Handle(ctx context.Context, v any) *apperror.AppError {
	appErr := apperror.Normalize(v)
	if appErr.Trusted == nil {
		trusted := true
		appErr.Trusted = &trusted
	}

	h.logger.Error("error occurred",
		zap.String("name", appErr.Kind),
		zap.Int("status", appErr.Status),
		zap.String("message", appErr.Message),
		zap.Stack("stack"))

	h.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("errorName", appErr.Kind)))

	if !appErr.IsTrusted() {
		h.logger.Error("untrusted error, terminating process",
			zap.String("name", appErr.Kind))
		_ = h.logger.Sync()
		h.exit(1)
	}

	return appErr
}
