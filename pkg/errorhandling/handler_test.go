package errorhandling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shopfleet/order-service/pkg/apperror"
)

type handlerFixture struct {
	handler  *Handler
	logs     *observer.ObservedLogs
	reader   *sdkmetric.ManualReader
	exitCode *int
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	core, logs := observer.New(zapcore.ErrorLevel)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler, err := New(zap.New(core), provider.Meter("test"))
	require.NoError(t, err)

	exitCode := -1
	handler.WithExit(func(code int) { exitCode = code })

	return &handlerFixture{handler: handler, logs: logs, reader: reader, exitCode: &exitCode}
}

func (f *handlerFixture) errorCounterValue(t *testing.T) (int64, attribute.Set) {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != errorCounterName {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.NotEmpty(t, sum.DataPoints)
			point := sum.DataPoints[0]
			return point.Value, point.Attributes
		}
	}
	t.Fatalf("no %s metric collected", errorCounterName)
	return 0, attribute.Set{}
}

func TestHandle_LogsMandatoryFields(t *testing.T) {
	f := newHandlerFixture(t)
	thrown := apperror.New("saving-failed", "order could not be saved", 500)

	f.handler.Handle(context.Background(), thrown)

	require.GreaterOrEqual(t, f.logs.Len(), 1)
	entry := f.logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "saving-failed", fields["name"])
	assert.Equal(t, int64(500), fields["status"])
	assert.Equal(t, "order could not be saved", fields["message"])
	assert.NotEmpty(t, fields["stack"])
}

func TestHandle_FiresMetricTaggedWithErrorKind(t *testing.T) {
	f := newHandlerFixture(t)
	thrown := apperror.New("example-error", "some example message", 500)

	f.handler.Handle(context.Background(), thrown)

	value, attrs := f.errorCounterValue(t)
	assert.Equal(t, int64(1), value)
	got, ok := attrs.Value("errorName")
	require.True(t, ok)
	assert.Equal(t, "example-error", got.AsString())
}

func TestHandle_UntrustedErrorTerminatesProcess(t *testing.T) {
	f := newHandlerFixture(t)
	thrown := apperror.New("saving-failed", "order could not be saved", 500).MarkUntrusted()

	f.handler.Handle(context.Background(), thrown)

	assert.Equal(t, 1, *f.exitCode)
	// Observability completed before escalation.
	assert.GreaterOrEqual(t, f.logs.Len(), 1)
	value, _ := f.errorCounterValue(t)
	assert.Equal(t, int64(1), value)
}

func TestHandle_UnknownErrorKeepsProcessAlive(t *testing.T) {
	f := newHandlerFixture(t)

	got := f.handler.Handle(context.Background(), errors.New("something vague and unknown"))

	assert.Equal(t, -1, *f.exitCode)
	assert.True(t, got.IsTrusted())
	assert.Equal(t, 500, got.Status)
}

func TestHandle_NonErrorValuesAreTrustedByDefault(t *testing.T) {
	values := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"string", "this is a string"},
		{"number", 1},
		{"plain object", struct{ Foo string }{"bar"}},
	}

	for _, tt := range values {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)

			got := f.handler.Handle(context.Background(), tt.value)

			assert.Equal(t, -1, *f.exitCode, "process must stay alive")
			assert.Equal(t, 500, got.Status)
			assert.GreaterOrEqual(t, f.logs.Len(), 1)
			value, _ := f.errorCounterValue(t)
			assert.Equal(t, int64(1), value)
		})
	}
}

func TestHandle_ReturnsNormalizedStatusForResponse(t *testing.T) {
	f := newHandlerFixture(t)

	got := f.handler.Handle(context.Background(), apperror.New(apperror.KindUserDoesntExist, "the user 7 doesnt exist", 404))

	assert.Equal(t, 404, got.Status)
	assert.Equal(t, apperror.KindUserDoesntExist, got.Kind)
}
