package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/testutil/observability/testdoubles"
)

// The dispatch goroutine resolves the reply slot before it records its logs
// and metrics, so a returned Call does not guarantee they have landed yet.
// Assertions on dispatch instrumentation use Eventually.

func Test_Call_LogsSubmissionAndCompletion(t *testing.T) {
	// setup
	loggerSpy := testdoubles.NewContextualLoggerSpy()
	b := newEchoBridge(t, bridge.WithContextualLogger(loggerSpy))

	// act
	_, err := b.Call(context.Background(), opEcho, []byte(`{"ping":true}`))

	// assert
	require.NoError(t, err)
	assert.True(t, loggerSpy.HasLog("info", "bridge worker started"))
	assert.True(t, loggerSpy.HasLog("debug", "command submitted"))
	assert.Eventually(t, func() bool {
		return loggerSpy.HasLog("info", "command completed")
	}, time.Second, 5*time.Millisecond)
}

func Test_Call_LogsHandlerFailures(t *testing.T) {
	// setup
	loggerSpy := testdoubles.NewContextualLoggerSpy()
	b := newEchoBridge(t, bridge.WithContextualLogger(loggerSpy))

	// act
	_, err := b.Call(context.Background(), opFail, nil)

	// assert
	require.Error(t, err)
	assert.Eventually(t, func() bool {
		return loggerSpy.HasLog("info", "command failed")
	}, time.Second, 5*time.Millisecond)
	assert.False(t, loggerSpy.HasLog("info", "command completed"))
}

func Test_Call_LogsWorkerTaskPanics(t *testing.T) {
	// setup
	loggerSpy := testdoubles.NewContextualLoggerSpy()
	b := newEchoBridge(t, bridge.WithContextualLogger(loggerSpy))

	// act
	_, err := b.Call(context.Background(), opPanic, nil)

	// assert
	assert.ErrorIs(t, err, bridge.ErrTransportFailure)
	assert.True(t, loggerSpy.HasLog("error", "worker task panicked, dropping reply slot"))
}

func Test_EnsureReady_LogsStartupFailure(t *testing.T) {
	// setup
	loggerSpy := testdoubles.NewContextualLoggerSpy()
	startupErr := errors.New("database unreachable")
	b, err := bridge.New(
		func(_ context.Context) (bridge.HandlerTable, error) {
			return nil, startupErr
		},
		bridge.WithContextualLogger(loggerSpy),
	)
	require.NoError(t, err)

	// act
	readyErr := b.EnsureReady()

	// assert
	assert.ErrorIs(t, readyErr, bridge.ErrStartupFailed)
	assert.True(t, loggerSpy.HasLog("error", "bridge startup failed"))
	assert.False(t, loggerSpy.HasLog("info", "bridge worker started"))
}

func Test_Call_RecordsSubmissionAndDispatchMetrics(t *testing.T) {
	// setup
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	b := newEchoBridge(t, bridge.WithMetrics(metricsSpy))

	// act
	_, err := b.Call(context.Background(), opEcho, []byte(`{}`))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, metricsSpy.CountIncrements("bridge_commands_submitted_total"))

	queueLength, recorded := metricsSpy.LastValue("bridge_command_queue_length")
	assert.True(t, recorded)
	assert.GreaterOrEqual(t, queueLength, 0.0)

	assert.Eventually(t, func() bool {
		return metricsSpy.CountDurations("bridge_dispatch_duration_seconds") == 1
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, metricsSpy.CountIncrements("bridge_dispatch_errors_total"))
}

func Test_Call_RecordsDispatchErrorMetric(t *testing.T) {
	// setup
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	b := newEchoBridge(t, bridge.WithMetrics(metricsSpy))

	// act
	_, err := b.Call(context.Background(), opFail, nil)

	// assert
	require.Error(t, err)
	assert.Eventually(t, func() bool {
		return metricsSpy.CountIncrements("bridge_dispatch_errors_total") == 1
	}, time.Second, 5*time.Millisecond)
}
