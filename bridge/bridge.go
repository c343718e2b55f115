package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pricingworks/pricing-mcp-go/catalog"
)

const (
	defaultQueueCapacity     = 256
	logMsgWorkerStarted      = "bridge worker started"
	logMsgStartupFailed      = "bridge startup failed"
	logMsgCommandSubmitted   = "command submitted"
	logMsgCommandCompleted   = "command completed"
	logMsgCommandFailed      = "command failed"
	logMsgTaskPanicked       = "worker task panicked, dropping reply slot"
	logAttrError             = "error"
	logAttrOperation         = "operation"
	logAttrCommandID         = "command_id"
	logAttrDurationMS        = "duration_ms"
	logAttrPanic             = "panic"
	metricDispatchDuration   = "bridge_dispatch_duration_seconds"
	metricDispatchErrors     = "bridge_dispatch_errors_total"
	metricCommandsSubmitted  = "bridge_commands_submitted_total"
	metricCommandQueueLength = "bridge_command_queue_length"
	labelOperation           = "operation"
)

var ErrNilStartupFunc = errors.New("nil startup function supplied")
var ErrInvalidQueueCapacity = errors.New("queue capacity must be a positive integer")
var ErrStartupFailed = errors.New("bridge startup failed")
var ErrUnknownOperation = errors.New("unknown operation")
var ErrTransportFailure = errors.New("reply slot was dropped before a result was delivered")

// Bridge is the entry point connecting synchronous callers to the worker
// runtime. Construct it with New; the zero value is not usable.
type Bridge struct {
	startup          StartupFunc
	queueCapacity    int
	logger           catalog.Logger
	contextualLogger catalog.ContextualLogger
	metricsCollector catalog.MetricsCollector

	startOnce sync.Once
	startErr  error
	commands  chan command
}

// Option defines a functional option for configuring a Bridge.
type Option func(*Bridge) error

// WithQueueCapacity sets the capacity of the command channel. Submitting a
// command blocks while the queue is full, which is the only backpressure the
// Bridge applies.
func WithQueueCapacity(capacity int) Option {
	return func(b *Bridge) error {
		if capacity < 1 {
			return ErrInvalidQueueCapacity
		}

		b.queueCapacity = capacity

		return nil
	}
}

// WithLogger sets the logger for the Bridge.
func WithLogger(logger catalog.Logger) Option {
	return func(b *Bridge) error {
		b.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Bridge.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(b *Bridge) error {
		b.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Bridge.
// The collector will receive dispatch durations, submission and error
// counters, and the current command queue length.
func WithMetrics(collector catalog.MetricsCollector) Option {
	return func(b *Bridge) error {
		b.metricsCollector = collector
		return nil
	}
}

// New creates a Bridge with the given StartupFunc and optional configuration.
// Nothing is started yet; the worker goroutine is spawned by the first call
// to EnsureReady or Call.
func New(startup StartupFunc, options ...Option) (*Bridge, error) {
	if startup == nil {
		return nil, ErrNilStartupFunc
	}

	b := &Bridge{
		startup:       startup,
		queueCapacity: defaultQueueCapacity,
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// EnsureReady starts the worker runtime exactly once and blocks until it
// signals readiness or failure. It is safe to call from any number of
// goroutines: concurrent callers during startup wait on the same one-shot
// signal, and once the Bridge is ready all later calls return immediately.
//
// A startup failure is permanent; every call returns the same error wrapped
// in ErrStartupFailed.
func (b *Bridge) EnsureReady() error {
	b.startOnce.Do(b.start)

	if b.startErr != nil {
		return errors.Join(ErrStartupFailed, b.startErr)
	}

	return nil
}

// start spawns the worker goroutine and blocks on the startup signal.
// It runs at most once, guarded by startOnce.
func (b *Bridge) start() {
	commands := make(chan command, b.queueCapacity)
	startupSignal := make(chan error, 1)

	go b.run(commands, startupSignal)

	if startupErr := <-startupSignal; startupErr != nil {
		b.logError(logMsgStartupFailed, logAttrError, startupErr.Error())
		b.startErr = startupErr

		return
	}

	b.commands = commands
	b.logInfo(logMsgWorkerStarted)
}

// run hosts the worker runtime: it performs startup, resolves the one-shot
// startup signal, and then consumes commands forever in FIFO order, spawning
// an independent goroutine per command. A failing task never terminates the
// loop.
func (b *Bridge) run(commands <-chan command, startupSignal chan<- error) {
	handlers, startupErr := b.startup(context.Background())
	if startupErr != nil {
		startupSignal <- startupErr
		return
	}

	startupSignal <- nil

	for cmd := range commands {
		go b.dispatch(handlers, cmd)
	}
}

// dispatch executes one command and resolves its reply slot exactly once.
// If the handler panics the slot is closed without a value, which callers
// observe as ErrTransportFailure.
func (b *Bridge) dispatch(handlers HandlerTable, cmd command) {
	defer func() {
		if r := recover(); r != nil {
			b.logError(logMsgTaskPanicked,
				logAttrPanic, fmt.Sprintf("%v", r),
				logAttrOperation, string(cmd.op),
				logAttrCommandID, cmd.id.String())

			close(cmd.reply)
		}
	}()

	start := time.Now()

	handler, known := handlers[cmd.op]
	if !known {
		cmd.reply <- result{err: errors.Join(ErrUnknownOperation, fmt.Errorf("operation %q", cmd.op))}
		return
	}

	payload, handlerErr := handler(context.Background(), cmd.payload)
	duration := time.Since(start)

	// The send never blocks: the slot is buffered and the caller may have
	// abandoned it, in which case the result is silently discarded.
	cmd.reply <- result{payload: payload, err: handlerErr}

	b.recordDispatch(cmd.op, duration, handlerErr)
	b.logDispatch(cmd, duration, handlerErr)
}

// Call submits one operation to the worker runtime and blocks the calling
// goroutine until its own reply slot resolves or ctx is done. It never
// executes database I/O itself.
//
// A caller that gives up (ctx done) leaves the worker task to complete into
// the discarded slot; this leaks nothing beyond the task's own lifetime.
func (b *Bridge) Call(ctx context.Context, op Operation, payload []byte) ([]byte, error) {
	if err := b.EnsureReady(); err != nil {
		return nil, err
	}

	cmd := newCommand(op, payload)

	select {
	case b.commands <- cmd:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	b.recordSubmission(ctx, cmd.op)
	b.logDebugContext(ctx, logMsgCommandSubmitted,
		logAttrOperation, string(cmd.op),
		logAttrCommandID, cmd.id.String())

	select {
	case res, resolved := <-cmd.reply:
		if !resolved {
			return nil, ErrTransportFailure
		}

		return res.payload, res.err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Bridge) recordSubmission(_ context.Context, op Operation) {
	if b.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: string(op)}
	b.metricsCollector.IncrementCounter(metricCommandsSubmitted, labels)
	b.metricsCollector.RecordValue(metricCommandQueueLength, float64(len(b.commands)), nil)
}

func (b *Bridge) recordDispatch(op Operation, duration time.Duration, handlerErr error) {
	if b.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: string(op)}
	b.metricsCollector.RecordDuration(metricDispatchDuration, duration, labels)

	if handlerErr != nil {
		b.metricsCollector.IncrementCounter(metricDispatchErrors, labels)
	}
}

func (b *Bridge) logDispatch(cmd command, duration time.Duration, handlerErr error) {
	if handlerErr != nil {
		b.logInfo(logMsgCommandFailed,
			logAttrOperation, string(cmd.op),
			logAttrCommandID, cmd.id.String(),
			logAttrError, handlerErr.Error(),
			logAttrDurationMS, durationToMilliseconds(duration))

		return
	}

	b.logInfo(logMsgCommandCompleted,
		logAttrOperation, string(cmd.op),
		logAttrCommandID, cmd.id.String(),
		logAttrDurationMS, durationToMilliseconds(duration))
}

func (b *Bridge) logDebugContext(ctx context.Context, msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func (b *Bridge) logInfo(msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.InfoContext(context.Background(), msg, args...)
		return
	}

	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Bridge) logError(msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.ErrorContext(context.Background(), msg, args...)
		return
	}

	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
