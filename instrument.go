package bisect

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/bisect/executor"
)

// Instrument wraps an executor with metrics and logging. Every dispatch and
// staging acquisition flowing through the returned executor is recorded.
//
// A nil collector defaults to NoopMetricsCollector; a nil logger to
// NoopLogger. The wrapped executor is otherwise transparent, so it can be
// passed anywhere a backend tag is expected.
func Instrument(ex executor.Executor, metrics MetricsCollector, logger *Logger) executor.Executor {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	if logger == nil {
		logger = NoopLogger()
	}
	if named, ok := ex.(fmt.Stringer); ok {
		logger = logger.WithExecutor(named.String())
	}
	return &instrumented{ex: ex, metrics: metrics, logger: logger}
}

type instrumented struct {
	ex      executor.Executor
	metrics MetricsCollector
	logger  *Logger
}

func (in *instrumented) ForEach(ctx context.Context, n int, task func(i int)) error {
	start := time.Now()
	err := in.ex.ForEach(ctx, n, task)
	elapsed := time.Since(start)

	in.metrics.RecordDispatch(n, elapsed, err)
	in.logger.LogDispatch(ctx, n, elapsed, err)

	return err
}

func (in *instrumented) AcquireStaging(ctx context.Context, bytes int64) (func(), error) {
	release, err := in.ex.AcquireStaging(ctx, bytes)

	in.metrics.RecordStaging(bytes, err)
	in.logger.LogStaging(ctx, bytes, err)

	return release, err
}
