// Package tracing wraps otel spans together with the prometheus metrics and
// log lines that usually accompany them.
package tracing

import (
	"context"
	"fmt"
	"time"

	"github.com/bsv-blockchain/utxomatch/ulogger"
	"github.com/prometheus/client_golang/prometheus"
)

type Options func(s *TraceOptions)

type TraceOptions struct {
	Histogram  prometheus.Histogram
	Counter    prometheus.Counter
	Logger     ulogger.Logger
	LogMessage string
	LogArgs    []interface{}
}

// WithHistogram sets the prometheus histogram to be observed when the span is finished.
func WithHistogram(histogram prometheus.Histogram) Options {
	return func(s *TraceOptions) {
		s.Histogram = histogram
	}
}

// WithCounter sets the prometheus counter to be incremented when the span is finished.
func WithCounter(counter prometheus.Counter) Options {
	return func(s *TraceOptions) {
		s.Counter = counter
	}
}

// WithLogMessage logs format at DEBUG when the span starts and again, with
// the elapsed time, when it finishes.
func WithLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		s.Logger = logger
		s.LogMessage = format
		s.LogArgs = args
	}
}

// StartTracing starts a span and returns its context, the span itself and a
// function that finishes it. The function records err on the span when it
// is non-nil.
func StartTracing(ctx context.Context, name string, setOptions ...Options) (context.Context, *Span, func(err error)) {
	options := &TraceOptions{}
	for _, opt := range setOptions {
		opt(options)
	}

	span := Start(ctx, name)
	start := time.Now()

	if options.Logger != nil && options.LogMessage != "" {
		options.Logger.Debugf(options.LogMessage, options.LogArgs...)
	}

	return span.Ctx, &span, func(err error) {
		span.RecordError(err)
		span.Finish()

		if options.Histogram != nil {
			options.Histogram.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
		}

		if options.Counter != nil {
			options.Counter.Inc()
		}

		if options.Logger != nil && options.LogMessage != "" {
			done := fmt.Sprintf(" DONE in %s", time.Since(start))
			options.Logger.Debugf(options.LogMessage+done, options.LogArgs...)
		}
	}
}
