package retry

import (
	"context"
	"time"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ulogger"
)

type Options struct {
	RetryCount          int
	BackoffMultiplier   int
	BackoffDurationType time.Duration
	Message             string
	// RetryIf reports whether a failed attempt may be retried. Nil retries everything.
	RetryIf func(error) bool
}

type Option func(*Options)

func WithRetryCount(n int) Option {
	return func(o *Options) {
		o.RetryCount = n
	}
}

func WithBackoffMultiplier(n int) Option {
	return func(o *Options) {
		o.BackoffMultiplier = n
	}
}

func WithBackoffDurationType(d time.Duration) Option {
	return func(o *Options) {
		o.BackoffDurationType = d
	}
}

func WithMessage(msg string) Option {
	return func(o *Options) {
		o.Message = msg
	}
}

func WithRetryIf(fn func(error) bool) Option {
	return func(o *Options) {
		o.RetryIf = fn
	}
}

// Retry calls f until it succeeds, the attempts are used up, RetryIf rejects
// the error or ctx is done. The last error is returned.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Option) (T, error) {
	options := &Options{
		RetryCount:          3,
		BackoffMultiplier:   2,
		BackoffDurationType: time.Second,
		Message:             "retrying",
	}

	for _, o := range opts {
		o(options)
	}

	var (
		result T
		err    error
	)

	attempts := max(1, options.RetryCount)

	for i := 0; i < attempts; i++ {
		result, err = f()
		if err == nil {
			return result, nil
		}

		if options.RetryIf != nil && !options.RetryIf(err) {
			return result, err
		}

		if i == attempts-1 {
			break
		}

		logger.Warnf("[Retry] %s (attempt %d of %d): %v", options.Message, i+1, attempts, err)

		if sErr := BackoffAndSleep(ctx, i, options.BackoffMultiplier, options.BackoffDurationType); sErr != nil {
			return result, errors.NewProcessingError("%s: gave up after %d attempts", options.Message, i+1, err)
		}
	}

	return result, err
}
