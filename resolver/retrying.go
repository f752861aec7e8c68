package resolver

import (
	"context"
	"time"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/bsv-blockchain/utxomatch/ulogger"
	"github.com/bsv-blockchain/utxomatch/util/retry"
)

// Retrying retries failed lookups of another Resolver with a linear backoff.
// A UTXO_NOT_FOUND answer is final.
type Retrying struct {
	inner   Resolver
	logger  ulogger.Logger
	count   int
	backoff time.Duration
}

func NewRetrying(logger ulogger.Logger, inner Resolver, count int, backoff time.Duration) *Retrying {
	return &Retrying{
		inner:   inner,
		logger:  logger,
		count:   count,
		backoff: backoff,
	}
}

func NewRetryingFromSettings(logger ulogger.Logger, inner Resolver, tSettings *settings.Settings) *Retrying {
	return NewRetrying(logger, inner, tSettings.Resolver.RetryCount, tSettings.Resolver.RetryBackoff)
}

func (r *Retrying) Resolve(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error) {
	return retry.Retry(ctx, r.logger, func() (*model.UtxoInfo, error) {
		return r.inner.Resolve(ctx, meta)
	},
		retry.WithRetryCount(r.count),
		retry.WithBackoffMultiplier(1),
		retry.WithBackoffDurationType(r.backoff),
		retry.WithMessage("resolving "+meta.String()),
		retry.WithRetryIf(func(err error) bool {
			return !errors.Is(err, errors.ErrUtxoNotFound)
		}),
	)
}
