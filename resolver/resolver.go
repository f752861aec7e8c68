// Package resolver turns raw UTXO identities into the rich view the
// matcher evaluates predicates against.
package resolver

import (
	"context"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/util"
	"golang.org/x/sync/errgroup"
)

// Resolver looks up the value and rune entries of a UTXO. Implementations
// return an ERR_UTXO_NOT_FOUND error for identities they do not know.
type Resolver interface {
	Resolve(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error)
}

// Func adapts a function to the Resolver interface.
type Func func(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error)

func (f Func) Resolve(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error) {
	return f(ctx, meta)
}

// MetaOnly resolves every identity to an info with no value and no runes.
// It stands in for a chain index in hosts that do not have one.
type MetaOnly struct{}

func (MetaOnly) Resolve(_ context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error) {
	info := model.NewMetaOnlyUtxoInfo(meta)
	return &info, nil
}

// ResolveAll resolves metas with at most concurrency lookups in flight and
// returns the infos in input order. When several lookups fail, the error of
// the earliest meta is returned. Resolvers passed here must be safe for
// concurrent use.
func ResolveAll(ctx context.Context, r Resolver, metas []model.UtxoMeta, concurrency int) ([]model.UtxoInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewProcessingError("resolving %d utxos", len(metas), err)
	}

	infos := make([]model.UtxoInfo, len(metas))
	errs := make([]error, len(metas))

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, concurrency)

	for i := range metas {
		g.Go(func() error {
			errs[i] = resolveOne(gCtx, r, metas[i], &infos[i])
			return nil
		})
	}

	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return infos, nil
}

func resolveOne(ctx context.Context, r Resolver, meta model.UtxoMeta, dst *model.UtxoInfo) error {
	if err := ctx.Err(); err != nil {
		return errors.NewProcessingError("resolving %s", meta, err)
	}

	info, err := r.Resolve(ctx, meta)
	if err != nil {
		return err
	}

	if info == nil {
		return errors.NewUtxoNotFoundError("%s resolved to nothing", meta)
	}

	if info.Meta != meta {
		return errors.NewProcessingError("resolver returned %s for %s", info.Meta, meta)
	}

	*dst = *info

	return nil
}
