package resolver

import (
	"context"
	"sync"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/dolthub/swiss"
)

// Registry is an in-memory Resolver backed by registered infos. Identities
// that were never registered go to the fallback, or fail with
// ERR_UTXO_NOT_FOUND when there is none.
type Registry struct {
	mu       sync.RWMutex
	m        *swiss.Map[model.UtxoMeta, model.UtxoInfo]
	fallback Resolver
}

func NewRegistry(size uint32, fallback Resolver) *Registry {
	return &Registry{
		m:        swiss.NewMap[model.UtxoMeta, model.UtxoInfo](size),
		fallback: fallback,
	}
}

// Register stores infos, replacing any earlier entry with the same identity.
func (r *Registry) Register(infos ...model.UtxoInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range infos {
		r.m.Put(infos[i].Meta, infos[i].Clone())
	}
}

func (r *Registry) Unregister(meta model.UtxoMeta) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.m.Delete(meta)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.m.Count()
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.m.Clear()
}

func (r *Registry) Resolve(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error) {
	r.mu.RLock()
	info, ok := r.m.Get(meta)
	r.mu.RUnlock()

	if ok {
		out := info.Clone()
		return &out, nil
	}

	if r.fallback != nil {
		return r.fallback.Resolve(ctx, meta)
	}

	return nil, errors.NewUtxoNotFoundError("%s is not registered", meta)
}
