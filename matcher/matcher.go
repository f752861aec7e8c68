/*
Package matcher assigns caller supplied UTXOs to the slots of a declaration.

The matcher walks the declared slots in order. In the default greedy mode
each single, optional and array slot takes the first remaining candidates
that satisfy its predicate, and a trailing remainder slot takes every
remaining candidate its predicate accepts. In strict-order mode candidates
are consumed positionally and a candidate that fails the slot it lines up
with fails the whole match.

Every candidate must end up in exactly one slot. Duplicate identities are
rejected before any predicate runs, and candidates left over once the last
slot is processed fail the match with ERR_UNEXPECTED_EXTRA_UTXOS.

A Matcher holds no per-match state and may be shared between goroutines.
*/
package matcher

import (
	"context"
	"strings"
	"time"

	"github.com/bsv-blockchain/utxomatch/accounting"
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/pkg/bounded"
	"github.com/bsv-blockchain/utxomatch/predicate"
	"github.com/bsv-blockchain/utxomatch/resolver"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/bsv-blockchain/utxomatch/tracing"
	"github.com/bsv-blockchain/utxomatch/ulogger"
)

type Matcher struct {
	logger   ulogger.Logger
	settings *settings.Settings
	resolver resolver.Resolver
	options  *Options
}

// New returns a matcher resolving candidates through r. A nil r resolves
// every candidate to its identity alone.
func New(logger ulogger.Logger, tSettings *settings.Settings, r resolver.Resolver, opts ...Option) *Matcher {
	if r == nil {
		r = resolver.MetaOnly{}
	}

	m := &Matcher{
		logger:   logger,
		settings: tSettings,
		resolver: r,
		options:  ProcessOptions(tSettings, opts...),
	}

	if m.options.metricsEnabled {
		initPrometheusMetrics()
	}

	return m
}

// Match checks raw for duplicates, resolves each identity and assigns the
// resolved candidates to the slots of decl.
func (m *Matcher) Match(ctx context.Context, decl *ir.DeriveInputIr, raw []model.UtxoMeta) (result *Result, err error) {
	if decl == nil {
		return nil, errors.NewInvalidArgumentError("nil declaration")
	}

	traceOpts := []tracing.Options{
		tracing.WithLogMessage(m.logger, "[Match][%s] matching %d utxos", decl.Name, len(raw)),
	}

	if m.options.metricsEnabled {
		traceOpts = append(traceOpts, tracing.WithHistogram(prometheusMatch))
		prometheusMatchInputs.Observe(float64(len(raw)))
	}

	ctx, span, deferFn := tracing.StartTracing(ctx, "Matcher:Match", traceOpts...)
	defer func() {
		m.recordError(err)
		deferFn(err)
	}()

	span.SetTag("declaration", decl.Name)
	span.SetInt("inputs", len(raw))

	if err = m.checkInputs(decl, raw); err != nil {
		return nil, err
	}

	concurrency := m.settings.Resolver.Concurrency
	if concurrency <= 0 {
		return nil, errors.NewConfigurationError("utxomatch_resolverConcurrency must be positive, got %d", concurrency)
	}

	infos, err := resolver.ResolveAll(ctx, m.resolver, raw, concurrency)
	if err != nil {
		return nil, err
	}

	return m.matchResolved(decl, infos)
}

// MatchResolved assigns already resolved candidates to the slots of decl.
// It performs no I/O.
func (m *Matcher) MatchResolved(decl *ir.DeriveInputIr, infos []model.UtxoInfo) (result *Result, err error) {
	if decl == nil {
		return nil, errors.NewInvalidArgumentError("nil declaration")
	}

	defer func() {
		m.recordError(err)
	}()

	return m.matchResolved(decl, infos)
}

func (m *Matcher) matchResolved(decl *ir.DeriveInputIr, infos []model.UtxoInfo) (*Result, error) {
	start := time.Now()

	metas := make([]model.UtxoMeta, len(infos))
	for i := range infos {
		metas[i] = infos[i].Meta
	}

	if err := m.checkInputs(decl, metas); err != nil {
		return nil, err
	}

	plan := decl.Clone()
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	st := newState(m, plan, infos)

	var err error
	if m.options.strictOrder {
		err = st.runStrict()
	} else {
		err = st.runGreedy()
	}

	if err != nil {
		m.logger.Warnf("[Match][%s] failed: %v", plan.Name, err)
		return nil, err
	}

	result, err := st.result()
	if err != nil {
		return nil, err
	}

	if m.options.metricsEnabled {
		prometheusMatchResolved.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
		prometheusMatchedUtxos.Add(float64(len(infos)))
	}

	m.logger.Debugf("[Match][%s] bound %d utxos to %d slots", plan.Name, len(infos), len(plan.Fields))

	return result, nil
}

// checkInputs rejects oversized input lists and duplicate identities.
func (m *Matcher) checkInputs(decl *ir.DeriveInputIr, metas []model.UtxoMeta) error {
	limit := m.settings.Matcher.MaxInputs
	if limit <= 0 {
		return errors.NewConfigurationError("utxomatch_maxInputs must be positive, got %d", limit)
	}

	if len(metas) > limit {
		return errors.NewTooManyUtxosError("[%s] %d utxos exceed the limit of %d", decl.Name, len(metas), limit)
	}

	seen := bounded.NewSet[model.UtxoMeta](limit)

	for _, meta := range metas {
		if err := seen.Insert(meta); err != nil {
			return errors.NewDuplicateUtxoMetaError("[%s] %s appears more than once", decl.Name, meta, err)
		}
	}

	return nil
}

func (m *Matcher) recordError(err error) {
	if err == nil || !m.options.metricsEnabled {
		return
	}

	prometheusMatchErrors.WithLabelValues(errors.CodeOf(err).String()).Inc()
}

// state is the match in progress: which candidates are still in the pool
// and what each slot has taken so far.
type state struct {
	m        *Matcher
	decl     *ir.DeriveInputIr
	preds    []*predicate.Predicate
	infos    []model.UtxoInfo
	consumed []bool
	left     int
	bindings []Binding
	matched  *bounded.Set[model.UtxoMeta]
}

func newState(m *Matcher, decl *ir.DeriveInputIr, infos []model.UtxoInfo) *state {
	st := &state{
		m:        m,
		decl:     decl,
		preds:    predicate.CompileAll(decl),
		infos:    infos,
		consumed: make([]bool, len(infos)),
		left:     len(infos),
		bindings: make([]Binding, len(decl.Fields)),
		matched:  bounded.NewSet[model.UtxoMeta](len(infos)),
	}

	for i := range decl.Fields {
		f := &decl.Fields[i]

		capacity := f.Capacity()
		if capacity < 0 {
			capacity = len(infos)
		}

		st.bindings[i] = Binding{
			Ident: f.Ident,
			Kind:  f.Kind,
			utxos: bounded.NewList[model.UtxoInfo](capacity),
		}
	}

	return st
}

// BoundValue implements predicate.Env.
func (st *state) BoundValue(slot int) (uint64, bool) {
	if slot < 0 || slot >= len(st.bindings) || st.bindings[slot].Kind != ir.KindSingle {
		return 0, false
	}

	info, ok := st.bindings[slot].utxos.Get(0)
	if !ok {
		return 0, false
	}

	return info.Value, true
}

// AnchorIdentity implements predicate.Env.
func (st *state) AnchorIdentity(resource int) (model.UtxoMeta, bool) {
	if resource < 0 || resource >= len(st.decl.Resources) {
		return model.UtxoMeta{}, false
	}

	return st.m.options.anchors.AnchorIdentity(st.decl.Resources[resource])
}

func (st *state) matches(slot, candidate int) bool {
	return st.preds[slot].Matches(&st.infos[candidate], st)
}

// find returns the first remaining candidate accepted by slot, or -1.
func (st *state) find(slot int) int {
	for i := range st.infos {
		if !st.consumed[i] && st.matches(slot, i) {
			return i
		}
	}

	return -1
}

func (st *state) take(slot, candidate int) error {
	info := st.infos[candidate]

	if err := st.matched.Insert(info.Meta); err != nil {
		return errors.NewDuplicateUtxoMetaError("[%s] %s bound twice", st.decl.Name, info.Meta, err)
	}

	if err := st.bindings[slot].utxos.Push(info); err != nil {
		return errors.NewProcessingError("[%s] slot %s is over capacity", st.decl.Name, st.decl.Fields[slot].Ident, err)
	}

	st.consumed[candidate] = true
	st.left--

	return nil
}

func (st *state) runGreedy() error {
	for slot := range st.decl.Fields {
		f := &st.decl.Fields[slot]

		switch f.Kind {
		case ir.KindSingle, ir.KindArray:
			for n := 0; n < f.Required(); n++ {
				idx := st.find(slot)
				if idx < 0 {
					return st.missing(slot, n)
				}

				if err := st.take(slot, idx); err != nil {
					return err
				}
			}

		case ir.KindOptional:
			if idx := st.find(slot); idx >= 0 {
				if err := st.take(slot, idx); err != nil {
					return err
				}
			}

		case ir.KindVec:
			for i := range st.infos {
				if st.consumed[i] || !st.matches(slot, i) {
					continue
				}

				if err := st.take(slot, i); err != nil {
					return err
				}
			}
		}
	}

	return st.leftovers()
}

func (st *state) runStrict() error {
	pos := 0

	for slot := range st.decl.Fields {
		f := &st.decl.Fields[slot]

		switch f.Kind {
		case ir.KindSingle, ir.KindArray:
			for n := 0; n < f.Required(); n++ {
				if pos >= len(st.infos) {
					return st.missing(slot, n)
				}

				if err := st.takeAligned(slot, pos); err != nil {
					return err
				}

				pos++
			}

		case ir.KindOptional:
			if pos >= len(st.infos) {
				continue
			}

			if st.matches(slot, pos) {
				if err := st.take(slot, pos); err != nil {
					return err
				}

				pos++

				continue
			}

			// a skipped candidate has nowhere to go after the last slot
			if slot == len(st.decl.Fields)-1 {
				return st.takeAligned(slot, pos)
			}

		case ir.KindVec:
			for ; pos < len(st.infos); pos++ {
				if err := st.takeAligned(slot, pos); err != nil {
					return err
				}
			}
		}
	}

	return st.leftovers()
}

func (st *state) takeAligned(slot, pos int) error {
	if err := st.preds[slot].Check(&st.infos[pos], st); err != nil {
		return errors.NewStrictOrderMismatchError("[%s] input %d does not fit slot %s", st.decl.Name, pos, st.decl.Fields[slot].Ident, err)
	}

	return st.take(slot, pos)
}

// missing builds the error for a required slot that matched only have
// candidates.
func (st *state) missing(slot, have int) error {
	f := &st.decl.Fields[slot]

	if st.m.options.detailedErrors {
		for i := range st.infos {
			if st.consumed[i] {
				continue
			}

			if err := st.preds[slot].Check(&st.infos[i], st); err != nil {
				return err
			}

			break
		}
	}

	return errors.NewMissingRequiredUtxoError("[%s] slot %s (%s) matched %d of %d, %d candidates left",
		st.decl.Name, f.Ident, f.Kind, have, f.Required(), st.left)
}

func (st *state) leftovers() error {
	if st.left == 0 {
		return nil
	}

	extra := make([]string, 0, st.left)

	for i := range st.infos {
		if !st.consumed[i] {
			extra = append(extra, st.infos[i].Meta.String())
		}
	}

	return errors.NewUnexpectedExtraUtxosError("[%s] %d utxos not claimed by any slot: %s", st.decl.Name, st.left, strings.Join(extra, ", "))
}

func (st *state) result() (*Result, error) {
	ledger := accounting.NewLedger(max(0, st.m.settings.Matcher.MaxRuneTypes))

	for i := range st.bindings {
		for _, info := range st.bindings[i].utxos.All() {
			if err := ledger.AddUtxo(&info); err != nil {
				return nil, err
			}
		}
	}

	return &Result{
		Name:     st.decl.Name,
		Bindings: st.bindings,
		Totals:   ledger,
		matched:  st.matched,
	}, nil
}
