package matcher

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/resolver"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/bsv-blockchain/utxomatch/ulogger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

var (
	runeA = model.RuneID{Block: 7, Tx: 0}
	runeB = model.RuneID{Block: 840000, Tx: 2}
)

func meta(b byte) model.UtxoMeta {
	var h chainhash.Hash
	h[0] = b

	return model.NewUtxoMeta(h, uint32(b))
}

func utxo(b byte, value uint64, runes ...model.RuneAmount) model.UtxoInfo {
	return model.UtxoInfo{Meta: meta(b), Value: value, Runes: runes}
}

func metas(infos ...model.UtxoInfo) []model.UtxoMeta {
	out := make([]model.UtxoMeta, len(infos))
	for i := range infos {
		out[i] = infos[i].Meta
	}

	return out
}

func newMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()

	return New(ulogger.NewErrorTestLogger(t), settings.NewSettings(), nil, opts...)
}

func assertCode(t *testing.T, err error, target *errors.Error) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "expected %v, got %v", target.Code(), err)
}

func TestMatch_SingleThenRemainder(t *testing.T) {
	decl := ir.New("Transfer").Single("fee", ir.Value(5000)).Vec("rest").MustBuild()
	infos := []model.UtxoInfo{utxo(1, 5000), utxo(2, 200), utxo(3, 300)}

	res, err := newMatcher(t).MatchResolved(decl, infos)
	require.NoError(t, err)

	fee, ok := res.Single("fee")
	require.True(t, ok)
	assert.Equal(t, infos[0], fee)

	rest, ok := res.Rest("rest")
	require.True(t, ok)
	assert.Equal(t, infos[1:], rest)

	assert.Equal(t, 3, res.Len())
	assert.Equal(t, uint64(5500), res.Totals.TotalValue())
}

func TestMatch_ValueMismatch(t *testing.T) {
	decl := ir.New("PayFee").Single("fee", ir.Value(5000)).MustBuild()

	_, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 200)})
	assertCode(t, err, errors.ErrMissingRequiredUtxo)

	_, err = newMatcher(t, WithDetailedErrors(true)).MatchResolved(decl, []model.UtxoInfo{utxo(1, 200)})
	assertCode(t, err, errors.ErrInvalidUtxoValue)
}

func TestMatch_RunesNoneRejectsRunedUtxo(t *testing.T) {
	decl := ir.New("PlainInput").Single("plain", ir.Runes(ir.RunesNone)).MustBuild()
	infos := []model.UtxoInfo{utxo(1, 1000, model.NewRuneAmount(runeA, 3))}

	_, err := newMatcher(t).MatchResolved(decl, infos)
	assertCode(t, err, errors.ErrMissingRequiredUtxo)

	_, err = newMatcher(t, WithDetailedErrors(true)).MatchResolved(decl, infos)
	assertCode(t, err, errors.ErrInvalidRunesPresence)
}

func TestMatch_ArrayLeavesExtra(t *testing.T) {
	decl := ir.New("RunePair").Array("pair", 2, ir.Runes(ir.RunesSome)).MustBuild()
	r1 := utxo(1, 546, model.NewRuneAmount(runeA, 1))
	r2 := utxo(2, 546, model.NewRuneAmount(runeB, 2))
	plain := utxo(3, 1000)

	_, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{r1, plain, r2})
	assertCode(t, err, errors.ErrUnexpectedExtraUtxos)

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{r1, r2})
	require.NoError(t, err)

	pair, ok := res.Array("pair")
	require.True(t, ok)
	assert.Equal(t, []model.UtxoInfo{r1, r2}, pair)
	assert.Equal(t, uint128.From64(1), res.Totals.RuneTotal(runeA))
	assert.Equal(t, uint128.From64(2), res.Totals.RuneTotal(runeB))
}

func TestGreedy_DeclarationOrderWins(t *testing.T) {
	decl := ir.New("X").Single("runed", ir.Runes(ir.RunesSome)).Single("any").MustBuild()
	plain := utxo(1, 1)
	runed := utxo(2, 1, model.NewRuneAmount(runeA, 1))

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{plain, runed})
	require.NoError(t, err)

	got, _ := res.Single("runed")
	assert.Equal(t, runed, got)

	got, _ = res.Single("any")
	assert.Equal(t, plain, got)
}

func TestGreedy_NotGloballyOptimal(t *testing.T) {
	// the catch-all slot takes the 5000 utxo first, leaving nothing for the
	// value slot even though a different assignment exists
	decl := ir.New("X").Single("any").Single("five", ir.Value(5000)).MustBuild()

	_, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 5000), utxo(2, 7)})
	assertCode(t, err, errors.ErrMissingRequiredUtxo)
}

func TestGreedy_Optional(t *testing.T) {
	decl := ir.New("X").Single("a", ir.Value(1)).Optional("o", ir.Value(9)).MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1)})
	require.NoError(t, err)

	o, ok := res.Optional("o")
	assert.True(t, ok)
	assert.Nil(t, o)

	b, _ := res.Get("o")
	assert.False(t, b.IsSet())

	res, err = newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(2, 9), utxo(1, 1)})
	require.NoError(t, err)

	o, ok = res.Optional("o")
	require.True(t, ok)
	require.NotNil(t, o)
	assert.Equal(t, meta(2), o.Meta)

	_, ok = res.Optional("a")
	assert.False(t, ok)
}

func TestGreedy_RemainderPredicate(t *testing.T) {
	decl := ir.New("X").Vec("plain", ir.Runes(ir.RunesNone)).MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2)})
	require.NoError(t, err)

	rest, _ := res.Rest("plain")
	assert.Len(t, rest, 2)

	_, err = newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2, model.NewRuneAmount(runeA, 1))})
	assertCode(t, err, errors.ErrUnexpectedExtraUtxos)
}

func TestGreedy_EmptyRemainder(t *testing.T) {
	decl := ir.New("X").Single("a").Vec("rest").MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1)})
	require.NoError(t, err)

	rest, ok := res.Rest("rest")
	assert.True(t, ok)
	assert.Empty(t, rest)
}

func TestEmptyDeclaration(t *testing.T) {
	decl := ir.New("Nothing").MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Matched())

	_, err = newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1)})
	assertCode(t, err, errors.ErrUnexpectedExtraUtxos)
}

func TestValueReference(t *testing.T) {
	decl := ir.New("X").
		Single("fee", ir.Runes(ir.RunesNone)).
		Single("change", ir.ValueOf("fee")).
		Vec("rest").
		MustBuild()

	infos := []model.UtxoInfo{utxo(1, 700), utxo(2, 500), utxo(3, 700)}

	res, err := newMatcher(t).MatchResolved(decl, infos)
	require.NoError(t, err)

	change, _ := res.Single("change")
	assert.Equal(t, meta(3), change.Meta)

	rest, _ := res.Rest("rest")
	assert.Equal(t, []model.UtxoInfo{infos[1]}, rest)
}

func TestAnchors(t *testing.T) {
	decl := ir.New("X").Resources("pool").Single("pool", ir.AnchorTo("pool")).Vec("rest").MustBuild()
	infos := []model.UtxoInfo{utxo(1, 1), utxo(2, 2), utxo(3, 3)}

	res, err := newMatcher(t, WithAnchors(StaticAnchors{"pool": meta(3)})).MatchResolved(decl, infos)
	require.NoError(t, err)

	pool, _ := res.Single("pool")
	assert.Equal(t, meta(3), pool.Meta)

	_, err = newMatcher(t).MatchResolved(decl, infos)
	assertCode(t, err, errors.ErrMissingRequiredUtxo)

	_, err = newMatcher(t, WithAnchors(nil), WithDetailedErrors(true)).MatchResolved(decl, infos)
	assertCode(t, err, errors.ErrInvalidAnchor)

	_, err = newMatcher(t, WithAnchors(StaticAnchors{"pool": meta(9)}), WithDetailedErrors(true)).MatchResolved(decl, infos)
	assertCode(t, err, errors.ErrInvalidAnchor)
}

func TestDetailedErrors_RuneID(t *testing.T) {
	decl := ir.New("X").Single("a", ir.RuneID(runeB)).MustBuild()

	_, err := newMatcher(t, WithDetailedErrors(true)).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1, model.NewRuneAmount(runeA, 1))})
	assertCode(t, err, errors.ErrInvalidRuneID)
}

func TestDuplicatesRejectedBeforeResolution(t *testing.T) {
	var calls atomic.Int32

	r := resolver.Func(func(_ context.Context, m model.UtxoMeta) (*model.UtxoInfo, error) {
		calls.Add(1)
		info := model.NewMetaOnlyUtxoInfo(m)

		return &info, nil
	})

	m := New(ulogger.NewErrorTestLogger(t), settings.NewSettings(), r)
	decl := ir.New("X").Vec("all").MustBuild()

	_, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(1), meta(2), meta(1)})
	assertCode(t, err, errors.ErrDuplicateUtxoMeta)
	assert.Equal(t, int32(0), calls.Load())

	_, err = m.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(1, 1)})
	assertCode(t, err, errors.ErrDuplicateUtxoMeta)
}

func TestTooManyUtxos(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.Matcher.MaxInputs = 2

	m := New(ulogger.NewErrorTestLogger(t), tSettings, nil)
	decl := ir.New("X").Vec("all").MustBuild()

	_, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(1), meta(2), meta(3)})
	assertCode(t, err, errors.ErrTooManyUtxos)

	_, err = m.Match(context.Background(), decl, []model.UtxoMeta{meta(1), meta(2)})
	require.NoError(t, err)
}

func TestRuneTypeLimit(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.Matcher.MaxRuneTypes = 1

	m := New(ulogger.NewErrorTestLogger(t), tSettings, nil)
	decl := ir.New("X").Vec("all").MustBuild()

	_, err := m.MatchResolved(decl, []model.UtxoInfo{
		utxo(1, 1, model.NewRuneAmount(runeA, 1)),
		utxo(2, 1, model.NewRuneAmount(runeB, 1)),
	})
	assertCode(t, err, errors.ErrRuneInputListFull)
}

func TestInvalidDeclaration(t *testing.T) {
	decl := &ir.DeriveInputIr{
		Name:   "Bad",
		Fields: []ir.Field{{Ident: "r", Kind: ir.KindVec}, {Ident: "a", Kind: ir.KindSingle}},
	}

	_, err := newMatcher(t).MatchResolved(decl, nil)
	assertCode(t, err, errors.ErrInvalidDeclaration)

	_, err = newMatcher(t).MatchResolved(nil, nil)
	assertCode(t, err, errors.ErrInvalidArgument)
}

func TestMatch_Resolver(t *testing.T) {
	infos := []model.UtxoInfo{utxo(1, 5000), utxo(2, 200)}

	registry := resolver.NewRegistry(8, nil)
	registry.Register(infos...)

	m := New(ulogger.NewErrorTestLogger(t), settings.NewSettings(), registry)
	decl := ir.New("X").Single("fee", ir.Value(5000)).Vec("rest").MustBuild()

	res, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(2), meta(1)})
	require.NoError(t, err)

	fee, _ := res.Single("fee")
	assert.Equal(t, infos[0], fee)

	_, err = m.Match(context.Background(), decl, []model.UtxoMeta{meta(1), meta(5)})
	assertCode(t, err, errors.ErrUtxoNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Match(ctx, decl, []model.UtxoMeta{meta(1)})
	assertCode(t, err, errors.ErrProcessing)

	_, err = m.Match(context.Background(), nil, nil)
	assertCode(t, err, errors.ErrInvalidArgument)
}

func TestMatch_ResolverConcurrency(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.Resolver.Concurrency = 0

	m := New(ulogger.NewErrorTestLogger(t), tSettings, nil)
	decl := ir.New("X").Vec("all").MustBuild()

	_, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(1)})
	assertCode(t, err, errors.ErrConfiguration)

	tSettings.Resolver.Concurrency = 1

	res, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(1), meta(2)})
	require.NoError(t, err)

	all, _ := res.Rest("all")
	assert.Len(t, all, 2)
}

func TestMatch_MetaOnlyDefault(t *testing.T) {
	m := newMatcher(t)
	decl := ir.New("X").Single("a", ir.Value(0), ir.Runes(ir.RunesNone)).MustBuild()

	res, err := m.Match(context.Background(), decl, []model.UtxoMeta{meta(4)})
	require.NoError(t, err)

	a, _ := res.Single("a")
	assert.Equal(t, model.NewMetaOnlyUtxoInfo(meta(4)), a)
}

func TestStrictOrder(t *testing.T) {
	decl := ir.New("S").
		Single("a", ir.Value(1)).
		Array("b", 2, ir.Runes(ir.RunesSome)).
		Optional("c", ir.Value(3)).
		Vec("d").
		MustBuild()

	r1 := utxo(10, 546, model.NewRuneAmount(runeA, 1))
	r2 := utxo(11, 546, model.NewRuneAmount(runeA, 2))
	strict := newMatcher(t, WithStrictOrder(true))

	t.Run("in order", func(t *testing.T) {
		res, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), r1, r2, utxo(3, 3), utxo(4, 4), utxo(5, 5)})
		require.NoError(t, err)

		c, _ := res.Optional("c")
		require.NotNil(t, c)
		assert.Equal(t, meta(3), c.Meta)

		d, _ := res.Rest("d")
		assert.Equal(t, []model.UtxoMeta{meta(4), meta(5)}, metas(d...))
		assert.Equal(t, uint128.From64(3), res.Totals.RuneTotal(runeA))
	})

	t.Run("optional skipped", func(t *testing.T) {
		res, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), r1, r2, utxo(4, 4)})
		require.NoError(t, err)

		c, ok := res.Optional("c")
		assert.True(t, ok)
		assert.Nil(t, c)

		d, _ := res.Rest("d")
		assert.Equal(t, []model.UtxoMeta{meta(4)}, metas(d...))
	})

	t.Run("out of order", func(t *testing.T) {
		infos := []model.UtxoInfo{r1, utxo(1, 1), r2}

		_, err := strict.MatchResolved(decl, infos)
		assertCode(t, err, errors.ErrStrictOrderMismatch)
		assert.True(t, errors.Is(err, errors.ErrInvalidUtxoValue))

		// the same input matches greedily
		_, err = newMatcher(t).MatchResolved(decl, infos)
		require.NoError(t, err)
	})

	t.Run("too few", func(t *testing.T) {
		_, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), r1})
		assertCode(t, err, errors.ErrMissingRequiredUtxo)
	})
}

func TestStrictOrder_Remainder(t *testing.T) {
	strict := newMatcher(t, WithStrictOrder(true))

	decl := ir.New("S").Vec("plain", ir.Runes(ir.RunesNone)).MustBuild()
	_, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2, model.NewRuneAmount(runeA, 1))})
	assertCode(t, err, errors.ErrStrictOrderMismatch)

	decl = ir.New("S").Single("a").MustBuild()
	_, err = strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2)})
	assertCode(t, err, errors.ErrUnexpectedExtraUtxos)
}

func TestStrictOrder_TrailingOptional(t *testing.T) {
	strict := newMatcher(t, WithStrictOrder(true))
	decl := ir.New("S").Single("a", ir.Value(1)).Optional("o", ir.Value(9)).MustBuild()

	_, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 5)})
	assertCode(t, err, errors.ErrStrictOrderMismatch)
	assert.True(t, errors.Is(err, errors.ErrInvalidUtxoValue))

	res, err := strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1)})
	require.NoError(t, err)

	o, ok := res.Optional("o")
	assert.True(t, ok)
	assert.Nil(t, o)

	res, err = strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 9)})
	require.NoError(t, err)

	o, _ = res.Optional("o")
	require.NotNil(t, o)
	assert.Equal(t, meta(2), o.Meta)

	// a matching optional followed by an extra candidate is still an extra
	_, err = strict.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 9), utxo(3, 3)})
	assertCode(t, err, errors.ErrUnexpectedExtraUtxos)
}

func randomInfos(rng *rand.Rand) []model.UtxoInfo {
	values := []uint64{546, 1000, 5000}
	n := 1 + rng.IntN(12)
	infos := make([]model.UtxoInfo, n)

	for i := range infos {
		infos[i] = utxo(byte(i+1), values[rng.IntN(len(values))])
		if rng.IntN(2) == 0 {
			infos[i].Runes = []model.RuneAmount{model.NewRuneAmount(runeA, rng.Uint64N(100))}
		}
	}

	return infos
}

func TestProperty_TotalityAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	alwaysFits := ir.New("Total").
		Optional("fee", ir.Value(5000)).
		Optional("runed", ir.Runes(ir.RunesSome)).
		Vec("rest").
		MustBuild()

	mayFail := ir.New("Partial").
		Single("fee", ir.Value(5000)).
		Array("dust", 2, ir.Value(546)).
		Optional("runed", ir.Runes(ir.RunesSome)).
		MustBuild()

	for _, strictOrder := range []bool{false, true} {
		m := newMatcher(t, WithStrictOrder(strictOrder))

		for i := 0; i < 200; i++ {
			infos := randomInfos(rng)

			res, err := m.MatchResolved(alwaysFits, infos)
			require.NoError(t, err)

			matched := res.Matched()
			require.Len(t, matched, len(infos))

			seen := make(map[model.UtxoMeta]int)
			for _, info := range matched {
				seen[info.Meta]++
			}

			for _, info := range infos {
				assert.Equal(t, 1, seen[info.Meta], "utxo %s bound %d times", info.Meta, seen[info.Meta])
				assert.True(t, res.Contains(info.Meta))
			}

			first, err1 := m.MatchResolved(mayFail, infos)
			second, err2 := m.MatchResolved(mayFail, infos)

			assert.Equal(t, errors.CodeOf(err1), errors.CodeOf(err2))

			if err1 == nil {
				assert.Equal(t, first.Matched(), second.Matched())
				assert.Len(t, first.Matched(), len(infos))
			}
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	m := newMatcher(t)
	decl := ir.New("Transfer").Single("fee", ir.Value(5000)).Vec("rest").MustBuild()

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			infos := []model.UtxoInfo{utxo(byte(i+1), 100), utxo(byte(i+100), 5000)}

			res, err := m.MatchResolved(decl, infos)
			if assert.NoError(t, err) {
				fee, _ := res.Single("fee")
				assert.Equal(t, meta(byte(i+100)), fee.Meta)
			}
		}(i)
	}

	wg.Wait()
}

func TestMetrics(t *testing.T) {
	m := newMatcher(t, WithMetrics(true))
	decl := ir.New("PayFee").Single("fee", ir.Value(5000)).MustBuild()

	missing := prometheusMatchErrors.WithLabelValues(errors.ERR_MISSING_REQUIRED_UTXO.String())
	before := testutil.ToFloat64(missing)
	matchedBefore := testutil.ToFloat64(prometheusMatchedUtxos)

	_, err := m.MatchResolved(decl, []model.UtxoInfo{utxo(1, 1)})
	require.Error(t, err)
	assert.InDelta(t, before+1, testutil.ToFloat64(missing), 0)

	_, err = m.MatchResolved(decl, []model.UtxoInfo{utxo(1, 5000)})
	require.NoError(t, err)
	assert.InDelta(t, matchedBefore+1, testutil.ToFloat64(prometheusMatchedUtxos), 0)
}
