package predicate

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

var (
	runeA = model.RuneID{Block: 840000, Tx: 1}
	runeB = model.RuneID{Block: 840000, Tx: 2}
)

func meta(b byte, vout uint32) model.UtxoMeta {
	var h chainhash.Hash
	h[0] = b

	return model.NewUtxoMeta(h, vout)
}

func info(b byte, value uint64, runes ...model.RuneAmount) *model.UtxoInfo {
	return &model.UtxoInfo{Meta: meta(b, 0), Value: value, Runes: runes}
}

type testEnv struct {
	bound   map[int]uint64
	anchors map[int]model.UtxoMeta
}

func (e testEnv) BoundValue(slot int) (uint64, bool) {
	v, ok := e.bound[slot]
	return v, ok
}

func (e testEnv) AnchorIdentity(resource int) (model.UtxoMeta, bool) {
	m, ok := e.anchors[resource]
	return m, ok
}

func compile(t *testing.T, b *ir.Builder) []*Predicate {
	t.Helper()

	decl, err := b.Build()
	require.NoError(t, err)

	return CompileAll(decl)
}

func TestEmptyPredicateMatchesAnything(t *testing.T) {
	p := compile(t, ir.New("X").Single("any"))[0]

	assert.True(t, p.IsEmpty())
	assert.Equal(t, "any", p.Ident())
	assert.True(t, p.Matches(info(1, 0), nil))
	assert.True(t, p.Matches(info(2, 99, model.NewRuneAmount(runeA, 1)), EmptyEnv))
}

func TestCheck(t *testing.T) {
	withA5 := info(1, 1000, model.NewRuneAmount(runeA, 5))
	withAB := info(2, 1000, model.NewRuneAmount(runeA, 5), model.NewRuneAmount(runeB, 7))
	plain := info(3, 5000)

	tests := []struct {
		name string
		opts []ir.AttrOption
		utxo *model.UtxoInfo
		want error
	}{
		{"value match", []ir.AttrOption{ir.Value(5000)}, plain, nil},
		{"value mismatch", []ir.AttrOption{ir.Value(5000)}, withA5, errors.ErrInvalidUtxoValue},
		{"runes none ok", []ir.AttrOption{ir.Runes(ir.RunesNone)}, plain, nil},
		{"runes none fails", []ir.AttrOption{ir.Runes(ir.RunesNone)}, withA5, errors.ErrInvalidRunesPresence},
		{"runes some ok", []ir.AttrOption{ir.Runes(ir.RunesSome)}, withAB, nil},
		{"runes some fails", []ir.AttrOption{ir.Runes(ir.RunesSome)}, plain, errors.ErrInvalidRunesPresence},
		{"runes any plain", []ir.AttrOption{ir.Runes(ir.RunesAny)}, plain, nil},
		{"runes any runes", []ir.AttrOption{ir.Runes(ir.RunesAny)}, withA5, nil},
		{"rune id present", []ir.AttrOption{ir.RuneID(runeB)}, withAB, nil},
		{"rune id absent", []ir.AttrOption{ir.RuneID(runeB)}, withA5, errors.ErrInvalidRuneID},
		{"rune id and amount", []ir.AttrOption{ir.RuneID(runeB), ir.RuneAmount(uint128.From64(7))}, withAB, nil},
		{"rune id wrong amount", []ir.AttrOption{ir.RuneID(runeB), ir.RuneAmount(uint128.From64(8))}, withAB, errors.ErrInvalidRuneAmount},
		{"rune id and amount no id", []ir.AttrOption{ir.RuneID(runeB), ir.RuneAmount(uint128.From64(5))}, withA5, errors.ErrInvalidRuneID},
		{"total amount", []ir.AttrOption{ir.RuneAmount(uint128.From64(12))}, withAB, nil},
		{"total amount mismatch", []ir.AttrOption{ir.RuneAmount(uint128.From64(5))}, withAB, errors.ErrInvalidRuneAmount},
		{"total amount zero on plain", []ir.AttrOption{ir.RuneAmount(uint128.Zero)}, plain, nil},
		{"value checked first", []ir.AttrOption{ir.Value(1), ir.Runes(ir.RunesSome)}, plain, errors.ErrInvalidUtxoValue},
		{"conjunction", []ir.AttrOption{ir.Value(1000), ir.Runes(ir.RunesSome), ir.RuneID(runeA)}, withAB, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := compile(t, ir.New("X").Single("slot", tt.opts...))[0]

			err := p.Check(tt.utxo, nil)
			if tt.want == nil {
				require.NoError(t, err)
				assert.True(t, p.Matches(tt.utxo, nil))

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.False(t, p.Matches(tt.utxo, nil))
		})
	}
}

func TestCheck_TotalAmountOverflow(t *testing.T) {
	p := compile(t, ir.New("X").Single("slot", ir.RuneAmount(uint128.Max)))[0]

	u := &model.UtxoInfo{
		Meta: meta(1, 0),
		Runes: []model.RuneAmount{
			{ID: runeA, Amount: uint128.Max},
			{ID: runeB, Amount: uint128.From64(1)},
		},
	}

	err := p.Check(u, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRuneAmount))
	assert.False(t, p.Matches(u, nil))
}

func TestCheck_ValueReference(t *testing.T) {
	preds := compile(t, ir.New("X").Single("fee").Single("change", ir.ValueOf("fee")))
	p := preds[1]

	u := info(1, 700)

	err := p.Check(u, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidUtxoValue))

	env := testEnv{bound: map[int]uint64{0: 700}}
	assert.True(t, p.Matches(u, env))

	env.bound[0] = 701
	assert.False(t, p.Matches(u, env))
}

func TestCheck_Anchor(t *testing.T) {
	p := compile(t, ir.New("X").Resources("vault", "pool").Single("pool_utxo", ir.AnchorTo("pool")))[0]

	u := info(9, 0)

	err := p.Check(u, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidAnchor))

	env := testEnv{anchors: map[int]model.UtxoMeta{1: u.Meta}}
	require.NoError(t, p.Check(u, env))

	env.anchors[1] = meta(9, 1)
	err = p.Check(u, env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidAnchor))

	// index 0 is the vault, not the pool
	env = testEnv{anchors: map[int]model.UtxoMeta{0: u.Meta}}
	assert.False(t, p.Matches(u, env))
}

func TestErrorsArePredicateErrors(t *testing.T) {
	p := compile(t, ir.New("X").Single("slot", ir.Value(1)))[0]

	err := p.Check(info(1, 2), nil)
	assert.True(t, errors.IsPredicateError(err))
}

func TestMatches_DoesNotAllocate(t *testing.T) {
	preds := compile(t, ir.New("X").
		Resources("pool").
		Single("fee", ir.Value(1000), ir.Runes(ir.RunesSome), ir.RuneID(runeB), ir.RuneAmount(uint128.From64(7))).
		Single("pool_utxo", ir.AnchorTo("pool")))

	miss := info(1, 999)
	hit := info(2, 1000, model.NewRuneAmount(runeA, 5), model.NewRuneAmount(runeB, 7))
	var env Env = testEnv{anchors: map[int]model.UtxoMeta{0: hit.Meta}}

	allocs := testing.AllocsPerRun(100, func() {
		_ = preds[0].Matches(miss, nil)
		_ = preds[0].Matches(hit, nil)
		_ = preds[1].Matches(miss, env)
		_ = preds[1].Matches(hit, env)
	})

	assert.Zero(t, allocs)
	assert.True(t, preds[0].Matches(hit, nil))
	assert.False(t, preds[0].Matches(miss, nil))
	assert.True(t, preds[1].Matches(hit, env))
	assert.False(t, preds[1].Matches(miss, env))
}
