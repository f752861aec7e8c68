package matcher

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/resolver"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/bsv-blockchain/utxomatch/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swapInputs struct {
	Pool    model.UtxoInfo    `utxo:"anchor = pool"`
	Fee     model.UtxoInfo    `utxo:"value = 5000, runes = none"`
	Change  *model.UtxoInfo   `utxo:"value = 546, runes = none"`
	Pair    [2]model.UtxoInfo `utxo:"runes = some"`
	Funding []model.UtxoInfo
}

func swapFixture() []model.UtxoInfo {
	return []model.UtxoInfo{
		utxo(1, 10_000),
		utxo(2, 546, model.NewRuneAmount(runeA, 10)),
		utxo(3, 5000),
		utxo(4, 546, model.NewRuneAmount(runeA, 5), model.NewRuneAmount(runeB, 1)),
		utxo(5, 20_000),
		utxo(6, 777),
	}
}

func TestMatchInto(t *testing.T) {
	infos := swapFixture()

	registry := resolver.NewRegistry(16, nil)
	registry.Register(infos...)

	m := New(ulogger.NewErrorTestLogger(t), settings.NewSettings(), registry,
		WithAnchors(StaticAnchors{"pool": meta(6)}))

	out, res, err := MatchInto[swapInputs](context.Background(), m, metas(infos...), "pool")
	require.NoError(t, err)

	assert.Equal(t, meta(6), out.Pool.Meta)
	assert.Equal(t, meta(3), out.Fee.Meta)
	assert.Nil(t, out.Change)
	assert.Equal(t, meta(2), out.Pair[0].Meta)
	assert.Equal(t, meta(4), out.Pair[1].Meta)
	assert.Equal(t, []model.UtxoMeta{meta(1), meta(5)}, metas(out.Funding...))

	assert.Equal(t, "swapInputs", res.Name)
	assert.Equal(t, uint64(10_000+546+5000+546+20_000+777), res.Totals.TotalValue())

	_, _, err = MatchInto[swapInputs](context.Background(), m, metas(infos...))
	assertCode(t, err, errors.ErrInvalidDeclaration)
}

func TestMatchInto_AnonymousStruct(t *testing.T) {
	infos := []model.UtxoInfo{utxo(1, 5000), utxo(2, 700)}

	registry := resolver.NewRegistry(4, nil)
	registry.Register(infos...)

	m := New(ulogger.NewErrorTestLogger(t), settings.NewSettings(), registry)

	out, res, err := MatchInto[struct {
		Fee  model.UtxoInfo `utxo:"value = 5000"`
		Rest []model.UtxoInfo
	}](context.Background(), m, metas(infos...))
	require.NoError(t, err)

	assert.Equal(t, meta(1), out.Fee.Meta)
	assert.Equal(t, []model.UtxoMeta{meta(2)}, metas(out.Rest...))
	assert.NotEmpty(t, res.Name)
}

func TestBind_OptionalSet(t *testing.T) {
	type withChange struct {
		Fee    model.UtxoInfo  `utxo:"value = 5000"`
		Change *model.UtxoInfo `utxo:"value = 546"`
	}

	decl, err := ir.FromStruct(withChange{})
	require.NoError(t, err)

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 546), utxo(2, 5000)})
	require.NoError(t, err)

	var out withChange
	require.NoError(t, res.Bind(&out))
	require.NotNil(t, out.Change)
	assert.Equal(t, meta(1), out.Change.Meta)
	assert.Equal(t, meta(2), out.Fee.Meta)
}

func TestBind_Errors(t *testing.T) {
	decl := ir.New("X").Single("Fee").Vec("Rest").MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2)})
	require.NoError(t, err)

	type good struct {
		Fee  model.UtxoInfo
		Rest []model.UtxoInfo
	}

	var g good
	require.NoError(t, res.Bind(&g))
	assert.Equal(t, meta(1), g.Fee.Meta)
	assert.Len(t, g.Rest, 1)

	tests := []struct {
		name string
		dst  any
	}{
		{"nil", nil},
		{"not a pointer", good{}},
		{"pointer to non-struct", new(int)},
		{"missing field", &struct{ Fee model.UtxoInfo }{}},
		{"wrong single type", &struct {
			Fee  *model.UtxoInfo
			Rest []model.UtxoInfo
		}{}},
		{"wrong remainder type", &struct {
			Fee  model.UtxoInfo
			Rest [1]model.UtxoInfo
		}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := res.Bind(tt.dst)
			assertCode(t, err, errors.ErrInvalidArgument)
		})
	}
}

func TestBind_ArrayLength(t *testing.T) {
	decl := ir.New("X").Array("Pair", 2).MustBuild()

	res, err := newMatcher(t).MatchResolved(decl, []model.UtxoInfo{utxo(1, 1), utxo(2, 2)})
	require.NoError(t, err)

	var three struct{ Pair [3]model.UtxoInfo }
	assertCode(t, res.Bind(&three), errors.ErrInvalidArgument)

	var two struct{ Pair [2]model.UtxoInfo }
	require.NoError(t, res.Bind(&two))
	assert.Equal(t, meta(2), two.Pair[1].Meta)
}
