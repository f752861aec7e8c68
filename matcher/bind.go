package matcher

import (
	"context"
	"reflect"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
)

// Bind copies the bindings into the struct dst points to. Slots are matched
// to exported fields by name, which is how ir.FromStruct names them.
func (r *Result) Bind(dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errors.NewInvalidArgumentError("bind target must be a non-nil struct pointer, got %T", dst)
	}

	v = v.Elem()

	for i := range r.Bindings {
		b := &r.Bindings[i]

		fv := v.FieldByName(b.Ident)
		if !fv.IsValid() || !fv.CanSet() {
			return errors.NewInvalidArgumentError("[%s] %s has no settable field %s", r.Name, v.Type(), b.Ident)
		}

		if err := bindField(fv, b); err != nil {
			return errors.NewInvalidArgumentError("[%s] field %s", r.Name, b.Ident, err)
		}
	}

	return nil
}

var utxoInfoType = reflect.TypeOf(model.UtxoInfo{})

func bindField(fv reflect.Value, b *Binding) error {
	t := fv.Type()
	utxos := b.UTXOs()

	switch b.Kind {
	case ir.KindSingle:
		if t != utxoInfoType || len(utxos) != 1 {
			return errors.NewInvalidArgumentError("cannot bind single slot to %s", t)
		}

		fv.Set(reflect.ValueOf(utxos[0]))

	case ir.KindOptional:
		if t.Kind() != reflect.Pointer || t.Elem() != utxoInfoType {
			return errors.NewInvalidArgumentError("cannot bind optional slot to %s", t)
		}

		if len(utxos) == 0 {
			fv.Set(reflect.Zero(t))
			return nil
		}

		info := utxos[0]
		fv.Set(reflect.ValueOf(&info))

	case ir.KindArray:
		if t.Kind() != reflect.Array || t.Elem() != utxoInfoType || t.Len() != len(utxos) {
			return errors.NewInvalidArgumentError("cannot bind %d utxos to %s", len(utxos), t)
		}

		for i := range utxos {
			fv.Index(i).Set(reflect.ValueOf(utxos[i]))
		}

	case ir.KindVec:
		if t.Kind() != reflect.Slice || t.Elem() != utxoInfoType {
			return errors.NewInvalidArgumentError("cannot bind remainder slot to %s", t)
		}

		fv.Set(reflect.ValueOf(append([]model.UtxoInfo(nil), utxos...)))
	}

	return nil
}

// MatchInto derives the declaration from T, matches raw against it and
// returns a filled T.
func MatchInto[T any](ctx context.Context, m *Matcher, raw []model.UtxoMeta, resources ...string) (*T, *Result, error) {
	out := new(T)

	decl, err := ir.FromStruct(out, resources...)
	if err != nil {
		return nil, nil, err
	}

	result, err := m.Match(ctx, decl, raw)
	if err != nil {
		return nil, nil, err
	}

	if err = result.Bind(out); err != nil {
		return nil, nil, err
	}

	return out, result, nil
}
