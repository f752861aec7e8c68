package ir

import (
	"reflect"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
)

// TagName is the struct tag FromStruct reads slot attributes from.
const TagName = "utxo"

var utxoInfoType = reflect.TypeOf(model.UtxoInfo{})

// FromStruct derives a declaration from the exported fields of a struct:
//
//	model.UtxoInfo     single
//	*model.UtxoInfo    optional
//	[N]model.UtxoInfo  array of N
//	[]model.UtxoInfo   remainder
//
// Attributes come from the `utxo` tag in ParseAttr syntax. Fields of other
// types are ignored unless tagged, and `utxo:"-"` skips a field. The slot
// ident is the Go field name and the declaration is named after the type,
// or its literal form for an anonymous struct.
func FromStruct(v any, resources ...string) (*DeriveInputIr, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.NewInvalidDeclarationError("expected a struct, got %T", v)
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	b := New(name).Resources(resources...)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup(TagName)

		if !sf.IsExported() || tag == "-" {
			continue
		}

		kind, n, ok := kindOf(sf.Type)
		if !ok {
			if tagged {
				return nil, errors.NewInvalidDeclarationError("[%s] field %s has tag %q but type %s is not a UTXO slot", name, sf.Name, tag, sf.Type)
			}

			continue
		}

		attr, err := ParseAttr(tag)
		if err != nil {
			return nil, errors.NewInvalidDeclarationError("[%s] field %s", name, sf.Name, err)
		}

		b.Field(Field{Ident: sf.Name, Kind: kind, Len: n, Attr: attr})
	}

	return b.Build()
}

func kindOf(t reflect.Type) (FieldKind, int, bool) {
	switch {
	case t == utxoInfoType:
		return KindSingle, 0, true
	case t.Kind() == reflect.Pointer && t.Elem() == utxoInfoType:
		return KindOptional, 0, true
	case t.Kind() == reflect.Array && t.Elem() == utxoInfoType:
		return KindArray, t.Len(), true
	case t.Kind() == reflect.Slice && t.Elem() == utxoInfoType:
		return KindVec, 0, true
	}

	return 0, 0, false
}
