package ir

import (
	"github.com/bsv-blockchain/utxomatch/model"
	"lukechampine.com/uint128"
)

// AttrOption sets one predicate component on a slot.
type AttrOption func(*UtxoAttr)

func Value(v uint64) AttrOption {
	return func(a *UtxoAttr) {
		e := ConstValue(v)
		a.Value = &e
	}
}

// ValueOf requires the candidate to carry the same value as the earlier
// single slot named ident.
func ValueOf(ident string) AttrOption {
	return func(a *UtxoAttr) {
		e := SlotValue(ident)
		a.Value = &e
	}
}

func Runes(p RunesPresence) AttrOption {
	return func(a *UtxoAttr) {
		a.Runes = &p
	}
}

func RuneID(id model.RuneID) AttrOption {
	return func(a *UtxoAttr) {
		if a.Rune == nil {
			a.Rune = &RunePredicate{}
		}

		a.Rune.ID = &id
	}
}

func RuneAmount(amount uint128.Uint128) AttrOption {
	return func(a *UtxoAttr) {
		if a.Rune == nil {
			a.Rune = &RunePredicate{}
		}

		a.Rune.Amount = &amount
	}
}

func AnchorTo(resource string) AttrOption {
	return func(a *UtxoAttr) {
		a.Anchor = &Anchor{Resource: resource, Index: -1}
	}
}

func Rest() AttrOption {
	return func(a *UtxoAttr) {
		a.Rest = true
	}
}

// Builder assembles a declaration field by field.
//
//	decl, err := ir.New("Swap").
//		Resources("pool").
//		Single("pool_utxo", ir.AnchorTo("pool")).
//		Single("fee", ir.Value(10_000), ir.Runes(ir.RunesNone)).
//		Vec("funding").
//		Build()
type Builder struct {
	decl DeriveInputIr
}

func New(name string) *Builder {
	return &Builder{decl: DeriveInputIr{Name: name}}
}

func (b *Builder) Resources(names ...string) *Builder {
	b.decl.Resources = append(b.decl.Resources, names...)
	return b
}

func (b *Builder) Single(ident string, opts ...AttrOption) *Builder {
	return b.add(ident, KindSingle, 0, opts)
}

func (b *Builder) Optional(ident string, opts ...AttrOption) *Builder {
	return b.add(ident, KindOptional, 0, opts)
}

func (b *Builder) Array(ident string, n int, opts ...AttrOption) *Builder {
	return b.add(ident, KindArray, n, opts)
}

func (b *Builder) Vec(ident string, opts ...AttrOption) *Builder {
	return b.add(ident, KindVec, 0, opts)
}

func (b *Builder) Field(f Field) *Builder {
	f.Order = len(b.decl.Fields)
	b.decl.Fields = append(b.decl.Fields, f)

	return b
}

func (b *Builder) add(ident string, kind FieldKind, n int, opts []AttrOption) *Builder {
	f := Field{Ident: ident, Kind: kind, Len: n}

	for _, opt := range opts {
		opt(&f.Attr)
	}

	return b.Field(f)
}

// Build validates and returns the declaration.
func (b *Builder) Build() (*DeriveInputIr, error) {
	decl := b.decl
	decl.Fields = append([]Field(nil), b.decl.Fields...)
	decl.Resources = append([]string(nil), b.decl.Resources...)

	if err := decl.Validate(); err != nil {
		return nil, err
	}

	return &decl, nil
}

// MustBuild is Build for declarations known at compile time.
func (b *Builder) MustBuild() *DeriveInputIr {
	decl, err := b.Build()
	if err != nil {
		panic(err)
	}

	return decl
}
