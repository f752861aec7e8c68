// Package ir holds the parsed description of the UTXO slots an instruction
// declares: the shape of each slot and the predicate a candidate must
// satisfy to fill it.
//
// A declaration is built once, either through the Builder, from attribute
// strings (ParseAttr), from struct tags (FromStruct) or from a YAML file
// (ParseYAML), and is validated before the matcher sees it. Declaration
// order matters: it is the default match order, value references may only
// point backwards, and the single remainder slot must come last.
package ir

import (
	"fmt"
	"strings"

	"github.com/bsv-blockchain/utxomatch/model"
	"lukechampine.com/uint128"
)

// FieldKind is the shape of a slot.
type FieldKind int

const (
	// KindSingle takes exactly one UTXO.
	KindSingle FieldKind = iota
	// KindArray takes exactly Field.Len UTXOs.
	KindArray
	// KindVec takes the remainder. At most one, and it must be last.
	KindVec
	// KindOptional takes zero or one UTXO.
	KindOptional
)

func (k FieldKind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindArray:
		return "array"
	case KindVec:
		return "vec"
	case KindOptional:
		return "optional"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// ParseFieldKind accepts the names returned by FieldKind.String.
func ParseFieldKind(s string) (FieldKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return KindSingle, true
	case "array":
		return KindArray, true
	case "vec", "rest":
		return KindVec, true
	case "optional", "option":
		return KindOptional, true
	}

	return 0, false
}

// RunesPresence constrains whether a candidate carries rune entries.
type RunesPresence int

const (
	RunesNone RunesPresence = iota
	RunesSome
	RunesAny
)

func (r RunesPresence) String() string {
	switch r {
	case RunesNone:
		return "none"
	case RunesSome:
		return "some"
	case RunesAny:
		return "any"
	default:
		return fmt.Sprintf("RunesPresence(%d)", int(r))
	}
}

func ParseRunesPresence(s string) (RunesPresence, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return RunesNone, true
	case "some":
		return RunesSome, true
	case "any":
		return RunesAny, true
	}

	return 0, false
}

// ValueExpr is the expected satoshi value of a candidate: either a constant
// or the value bound to an earlier single slot.
type ValueExpr struct {
	Const uint64
	// Ref names an earlier slot; RefIndex is filled in by Validate.
	Ref      string
	RefIndex int
}

func ConstValue(v uint64) ValueExpr {
	return ValueExpr{Const: v, RefIndex: -1}
}

func SlotValue(ident string) ValueExpr {
	return ValueExpr{Ref: ident, RefIndex: -1}
}

func (v ValueExpr) IsRef() bool {
	return v.Ref != ""
}

func (v ValueExpr) String() string {
	if v.IsRef() {
		return v.Ref
	}

	return fmt.Sprintf("%d", v.Const)
}

// RunePredicate matches rune content. With both fields set the candidate
// needs an entry with that id and amount; with only ID, an entry with that
// id; with only Amount, the sum over all entries must equal it.
type RunePredicate struct {
	ID     *model.RuneID
	Amount *uint128.Uint128
}

// Anchor requires the candidate's identity to equal the identity of a
// declared resource. Index points into DeriveInputIr.Resources and is
// filled in by Validate.
type Anchor struct {
	Resource string
	Index    int
}

// UtxoAttr is the predicate attached to a slot. Every present component
// must hold; an attr with no components matches anything.
type UtxoAttr struct {
	Value  *ValueExpr
	Runes  *RunesPresence
	Rune   *RunePredicate
	Anchor *Anchor
	// Rest marks the remainder slot. It is implied by KindVec.
	Rest bool
}

// IsEmpty reports whether the attr has no predicate components.
func (a *UtxoAttr) IsEmpty() bool {
	return a.Value == nil && a.Runes == nil && a.Rune == nil && a.Anchor == nil
}

func (a UtxoAttr) String() string {
	var parts []string

	if a.Value != nil {
		parts = append(parts, "value = "+a.Value.String())
	}

	if a.Runes != nil {
		parts = append(parts, "runes = "+a.Runes.String())
	}

	if a.Rune != nil {
		if a.Rune.ID != nil {
			parts = append(parts, "rune_id = "+a.Rune.ID.String())
		}

		if a.Rune.Amount != nil {
			parts = append(parts, "rune_amount = "+a.Rune.Amount.String())
		}
	}

	if a.Anchor != nil {
		parts = append(parts, "anchor = "+a.Anchor.Resource)
	}

	if a.Rest {
		parts = append(parts, "rest")
	}

	return strings.Join(parts, ", ")
}

// Field is one declared slot.
type Field struct {
	Ident string
	Kind  FieldKind
	// Len is the element count of a KindArray slot.
	Len   int
	Attr  UtxoAttr
	Order int
}

// Capacity is the most UTXOs the slot can take, or -1 for the remainder.
func (f *Field) Capacity() int {
	switch f.Kind {
	case KindSingle, KindOptional:
		return 1
	case KindArray:
		return f.Len
	default:
		return -1
	}
}

// Required is the fewest UTXOs the slot needs.
func (f *Field) Required() int {
	switch f.Kind {
	case KindSingle:
		return 1
	case KindArray:
		return f.Len
	default:
		return 0
	}
}

// DeriveInputIr is the ordered slot list of one instruction plus the
// resources its anchors may refer to.
type DeriveInputIr struct {
	Name      string
	Fields    []Field
	Resources []string
}

// FieldIndex returns the index of the slot named ident, or -1.
func (d *DeriveInputIr) FieldIndex(ident string) int {
	for i := range d.Fields {
		if d.Fields[i].Ident == ident {
			return i
		}
	}

	return -1
}

// ResourceIndex returns the index of the named resource, or -1.
func (d *DeriveInputIr) ResourceIndex(name string) int {
	for i, r := range d.Resources {
		if r == name {
			return i
		}
	}

	return -1
}

// HasRemainder reports whether the last slot is a remainder slot.
func (d *DeriveInputIr) HasRemainder() bool {
	return len(d.Fields) > 0 && d.Fields[len(d.Fields)-1].Kind == KindVec
}

// MinInputs is the number of UTXOs the required slots consume.
func (d *DeriveInputIr) MinInputs() int {
	n := 0
	for i := range d.Fields {
		n += d.Fields[i].Required()
	}

	return n
}

// MaxInputs is the most UTXOs the declaration can absorb, or -1 when a
// remainder slot takes everything left.
func (d *DeriveInputIr) MaxInputs() int {
	n := 0

	for i := range d.Fields {
		c := d.Fields[i].Capacity()
		if c < 0 {
			return -1
		}

		n += c
	}

	return n
}

// Clone returns a deep copy that shares no attribute pointers with d.
func (d *DeriveInputIr) Clone() *DeriveInputIr {
	c := &DeriveInputIr{
		Name:      d.Name,
		Fields:    make([]Field, len(d.Fields)),
		Resources: append([]string(nil), d.Resources...),
	}

	for i, f := range d.Fields {
		f.Attr = f.Attr.clone()
		c.Fields[i] = f
	}

	return c
}

func (a UtxoAttr) clone() UtxoAttr {
	if a.Value != nil {
		v := *a.Value
		a.Value = &v
	}

	if a.Runes != nil {
		r := *a.Runes
		a.Runes = &r
	}

	if a.Rune != nil {
		rp := RunePredicate{}

		if a.Rune.ID != nil {
			id := *a.Rune.ID
			rp.ID = &id
		}

		if a.Rune.Amount != nil {
			amt := *a.Rune.Amount
			rp.Amount = &amt
		}

		a.Rune = &rp
	}

	if a.Anchor != nil {
		an := *a.Anchor
		a.Anchor = &an
	}

	return a
}
