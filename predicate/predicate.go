/*
Package predicate turns the attribute attached to a declared slot into a test
over one resolved UTXO.

A Predicate is compiled once per slot and evaluated many times while the
matcher scans its candidate pool. Evaluation is conjunctive: every component
present on the attribute must hold, and an attribute with no components
accepts every candidate. The components are checked in a fixed order:

  - value: the candidate value equals a constant or the value already bound
    to an earlier single slot
  - runes presence: none, some or any rune entries
  - rune identity and amount: an entry with that id (and amount, if given),
    or, with only an amount, the sum of all entries equals it
  - anchor: the candidate identity equals the identity of a declared resource

Matches reports only whether the candidate fits. Check reports which
component rejected it, as one of the predicate error codes, for callers that
want a precise failure instead of a generic missing-UTXO error.
*/
package predicate

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"lukechampine.com/uint128"
)

// Env exposes the match state a predicate may depend on.
type Env interface {
	// BoundValue returns the value of the UTXO bound to the single slot at
	// index, if that slot has been filled.
	BoundValue(slot int) (uint64, bool)
	// AnchorIdentity returns the identity of the declared resource at index.
	AnchorIdentity(resource int) (model.UtxoMeta, bool)
}

type emptyEnv struct{}

func (emptyEnv) BoundValue(int) (uint64, bool)             { return 0, false }
func (emptyEnv) AnchorIdentity(int) (model.UtxoMeta, bool) { return model.UtxoMeta{}, false }

// EmptyEnv has no bound slots and no anchors.
var EmptyEnv Env = emptyEnv{}

// Predicate is the compiled form of an ir.UtxoAttr.
type Predicate struct {
	ident      string
	value      *ir.ValueExpr
	runes      *ir.RunesPresence
	runeID     *model.RuneID
	runeAmount *uint128.Uint128
	anchor     *ir.Anchor
}

// Compile builds the predicate for a validated field.
func Compile(f *ir.Field) *Predicate {
	p := &Predicate{
		ident:  f.Ident,
		value:  f.Attr.Value,
		runes:  f.Attr.Runes,
		anchor: f.Attr.Anchor,
	}

	if f.Attr.Rune != nil {
		p.runeID = f.Attr.Rune.ID
		p.runeAmount = f.Attr.Rune.Amount
	}

	return p
}

// CompileAll compiles every field of decl, in declaration order.
func CompileAll(decl *ir.DeriveInputIr) []*Predicate {
	preds := make([]*Predicate, len(decl.Fields))
	for i := range decl.Fields {
		preds[i] = Compile(&decl.Fields[i])
	}

	return preds
}

// IsEmpty reports whether the predicate accepts every candidate.
func (p *Predicate) IsEmpty() bool {
	return p.value == nil && p.runes == nil && p.runeID == nil && p.runeAmount == nil && p.anchor == nil
}

// Ident is the slot the predicate was compiled for.
func (p *Predicate) Ident() string {
	return p.ident
}

// Matches reports whether u satisfies every component. A nil env behaves
// as EmptyEnv. It builds no errors, so the matcher can call it on every
// candidate of a pool.
func (p *Predicate) Matches(u *model.UtxoInfo, env Env) bool {
	if env == nil {
		env = EmptyEnv
	}

	return p.valueHolds(u, env) && p.runesHold(u) && p.runeHolds(u) && p.anchorHolds(u, env)
}

// Check returns nil if u satisfies the predicate, otherwise an error coded
// for the first component that failed.
func (p *Predicate) Check(u *model.UtxoInfo, env Env) error {
	if env == nil {
		env = EmptyEnv
	}

	if !p.valueHolds(u, env) {
		return p.valueError(u, env)
	}

	if !p.runesHold(u) {
		if *p.runes == ir.RunesNone {
			return errors.NewInvalidRunesPresenceError("[%s] %s carries %d rune entries, expected none", p.ident, u.Meta, len(u.Runes))
		}

		return errors.NewInvalidRunesPresenceError("[%s] %s carries no runes", p.ident, u.Meta)
	}

	if !p.runeHolds(u) {
		return p.runeError(u)
	}

	if !p.anchorHolds(u, env) {
		id, ok := env.AnchorIdentity(p.anchor.Index)
		if !ok {
			return errors.NewInvalidAnchorError("[%s] anchor %q has no identity", p.ident, p.anchor.Resource)
		}

		return errors.NewInvalidAnchorError("[%s] %s is not anchor %q (%s)", p.ident, u.Meta, p.anchor.Resource, id)
	}

	return nil
}

func (p *Predicate) valueHolds(u *model.UtxoInfo, env Env) bool {
	if p.value == nil {
		return true
	}

	if !p.value.IsRef() {
		return u.Value == p.value.Const
	}

	bound, ok := env.BoundValue(p.value.RefIndex)

	return ok && u.Value == bound
}

func (p *Predicate) valueError(u *model.UtxoInfo, env Env) error {
	want := p.value.Const

	if p.value.IsRef() {
		bound, ok := env.BoundValue(p.value.RefIndex)
		if !ok {
			return errors.NewInvalidUtxoValueError("[%s] value refers to unbound slot %q", p.ident, p.value.Ref)
		}

		want = bound
	}

	return errors.NewInvalidUtxoValueError("[%s] %s has value %d, expected %d", p.ident, u.Meta, u.Value, want)
}

func (p *Predicate) runesHold(u *model.UtxoInfo) bool {
	if p.runes == nil {
		return true
	}

	switch *p.runes {
	case ir.RunesNone:
		return !u.HasRunes()
	case ir.RunesSome:
		return u.HasRunes()
	}

	return true
}

func (p *Predicate) runeHolds(u *model.UtxoInfo) bool {
	switch {
	case p.runeID != nil && p.runeAmount != nil:
		return u.HasRuneAmount(*p.runeID, *p.runeAmount)

	case p.runeID != nil:
		_, found := u.FindRune(*p.runeID)
		return found

	case p.runeAmount != nil:
		total, err := u.TotalRuneAmount()
		return err == nil && total.Equals(*p.runeAmount)
	}

	return true
}

func (p *Predicate) runeError(u *model.UtxoInfo) error {
	if p.runeID != nil {
		if _, found := u.FindRune(*p.runeID); found {
			return errors.NewInvalidRuneAmountError("[%s] %s has rune %s but not amount %s", p.ident, u.Meta, p.runeID, p.runeAmount)
		}

		return errors.NewInvalidRuneIDError("[%s] %s has no rune %s", p.ident, u.Meta, p.runeID)
	}

	total, err := u.TotalRuneAmount()
	if err != nil {
		return errors.NewInvalidRuneAmountError("[%s] %s rune total does not fit 128 bits", p.ident, u.Meta, err)
	}

	return errors.NewInvalidRuneAmountError("[%s] %s rune total %s, expected %s", p.ident, u.Meta, total, p.runeAmount)
}

func (p *Predicate) anchorHolds(u *model.UtxoInfo, env Env) bool {
	if p.anchor == nil {
		return true
	}

	id, ok := env.AnchorIdentity(p.anchor.Index)

	return ok && id == u.Meta
}
