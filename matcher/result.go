package matcher

import (
	"github.com/bsv-blockchain/utxomatch/accounting"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/pkg/bounded"
)

// Binding is what one slot took.
type Binding struct {
	Ident string
	Kind  ir.FieldKind
	utxos *bounded.List[model.UtxoInfo]
}

// UTXOs returns the bound candidates in the order they were taken.
func (b *Binding) UTXOs() []model.UtxoInfo {
	return b.utxos.AsSlice()
}

func (b *Binding) Len() int {
	return b.utxos.Len()
}

// IsSet reports whether the slot took anything. Only optional and
// remainder slots can be unset after a successful match.
func (b *Binding) IsSet() bool {
	return !b.utxos.IsEmpty()
}

// Result is a successful match.
type Result struct {
	Name string
	// Bindings are in declaration order.
	Bindings []Binding
	// Totals holds the value and per-rune totals of every matched utxo.
	Totals  *accounting.Ledger
	matched *bounded.Set[model.UtxoMeta]
}

func (r *Result) Get(ident string) (*Binding, bool) {
	for i := range r.Bindings {
		if r.Bindings[i].Ident == ident {
			return &r.Bindings[i], true
		}
	}

	return nil, false
}

// Single returns the utxo bound to a single slot.
func (r *Result) Single(ident string) (model.UtxoInfo, bool) {
	b, ok := r.Get(ident)
	if !ok || b.Kind != ir.KindSingle {
		return model.UtxoInfo{}, false
	}

	return b.utxos.Get(0)
}

// Optional returns the utxo bound to an optional slot, or nil when the slot
// stayed empty. ok is false when ident is not an optional slot.
func (r *Result) Optional(ident string) (info *model.UtxoInfo, ok bool) {
	b, found := r.Get(ident)
	if !found || b.Kind != ir.KindOptional {
		return nil, false
	}

	if v, set := b.utxos.Get(0); set {
		return &v, true
	}

	return nil, true
}

func (r *Result) Array(ident string) ([]model.UtxoInfo, bool) {
	b, ok := r.Get(ident)
	if !ok || b.Kind != ir.KindArray {
		return nil, false
	}

	return b.UTXOs(), true
}

// Rest returns the contents of the remainder slot.
func (r *Result) Rest(ident string) ([]model.UtxoInfo, bool) {
	b, ok := r.Get(ident)
	if !ok || b.Kind != ir.KindVec {
		return nil, false
	}

	return b.UTXOs(), true
}

// Matched returns every bound utxo in slot order.
func (r *Result) Matched() []model.UtxoInfo {
	var all []model.UtxoInfo

	for i := range r.Bindings {
		all = append(all, r.Bindings[i].UTXOs()...)
	}

	return all
}

// Contains reports whether meta was bound to any slot.
func (r *Result) Contains(meta model.UtxoMeta) bool {
	return r.matched.Contains(meta)
}

func (r *Result) Len() int {
	return r.matched.Len()
}
