// Package accounting aggregates the value and rune balances of matched UTXOs
// and keeps the bounded side lists an instruction reports alongside them.
package accounting

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/pkg/bounded"
	"github.com/bsv-blockchain/utxomatch/util/safemath"
	"lukechampine.com/uint128"
)

// Ledger is the running total of satoshi value and of each rune id seen.
// The number of distinct rune ids is bounded.
type Ledger struct {
	value uint64
	runes *bounded.List[model.RuneAmount]
}

func NewLedger(maxRuneTypes int) *Ledger {
	return &Ledger{runes: bounded.NewList[model.RuneAmount](maxRuneTypes)}
}

// AddUtxo adds the value and every rune entry of info. On error the ledger
// is left as it was.
func (l *Ledger) AddUtxo(info *model.UtxoInfo) error {
	next := l.Clone()

	value, err := safemath.Add(next.value, info.Value)
	if err != nil {
		return errors.NewCalcOverflowError("value total overflows adding %s", info.Meta, err)
	}

	next.value = value

	for _, r := range info.Runes {
		if err = next.AddRune(r); err != nil {
			return err
		}
	}

	*l = *next

	return nil
}

// AddRune adds one rune entry to the total for its id.
func (l *Ledger) AddRune(r model.RuneAmount) error {
	for i, existing := range l.runes.All() {
		if existing.ID != r.ID {
			continue
		}

		sum, err := safemath.Add128(existing.Amount, r.Amount)
		if err != nil {
			return errors.NewCalcOverflowError("rune %s total overflows", r.ID, err)
		}

		l.runes.Set(i, model.RuneAmount{ID: r.ID, Amount: sum})

		return nil
	}

	return errors.Translate(l.runes.Push(r), errors.ERR_COLLECTION_FULL, errors.ERR_RUNE_INPUT_LIST_FULL,
		"more than %d rune types", l.runes.Cap())
}

func (l *Ledger) TotalValue() uint64 {
	return l.value
}

// RuneTotal returns the total for id, zero if it was never seen.
func (l *Ledger) RuneTotal(id model.RuneID) uint128.Uint128 {
	for _, r := range l.runes.All() {
		if r.ID == id {
			return r.Amount
		}
	}

	return uint128.Zero
}

// RuneTotals returns one entry per rune id in first-seen order.
func (l *Ledger) RuneTotals() []model.RuneAmount {
	return append([]model.RuneAmount(nil), l.runes.AsSlice()...)
}

func (l *Ledger) RuneTypes() int {
	return l.runes.Len()
}

func (l *Ledger) Clone() *Ledger {
	return &Ledger{value: l.value, runes: l.runes.Clone()}
}
