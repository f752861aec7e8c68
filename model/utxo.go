package model

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/util/safemath"
	"lukechampine.com/uint128"
)

// UtxoMeta identifies an output by transaction id and output index. It is
// comparable and can be used as a map key or a bounded.Set element.
type UtxoMeta struct {
	TxID chainhash.Hash
	Vout uint32
}

func NewUtxoMeta(txID chainhash.Hash, vout uint32) UtxoMeta {
	return UtxoMeta{TxID: txID, Vout: vout}
}

// NewUtxoMetaFromString parses "<txid>:<vout>" with the txid in the usual
// reversed-hex form.
func NewUtxoMetaFromString(s string) (UtxoMeta, error) {
	txid, voutStr, ok := strings.Cut(s, ":")
	if !ok {
		return UtxoMeta{}, errors.NewInvalidArgumentError("utxo %q: expected <txid>:<vout>", s)
	}

	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return UtxoMeta{}, errors.NewInvalidArgumentError("utxo %q: bad txid", s, err)
	}

	vout, err := strconv.ParseUint(voutStr, 10, 32)
	if err != nil {
		return UtxoMeta{}, errors.NewInvalidArgumentError("utxo %q: bad vout", s, err)
	}

	return UtxoMeta{TxID: *hash, Vout: uint32(vout)}, nil
}

func (m UtxoMeta) String() string {
	return fmt.Sprintf("%s:%d", m.TxID.String(), m.Vout)
}

// Compare orders by txid bytes, then by output index.
func (m UtxoMeta) Compare(other UtxoMeta) int {
	if c := bytes.Compare(m.TxID[:], other.TxID[:]); c != 0 {
		return c
	}

	return cmp.Compare(m.Vout, other.Vout)
}

func (m UtxoMeta) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *UtxoMeta) UnmarshalText(text []byte) error {
	parsed, err := NewUtxoMetaFromString(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// UtxoInfo is the resolved view of an output: its identity, value in
// satoshis and rune balances.
type UtxoInfo struct {
	Meta  UtxoMeta
	Value uint64
	Runes []RuneAmount
}

// NewMetaOnlyUtxoInfo returns an info with no value and no runes, as
// produced by resolvers that have no index to consult.
func NewMetaOnlyUtxoInfo(meta UtxoMeta) UtxoInfo {
	return UtxoInfo{Meta: meta}
}

// Clone returns a copy that shares no rune entries with u.
func (u *UtxoInfo) Clone() UtxoInfo {
	return UtxoInfo{Meta: u.Meta, Value: u.Value, Runes: slices.Clone(u.Runes)}
}

func (u *UtxoInfo) HasRunes() bool {
	return len(u.Runes) > 0
}

// FindRune returns the first entry for id.
func (u *UtxoInfo) FindRune(id RuneID) (RuneAmount, bool) {
	for _, r := range u.Runes {
		if r.ID == id {
			return r, true
		}
	}

	return RuneAmount{}, false
}

// HasRuneAmount reports whether an entry with exactly this id and amount exists.
func (u *UtxoInfo) HasRuneAmount(id RuneID, amount uint128.Uint128) bool {
	for _, r := range u.Runes {
		if r.ID == id && r.Amount.Equals(amount) {
			return true
		}
	}

	return false
}

// TotalRuneAmount sums the amounts of every rune entry regardless of id.
func (u *UtxoInfo) TotalRuneAmount() (uint128.Uint128, error) {
	total := uint128.Zero

	for _, r := range u.Runes {
		var err error
		if total, err = safemath.Add128(total, r.Amount); err != nil {
			return uint128.Zero, err
		}
	}

	return total, nil
}

func (u *UtxoInfo) String() string {
	return fmt.Sprintf("%s value=%d runes=%v", u.Meta, u.Value, u.Runes)
}
