package model

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/utxomatch/errors"
	"lukechampine.com/uint128"
)

// RuneID identifies a rune by the block height and transaction index of its etching.
type RuneID struct {
	Block uint64
	Tx    uint32
}

// ParseRuneID parses "<block>:<tx>".
func ParseRuneID(s string) (RuneID, error) {
	blockStr, txStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return RuneID{}, errors.NewInvalidArgumentError("rune id %q: expected <block>:<tx>", s)
	}

	block, err := strconv.ParseUint(blockStr, 10, 64)
	if err != nil {
		return RuneID{}, errors.NewInvalidArgumentError("rune id %q: bad block", s, err)
	}

	tx, err := strconv.ParseUint(txStr, 10, 32)
	if err != nil {
		return RuneID{}, errors.NewInvalidArgumentError("rune id %q: bad tx", s, err)
	}

	return RuneID{Block: block, Tx: uint32(tx)}, nil
}

func (r RuneID) String() string {
	return fmt.Sprintf("%d:%d", r.Block, r.Tx)
}

func (r RuneID) Compare(other RuneID) int {
	if c := cmp.Compare(r.Block, other.Block); c != 0 {
		return c
	}

	return cmp.Compare(r.Tx, other.Tx)
}

func (r RuneID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RuneID) UnmarshalText(text []byte) error {
	parsed, err := ParseRuneID(string(text))
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}

// RuneAmount is one rune ledger entry on an output.
type RuneAmount struct {
	ID     RuneID
	Amount uint128.Uint128
}

func NewRuneAmount(id RuneID, amount uint64) RuneAmount {
	return RuneAmount{ID: id, Amount: uint128.From64(amount)}
}

func (r RuneAmount) String() string {
	return fmt.Sprintf("%s=%s", r.ID, r.Amount)
}
