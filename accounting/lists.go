package accounting

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/pkg/bounded"
)

// InputToSign is a transaction input that needs a signature from Signer.
type InputToSign struct {
	Index  uint32
	Signer string
}

// SigningInputs is the bounded list of inputs an instruction asks to have
// signed. An input may be listed once per signer.
type SigningInputs struct {
	set *bounded.Set[InputToSign]
}

func NewSigningInputs(capacity int) *SigningInputs {
	return &SigningInputs{set: bounded.NewSet[InputToSign](capacity)}
}

func (s *SigningInputs) Add(index uint32, signer string) error {
	err := s.set.Insert(InputToSign{Index: index, Signer: signer})
	if err == nil {
		return nil
	}

	switch errors.CodeOf(err) {
	case errors.ERR_COLLECTION_DUPLICATE:
		return errors.NewDuplicateSigningInputError("input %d already signed by %s", index, signer, err)
	case errors.ERR_COLLECTION_FULL:
		return errors.NewSigningInputListFullError("more than %d signing inputs", s.set.Cap(), err)
	default:
		return err
	}
}

func (s *SigningInputs) Inputs() []InputToSign {
	return append([]InputToSign(nil), s.set.AsSlice()...)
}

func (s *SigningInputs) Len() int {
	return s.set.Len()
}

// ModifiedAccounts records the accounts whose state an instruction changed.
// Recording an account twice is a no-op.
type ModifiedAccounts struct {
	set *bounded.Set[string]
}

func NewModifiedAccounts(capacity int) *ModifiedAccounts {
	return &ModifiedAccounts{set: bounded.NewSet[string](capacity)}
}

func (m *ModifiedAccounts) Add(account string) error {
	if m.set.Contains(account) {
		return nil
	}

	return errors.Translate(m.set.Insert(account), errors.ERR_COLLECTION_FULL, errors.ERR_MODIFIED_ACCOUNT_LIST_FULL,
		"more than %d modified accounts", m.set.Cap())
}

func (m *ModifiedAccounts) Contains(account string) bool {
	return m.set.Contains(account)
}

func (m *ModifiedAccounts) Accounts() []string {
	return append([]string(nil), m.set.AsSlice()...)
}

func (m *ModifiedAccounts) Len() int {
	return m.set.Len()
}
