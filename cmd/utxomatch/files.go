package main

import (
	"io"
	"os"
	"strconv"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/ir"
	"github.com/bsv-blockchain/utxomatch/matcher"
	"github.com/bsv-blockchain/utxomatch/model"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
	"lukechampine.com/uint128"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// declarationFile is an ir.FileDeclaration plus the identities its
// resources are bound to, as "txid:vout".
type declarationFile struct {
	ir.FileDeclaration `yaml:",inline"`
	Anchors            map[string]string `yaml:"anchors,omitempty"`
}

func loadDeclaration(path string) (*declarationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("could not read declaration %s", path, err)
	}

	var df declarationFile
	if err = yaml.Unmarshal(data, &df); err != nil {
		return nil, errors.NewInvalidDeclarationError("could not decode declaration %s", path, err)
	}

	return &df, nil
}

func (df *declarationFile) anchorMap() (matcher.StaticAnchors, error) {
	anchors := make(matcher.StaticAnchors, len(df.Anchors))

	for name, s := range df.Anchors {
		m, err := model.NewUtxoMetaFromString(s)
		if err != nil {
			return nil, errors.NewInvalidDeclarationError("anchor %s", name, err)
		}

		anchors[name] = m
	}

	return anchors, nil
}

type runeFixture struct {
	ID     model.RuneID `json:"id"`
	Amount string       `json:"amount"`
}

type utxoFixture struct {
	TxID  string        `json:"txid"`
	Vout  uint32        `json:"vout"`
	Value uint64        `json:"value"`
	Runes []runeFixture `json:"runes,omitempty"`
}

func (f *utxoFixture) info() (model.UtxoInfo, error) {
	meta, err := model.NewUtxoMetaFromString(f.TxID + ":" + formatUint(uint64(f.Vout)))
	if err != nil {
		return model.UtxoInfo{}, err
	}

	info := model.UtxoInfo{Meta: meta, Value: f.Value}

	for _, r := range f.Runes {
		amount, err := uint128.FromString(r.Amount)
		if err != nil {
			return model.UtxoInfo{}, errors.NewInvalidArgumentError("%s rune %s amount %q", meta, r.ID, r.Amount, err)
		}

		info.Runes = append(info.Runes, model.RuneAmount{ID: r.ID, Amount: amount})
	}

	return info, nil
}

func loadUtxos(path string) ([]model.UtxoInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("could not read utxos %s", path, err)
	}

	var fixtures []utxoFixture
	if err = json.Unmarshal(data, &fixtures); err != nil {
		return nil, errors.NewInvalidArgumentError("could not decode utxos %s", path, err)
	}

	infos := make([]model.UtxoInfo, 0, len(fixtures))

	for i := range fixtures {
		info, err := fixtures[i].info()
		if err != nil {
			return nil, err
		}

		infos = append(infos, info)
	}

	return infos, nil
}

type runeTotal struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

type matchOutput struct {
	Declaration string              `json:"declaration"`
	Bindings    map[string][]string `json:"bindings"`
	TotalValue  uint64              `json:"totalValue"`
	Runes       []runeTotal         `json:"runes,omitempty"`
}

type failureOutput struct {
	Error        string `json:"error"`
	Code         int32  `json:"code"`
	ProgramError uint32 `json:"programError"`
	Message      string `json:"message"`
}

func writeResult(w io.Writer, result *matcher.Result) error {
	out := matchOutput{
		Declaration: result.Name,
		Bindings:    make(map[string][]string, len(result.Bindings)),
		TotalValue:  result.Totals.TotalValue(),
	}

	for _, b := range result.Bindings {
		ids := make([]string, 0, b.Len())
		for _, info := range b.UTXOs() {
			ids = append(ids, info.Meta.String())
		}

		out.Bindings[b.Ident] = ids
	}

	for _, r := range result.Totals.RuneTotals() {
		out.Runes = append(out.Runes, runeTotal{ID: r.ID.String(), Amount: r.Amount.String()})
	}

	return writeJSON(w, out)
}

func writeFailure(w io.Writer, err error) error {
	code := errors.CodeOf(err)

	out := failureOutput{
		Error:        code.String(),
		Code:         int32(code),
		ProgramError: errors.ToProgramError(err),
		Message:      err.Error(),
	}

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		out.Message = tErr.Message()
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
