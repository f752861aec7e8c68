package ir

import (
	"strconv"
	"strings"

	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/model"
	"lukechampine.com/uint128"
)

// ParseAttr parses a comma separated attribute list such as
//
//	value = 10000, runes = none
//	rune_id = 840000:3, rune_amount = 500
//	value = fee_utxo, anchor = pool
//	rest
//
// Values may be quoted. A value that is not a number names an earlier slot.
// An empty string yields an empty attr.
func ParseAttr(s string) (UtxoAttr, error) {
	var attr UtxoAttr

	seen := make(map[string]struct{})

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, hasVal := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		val = unquote(strings.TrimSpace(val))

		if _, dup := seen[key]; dup {
			return UtxoAttr{}, errors.NewInvalidDeclarationError("attribute %q given twice", key)
		}

		seen[key] = struct{}{}

		if key == "rest" {
			if hasVal {
				return UtxoAttr{}, errors.NewInvalidDeclarationError("rest takes no value")
			}

			attr.Rest = true

			continue
		}

		if !hasVal || val == "" {
			return UtxoAttr{}, errors.NewInvalidDeclarationError("attribute %q needs a value", key)
		}

		if err := applyAttr(&attr, key, val); err != nil {
			return UtxoAttr{}, err
		}
	}

	return attr, nil
}

func applyAttr(attr *UtxoAttr, key, val string) error {
	switch key {
	case "value":
		if isNumeric(val) {
			v, err := strconv.ParseUint(strings.ReplaceAll(val, "_", ""), 10, 64)
			if err != nil {
				return errors.NewInvalidDeclarationError("value %q", val, err)
			}

			Value(v)(attr)

			return nil
		}

		if !isIdent(val) {
			return errors.NewInvalidDeclarationError("value %q is neither a number nor a field name", val)
		}

		ValueOf(val)(attr)

	case "runes":
		p, ok := ParseRunesPresence(val)
		if !ok {
			return errors.NewInvalidDeclarationError("runes must be none, some or any, got %q", val)
		}

		Runes(p)(attr)

	case "rune_id":
		id, err := model.ParseRuneID(val)
		if err != nil {
			return errors.NewInvalidDeclarationError("rune_id %q", val, err)
		}

		RuneID(id)(attr)

	case "rune_amount":
		amt, err := uint128.FromString(strings.ReplaceAll(val, "_", ""))
		if err != nil {
			return errors.NewInvalidDeclarationError("rune_amount %q", val, err)
		}

		RuneAmount(amt)(attr)

	case "anchor":
		if !isIdent(val) {
			return errors.NewInvalidDeclarationError("anchor %q is not a resource name", val)
		}

		AnchorTo(val)(attr)

	default:
		return errors.NewInvalidDeclarationError("unknown attribute %q", key)
	}

	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}

	return s
}

func isNumeric(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}

	return true
}
