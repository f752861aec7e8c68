package ir

import (
	"github.com/bsv-blockchain/utxomatch/errors"
)

// Validate checks the declaration and resolves value references and
// anchors to indexes. It is idempotent.
func (d *DeriveInputIr) Validate() error {
	if d.Name == "" {
		return errors.NewInvalidDeclarationError("declaration has no name")
	}

	seenResources := make(map[string]struct{}, len(d.Resources))

	for _, r := range d.Resources {
		if r == "" {
			return errors.NewInvalidDeclarationError("[%s] empty resource name", d.Name)
		}

		if _, ok := seenResources[r]; ok {
			return errors.NewInvalidDeclarationError("[%s] resource %q declared twice", d.Name, r)
		}

		seenResources[r] = struct{}{}
	}

	seen := make(map[string]int, len(d.Fields))

	for i := range d.Fields {
		f := &d.Fields[i]
		f.Order = i

		if f.Ident == "" {
			return errors.NewInvalidDeclarationError("[%s] field %d has no name", d.Name, i)
		}

		if _, ok := seen[f.Ident]; ok {
			return errors.NewInvalidDeclarationError("[%s] field %q declared twice", d.Name, f.Ident)
		}

		switch f.Kind {
		case KindSingle, KindOptional:
			f.Len = 0
		case KindArray:
			if f.Len <= 0 {
				return errors.NewInvalidDeclarationError("[%s] array field %q needs a positive length, got %d", d.Name, f.Ident, f.Len)
			}
		case KindVec:
			if i != len(d.Fields)-1 {
				return errors.NewInvalidDeclarationError("[%s] remainder field %q must be the last field", d.Name, f.Ident)
			}

			f.Attr.Rest = true
		default:
			return errors.NewInvalidDeclarationError("[%s] field %q has unknown kind %d", d.Name, f.Ident, int(f.Kind))
		}

		if f.Attr.Rest && f.Kind != KindVec {
			return errors.NewInvalidDeclarationError("[%s] rest is only valid on a remainder field, %q is %s", d.Name, f.Ident, f.Kind)
		}

		if err := d.validateAttr(f, seen); err != nil {
			return err
		}

		seen[f.Ident] = i
	}

	return nil
}

func (d *DeriveInputIr) validateAttr(f *Field, earlier map[string]int) error {
	a := &f.Attr

	if a.Value != nil && a.Value.IsRef() {
		idx, ok := earlier[a.Value.Ref]
		if !ok {
			return errors.NewInvalidDeclarationError("[%s] field %q references %q, which is not declared before it", d.Name, f.Ident, a.Value.Ref)
		}

		if d.Fields[idx].Kind != KindSingle {
			return errors.NewInvalidDeclarationError("[%s] field %q references %q, which is not a single field", d.Name, f.Ident, a.Value.Ref)
		}

		a.Value.RefIndex = idx
	}

	if a.Rune != nil {
		if a.Rune.ID == nil && a.Rune.Amount == nil {
			a.Rune = nil
		} else if a.Runes != nil && *a.Runes == RunesNone {
			return errors.NewInvalidDeclarationError("[%s] field %q combines runes = none with a rune predicate", d.Name, f.Ident)
		}
	}

	if a.Anchor != nil {
		idx := d.ResourceIndex(a.Anchor.Resource)
		if idx < 0 {
			return errors.NewInvalidDeclarationError("[%s] field %q anchors to undeclared resource %q", d.Name, f.Ident, a.Anchor.Resource)
		}

		a.Anchor.Index = idx
	}

	return nil
}
