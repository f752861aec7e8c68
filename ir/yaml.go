package ir

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"gopkg.in/yaml.v3"
)

// FileDeclaration is the YAML form of a declaration:
//
//	name: Swap
//	resources: [pool]
//	fields:
//	  - ident: pool_utxo
//	    attr: anchor = pool
//	  - ident: fee
//	    attr: value = 10000, runes = none
//	  - ident: funding
//	    kind: vec
type FileDeclaration struct {
	Name      string      `yaml:"name"`
	Resources []string    `yaml:"resources,omitempty"`
	Fields    []FileField `yaml:"fields"`
}

type FileField struct {
	Ident string `yaml:"ident"`
	// Kind defaults to single.
	Kind string `yaml:"kind,omitempty"`
	Len  int    `yaml:"len,omitempty"`
	Attr string `yaml:"attr,omitempty"`
}

// ParseYAML decodes and validates a FileDeclaration.
func ParseYAML(data []byte) (*DeriveInputIr, error) {
	var fd FileDeclaration

	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, errors.NewInvalidDeclarationError("could not decode declaration", err)
	}

	return fd.IR()
}

func (fd *FileDeclaration) IR() (*DeriveInputIr, error) {
	b := New(fd.Name).Resources(fd.Resources...)

	for i, ff := range fd.Fields {
		kind := KindSingle

		if ff.Kind != "" {
			k, ok := ParseFieldKind(ff.Kind)
			if !ok {
				return nil, errors.NewInvalidDeclarationError("[%s] field %d (%s): unknown kind %q", fd.Name, i, ff.Ident, ff.Kind)
			}

			kind = k
		}

		attr, err := ParseAttr(ff.Attr)
		if err != nil {
			return nil, errors.NewInvalidDeclarationError("[%s] field %d (%s)", fd.Name, i, ff.Ident, err)
		}

		b.Field(Field{Ident: ff.Ident, Kind: kind, Len: ff.Len, Attr: attr})
	}

	return b.Build()
}

// MarshalYAML writes the declaration back in FileDeclaration form.
func (d *DeriveInputIr) MarshalYAML() (interface{}, error) {
	fd := FileDeclaration{Name: d.Name, Resources: d.Resources}

	for _, f := range d.Fields {
		ff := FileField{Ident: f.Ident, Attr: f.Attr.String()}

		if f.Kind != KindSingle {
			ff.Kind = f.Kind.String()
		}

		if f.Kind == KindArray {
			ff.Len = f.Len
		}

		fd.Fields = append(fd.Fields, ff)
	}

	return fd, nil
}
