package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/nestgen/internal/errors"
)

// Schema is the on-disk YAML description of a model.
//
//	name: post
//	fields:
//	  - name: title
//	  - name: views
//	    type: number
//	    required: false
//	    default: 0
//	relations:
//	  - name: tags
//	    kind: many-to-many
//	    target: tag
//	seed:
//	  count: 25
type Schema struct {
	Name      string         `yaml:"name"`
	Fields    []SchemaField  `yaml:"fields"`
	Relations []RelationSpec `yaml:"relations"`
	Seed      *SchemaSeed    `yaml:"seed"`
}

// SchemaField mirrors FieldSpec but leaves Required unset when omitted, so the
// DSL default (required) applies.
type SchemaField struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Required *bool       `yaml:"required"`
	Unique   bool        `yaml:"unique"`
	Default  interface{} `yaml:"default"`
}

// SchemaSeed enables seeding; a zero count means DefaultSeedCount.
type SchemaSeed struct {
	Enabled *bool `yaml:"enabled"`
	Count   int   `yaml:"count"`
}

// LoadSchema reads and decodes a schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read schema", path, err)
	}

	schema, err := DecodeSchema(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapSchemaError(path, err)
	}
	return schema, nil
}

// DecodeSchema decodes a schema document, rejecting unknown keys.
func DecodeSchema(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		if err == io.EOF {
			return &schema, nil
		}
		return nil, err
	}
	return &schema, nil
}

// FieldSpecs converts the schema fields, applying DSL defaults.
func (s *Schema) FieldSpecs() ([]FieldSpec, error) {
	if len(s.Fields) == 0 {
		return nil, nil
	}

	fields := make([]FieldSpec, 0, len(s.Fields))
	for i, f := range s.Fields {
		typ, err := ParseFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("fields[%d] (%s): %w", i, f.Name, err)
		}
		required := true
		if f.Required != nil {
			required = *f.Required
		}
		fields = append(fields, FieldSpec{
			Name:     f.Name,
			Type:     typ,
			Required: required,
			Unique:   f.Unique,
			Default:  f.Default,
		})
	}
	return fields, nil
}

// RelationSpecs normalizes the schema relations.
func (s *Schema) RelationSpecs() ([]RelationSpec, error) {
	if len(s.Relations) == 0 {
		return nil, nil
	}

	relations := make([]RelationSpec, 0, len(s.Relations))
	for i, r := range s.Relations {
		kind, err := ParseRelationKind(string(r.Kind))
		if err != nil {
			return nil, fmt.Errorf("relations[%d] (%s): %w", i, r.Name, err)
		}
		relations = append(relations, RelationSpec{Name: r.Name, Kind: kind, Target: strings.ToLower(r.Target)})
	}
	return relations, nil
}

// SeedRequested reports whether the schema asks for a seeder and with how many
// records.
func (s *Schema) SeedRequested() (bool, int) {
	if s.Seed == nil {
		return false, 0
	}
	if s.Seed.Enabled != nil && !*s.Seed.Enabled {
		return false, 0
	}
	count := s.Seed.Count
	if count == 0 {
		count = DefaultSeedCount
	}
	return true, count
}
