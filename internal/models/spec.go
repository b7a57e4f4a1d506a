package models

import (
	"fmt"
	"regexp"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/naming"
)

// DefaultSeedCount is used when seeding is requested without a count.
const DefaultSeedCount = 10

// FieldType is the scalar type of a generated column.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldString, FieldNumber, FieldBoolean:
		return true
	}
	return false
}

// RelationKind is the cardinality of a relation.
type RelationKind string

const (
	OneToMany  RelationKind = "one-to-many"
	ManyToOne  RelationKind = "many-to-one"
	ManyToMany RelationKind = "many-to-many"
)

// Valid reports whether k is one of the supported relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case OneToMany, ManyToOne, ManyToMany:
		return true
	}
	return false
}

// CarriesIDs reports whether the relation is settable through an id list on the DTO.
func (k RelationKind) CarriesIDs() bool {
	return k == ManyToOne || k == ManyToMany
}

// FieldSpec describes one scalar property of a model.
type FieldSpec struct {
	Name     string      `yaml:"name"`
	Type     FieldType   `yaml:"type"`
	Required bool        `yaml:"required"`
	Unique   bool        `yaml:"unique"`
	Default  interface{} `yaml:"default,omitempty"`
}

// HasDefault reports whether a column default was declared.
func (f FieldSpec) HasDefault() bool {
	return f.Default != nil
}

// RelationSpec describes a relation to another generated model.
type RelationSpec struct {
	Name   string       `yaml:"name"`
	Kind   RelationKind `yaml:"kind"`
	Target string       `yaml:"target"`
}

// IDsField is the DTO property carrying the related identifiers.
func (r RelationSpec) IDsField() string {
	return naming.RelationIDsField(r.Name)
}

// ModelSpec is the complete, immutable description of one model. Build it with
// ModelBuilder; emitters only read it.
type ModelSpec struct {
	Name         string
	Fields       []FieldSpec
	Relations    []RelationSpec
	GenerateSeed bool
	SeedCount    int
}

// Names returns the derived symbol names for the model.
func (m ModelSpec) Names() naming.Names {
	return naming.Derive(m.Name)
}

// FieldNames lists the field names in declaration order.
func (m ModelSpec) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// IDRelations returns the relations that surface as <x>Ids DTO fields.
func (m ModelSpec) IDRelations() []RelationSpec {
	var out []RelationSpec
	for _, r := range m.Relations {
		if r.Kind.CarriesIDs() {
			out = append(out, r)
		}
	}
	return out
}

// RelatedTargets returns the distinct relation targets in first-seen order,
// excluding the model itself.
func (m ModelSpec) RelatedTargets() []string {
	seen := map[string]bool{m.Name: true}
	var out []string
	for _, r := range m.Relations {
		if seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
	}
	return out
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether s can be used as a TypeScript identifier fragment.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// entityColumns are declared on every generated entity
var entityColumns = map[string]bool{"id": true, "createdAt": true, "updatedAt": true, "deletedAt": true}

// checkModelName rejects names whose generated variable or class would not
// compile. A target becomes a model of its own, so the same rules apply.
func checkModelName(errs **errors.MultipleErrors, field, name string) {
	variable, class := naming.ToCamelCase(name), naming.CapitalizeFirst(name)
	switch {
	case naming.IsReservedWord(variable):
		errors.AddToMultiple(errs, errors.NewValidationError(field, name, fmt.Sprintf("%s is a reserved word in TypeScript", variable)).
			WithSuggestion(fmt.Sprintf("Pick a more specific name, e.g. '%sItem'", variable)))
	case naming.IsFrameworkSymbol(class):
		errors.AddToMultiple(errs, errors.NewValidationError(field, name, fmt.Sprintf("class %s would shadow a framework symbol", class)).
			WithSuggestion(fmt.Sprintf("Pick a more specific name, e.g. '%sItem'", variable)))
	case variable == "id":
		errors.AddToMultiple(errs, errors.NewValidationError(field, name, "collides with the generated id parameter"))
	}
}

// Validate checks every invariant and reports all violations at once.
func (m ModelSpec) Validate() error {
	var errs *errors.MultipleErrors

	if !IsIdentifier(m.Name) {
		errors.AddToMultiple(&errs, errors.NewValidationError("model name", m.Name, "must be an identifier").
			WithSuggestion("Use letters and digits only, e.g. 'blog' or 'product'"))
	} else {
		checkModelName(&errs, "model name", m.Name)
	}
	modelVar := naming.ToCamelCase(m.Name)

	seenFields := make(map[string]bool, len(m.Fields))
	for i, f := range m.Fields {
		if !IsIdentifier(f.Name) {
			errors.AddValidationError(&errs, fmt.Sprintf("fields[%d].name", i), f.Name, "must be an identifier")
		}
		if seenFields[f.Name] {
			errors.AddValidationError(&errs, fmt.Sprintf("fields[%d].name", i), f.Name, "duplicate field")
		}
		if entityColumns[f.Name] {
			errors.AddValidationError(&errs, fmt.Sprintf("fields[%d].name", i), f.Name, "is a built-in entity column")
		}
		seenFields[f.Name] = true
		if !f.Type.Valid() {
			errors.AddValidationError(&errs, fmt.Sprintf("fields[%d].type", i), f.Type, "must be one of string, number, boolean")
		}
	}

	seenIDs := make(map[string]string)
	for i, r := range m.Relations {
		if !IsIdentifier(r.Name) {
			errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].name", i), r.Name, "must be an identifier")
		}
		if seenFields[r.Name] {
			errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].name", i), r.Name, "collides with a field")
		}
		if entityColumns[r.Name] {
			errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].name", i), r.Name, "is a built-in entity column")
		}
		if !r.Kind.Valid() {
			errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].kind", i), r.Kind, "must be one of one-to-many, many-to-one, many-to-many")
		}
		if !IsIdentifier(r.Target) {
			errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].target", i), r.Target, "must be a model name")
		} else {
			checkModelName(&errs, fmt.Sprintf("relations[%d].target", i), r.Target)
		}
		if r.Kind.CarriesIDs() {
			ids := r.IDsField()
			if ids == modelVar {
				errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].name", i), r.Name,
					fmt.Sprintf("DTO field %s collides with the model variable", ids))
			}
			if other, dup := seenIDs[ids]; dup {
				errors.AddValidationError(&errs, fmt.Sprintf("relations[%d].name", i), r.Name,
					fmt.Sprintf("DTO field %s already used by relation %s", ids, other))
			}
			seenIDs[ids] = r.Name
		}
	}

	if m.GenerateSeed && m.SeedCount <= 0 {
		errors.AddValidationError(&errs, "seed count", m.SeedCount, "must be a positive integer")
	}

	return errs.ErrorOrNil()
}
