package models

import (
	"fmt"
	"strings"
)

// ParseFields parses the --fields DSL into a slice of FieldSpec.
// Format: "title:string,views:number:optional,slug:string:unique". The type
// defaults to string and fields are required unless marked optional.
func ParseFields(fieldsStr string) ([]FieldSpec, error) {
	if strings.TrimSpace(fieldsStr) == "" {
		return nil, nil
	}

	var fields []FieldSpec
	for _, part := range strings.Split(fieldsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, err := parseField(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// parseField parses a single field specification: name[:type[:modifier...]]
func parseField(spec string) (FieldSpec, error) {
	parts := strings.Split(spec, ":")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return FieldSpec{}, fmt.Errorf("invalid field spec %q: empty field name", spec)
	}

	field := FieldSpec{Name: name, Type: FieldString, Required: true}

	if len(parts) > 1 {
		typ, err := ParseFieldType(parts[1])
		if err != nil {
			return FieldSpec{}, fmt.Errorf("invalid field spec %q: %w", spec, err)
		}
		field.Type = typ
	}

	for _, mod := range parts[min(len(parts), 2):] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "required":
			field.Required = true
		case "optional":
			field.Required = false
		case "unique":
			field.Unique = true
		default:
			return FieldSpec{}, fmt.Errorf("invalid field spec %q: unknown modifier %q (valid: required, optional, unique)", spec, mod)
		}
	}

	return field, nil
}

// ParseFieldType maps a DSL type name to a FieldType. A few common aliases are
// accepted so "int" or "bool" do what the user means.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "str", "text":
		return FieldString, nil
	case "number", "int", "integer", "float", "decimal":
		return FieldNumber, nil
	case "boolean", "bool":
		return FieldBoolean, nil
	default:
		return "", fmt.Errorf("unknown type %q (valid: string, number, boolean)", s)
	}
}

// ParseRelations parses the --relations DSL.
// Format: "tags:many-to-many:tag,author:many-to-one:user"
func ParseRelations(relationsStr string) ([]RelationSpec, error) {
	if strings.TrimSpace(relationsStr) == "" {
		return nil, nil
	}

	var relations []RelationSpec
	for _, part := range strings.Split(relationsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		parts := strings.Split(part, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid relation spec %q: expected 'name:kind:target'", part)
		}

		kind, err := ParseRelationKind(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid relation spec %q: %w", part, err)
		}

		relations = append(relations, RelationSpec{
			Name:   strings.TrimSpace(parts[0]),
			Kind:   kind,
			Target: strings.ToLower(strings.TrimSpace(parts[2])),
		})
	}

	return relations, nil
}

// ParseRelationKind accepts the hyphenated kinds plus their camel-case
// TypeORM spellings.
func ParseRelationKind(s string) (RelationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-to-many", "onetomany":
		return OneToMany, nil
	case "many-to-one", "manytoone":
		return ManyToOne, nil
	case "many-to-many", "manytomany":
		return ManyToMany, nil
	default:
		return "", fmt.Errorf("unknown relation kind %q (valid: one-to-many, many-to-one, many-to-many)", s)
	}
}
