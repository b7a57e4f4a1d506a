package models

import "strings"

// defaultFieldRule maps a model-name predicate to the fields inferred for it.
type defaultFieldRule struct {
	match  func(model string) bool
	fields []FieldSpec
}

func containsAny(subs ...string) func(string) bool {
	return func(model string) bool {
		for _, s := range subs {
			if strings.Contains(model, s) {
				return true
			}
		}
		return false
	}
}

// defaultFieldRules is evaluated in order; the first matching rule wins.
var defaultFieldRules = []defaultFieldRule{
	{
		match: containsAny("user", "author"),
		fields: []FieldSpec{
			{Name: "email", Type: FieldString, Required: true, Unique: true},
			{Name: "name", Type: FieldString, Required: true},
		},
	},
	{
		match: containsAny("post", "blog", "article"),
		fields: []FieldSpec{
			{Name: "title", Type: FieldString, Required: true},
			{Name: "content", Type: FieldString, Required: true},
			{Name: "published", Type: FieldBoolean, Required: true},
		},
	},
	{
		match: containsAny("product"),
		fields: []FieldSpec{
			{Name: "name", Type: FieldString, Required: true},
			{Name: "description", Type: FieldString},
			{Name: "price", Type: FieldNumber, Required: true},
			{Name: "stock", Type: FieldNumber, Required: true},
		},
	},
	{
		match: containsAny("category", "tag"),
		fields: []FieldSpec{
			{Name: "name", Type: FieldString, Required: true, Unique: true},
			{Name: "description", Type: FieldString},
		},
	},
}

var fallbackFields = []FieldSpec{
	{Name: "name", Type: FieldString, Required: true},
	{Name: "description", Type: FieldString},
}

// InferFields returns the heuristic default fields for a model name. The
// returned slice is a fresh copy.
func InferFields(model string) []FieldSpec {
	model = strings.ToLower(model)
	for _, rule := range defaultFieldRules {
		if rule.match(model) {
			return copyFields(rule.fields)
		}
	}
	return copyFields(fallbackFields)
}

func copyFields(in []FieldSpec) []FieldSpec {
	if in == nil {
		return nil
	}
	out := make([]FieldSpec, len(in))
	copy(out, in)
	return out
}

func copyRelations(in []RelationSpec) []RelationSpec {
	if in == nil {
		return nil
	}
	out := make([]RelationSpec, len(in))
	copy(out, in)
	return out
}
